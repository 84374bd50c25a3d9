package sim

// A Schedule is the host's per-tick execution order. It owns the session's
// Registry and drives every registered Stage once per simulation tick.
//
// Stage wiring mistakes are programmer errors made once at setup time, so
// every lookup on the schedule fails fast with a descriptive panic instead
// of returning an error.
type Schedule struct {
	registry *Registry
	stages   []Stage
}

// NewSchedule creates an empty schedule with a fresh Registry.
func NewSchedule() *Schedule {
	return &Schedule{
		registry: NewRegistry(),
	}
}

// Registry returns the registry shared by all the stages of this schedule.
func (s *Schedule) Registry() *Registry {
	return s.registry
}

// AddStage appends a stage at the end of the execution order.
func (s *Schedule) AddStage(st Stage) {
	s.stageMustNotExist(st.Name())

	s.stages = append(s.stages, st)
}

// AddStageBefore inserts a stage right before the stage with the given
// label.
func (s *Schedule) AddStageBefore(st Stage, label string) {
	s.stageMustNotExist(st.Name())

	i := s.mustStageIndex(label)
	s.stages = append(s.stages[:i],
		append([]Stage{st}, s.stages[i:]...)...)
}

// AddStageAfter inserts a stage right after the stage with the given label.
func (s *Schedule) AddStageAfter(st Stage, label string) {
	s.stageMustNotExist(st.Name())

	i := s.mustStageIndex(label)
	s.stages = append(s.stages[:i+1],
		append([]Stage{st}, s.stages[i+1:]...)...)
}

// AddFixedStep creates a fixed-step runner and appends it at the end of the
// execution order.
func (s *Schedule) AddFixedStep(step TickCount, name string) *FixedStepRunner {
	r := NewFixedStepRunner(step, name)
	s.AddStage(r)
	return r
}

// AddFixedStepBefore creates a fixed-step runner and inserts it right before
// the stage with the given label.
func (s *Schedule) AddFixedStepBefore(
	step TickCount,
	name string,
	label string,
) *FixedStepRunner {
	r := NewFixedStepRunner(step, name)
	s.AddStageBefore(r, label)
	return r
}

// AddFixedStepAfter creates a fixed-step runner and inserts it right after
// the stage with the given label.
func (s *Schedule) AddFixedStepAfter(
	step TickCount,
	name string,
	label string,
) *FixedStepRunner {
	r := NewFixedStepRunner(step, name)
	s.AddStageAfter(r, label)
	return r
}

// AppendPhaseTo appends a sub-phase to the runner with the given name and
// returns the typed handle for further configuration.
func AppendPhaseTo[P Phase](s *Schedule, runnerName string, phase P) P {
	return AppendPhase(s.Runner(runnerName), phase)
}

// Runner returns the fixed-step runner with the given name.
func (s *Schedule) Runner(name string) *FixedStepRunner {
	i := s.mustStageIndex(name)

	r, ok := s.stages[i].(*FixedStepRunner)
	if !ok {
		panic("stage " + name + " is not a fixed-step runner")
	}

	return r
}

// PhaseAt returns the i-th sub-phase of the runner with the given name.
func (s *Schedule) PhaseAt(runnerName string, i int) Phase {
	return s.Runner(runnerName).PhaseAt(i)
}

// StageNames returns the names of all the stages in execution order.
func (s *Schedule) StageNames() []string {
	names := make([]string, 0, len(s.stages))
	for _, st := range s.stages {
		names = append(names, st.Name())
	}

	return names
}

// Tick drives every stage once, in order, sharing one TickContext.
func (s *Schedule) Tick(data any) {
	ctx := &TickContext{
		Registry: s.registry,
		Data:     data,
	}

	for _, st := range s.stages {
		st.Run(ctx)
	}
}

func (s *Schedule) stageIndex(label string) int {
	for i, st := range s.stages {
		if st.Name() == label {
			return i
		}
	}

	return -1
}

func (s *Schedule) mustStageIndex(label string) int {
	i := s.stageIndex(label)
	if i < 0 {
		panic("stage " + label + " not found")
	}

	return i
}

func (s *Schedule) stageMustNotExist(name string) {
	if s.stageIndex(name) >= 0 {
		panic("stage " + name + " already registered")
	}
}
