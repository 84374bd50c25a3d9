// Package simulation ties a fixed-step schedule together with data
// recording and monitoring to form one simulation session.
package simulation

import (
	"log"

	"github.com/sarchlab/framestep/datarecording"
	"github.com/sarchlab/framestep/monitoring"
	"github.com/sarchlab/framestep/sim"
)

// A Simulation provides the services required to define a fixed-step
// simulation session.
type Simulation struct {
	id string

	schedule     *sim.Schedule
	dataRecorder datarecording.DataRecorder
	monitor      *monitoring.Monitor
	fireRecorder *fireRecorder
	fireLogger   *log.Logger

	tickCount sim.TickCount
}

// ID returns the ID of the simulation session.
func (s *Simulation) ID() string {
	return s.id
}

// Schedule returns the execution order of the session.
func (s *Simulation) Schedule() *sim.Schedule {
	return s.schedule
}

// Registry returns the channel registry of the session.
func (s *Simulation) Registry() *sim.Registry {
	return s.schedule.Registry()
}

// GetDataRecorder returns the data recorder used in the simulation.
func (s *Simulation) GetDataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// GetMonitor returns the monitor used in the simulation. It is nil when
// monitoring is disabled.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// AddFixedStep creates a fixed-step channel, inserts it at the end of the
// execution order, and attaches the session's recording and monitoring.
func (s *Simulation) AddFixedStep(
	step sim.TickCount,
	name string,
) *sim.FixedStepRunner {
	runner := s.schedule.AddFixedStep(step, name)
	s.instrument(runner)

	return runner
}

// AddFixedStepBefore is like AddFixedStep, but inserts the channel right
// before the stage with the given label.
func (s *Simulation) AddFixedStepBefore(
	step sim.TickCount,
	name string,
	label string,
) *sim.FixedStepRunner {
	runner := s.schedule.AddFixedStepBefore(step, name, label)
	s.instrument(runner)

	return runner
}

// AddFixedStepAfter is like AddFixedStep, but inserts the channel right
// after the stage with the given label.
func (s *Simulation) AddFixedStepAfter(
	step sim.TickCount,
	name string,
	label string,
) *sim.FixedStepRunner {
	runner := s.schedule.AddFixedStepAfter(step, name, label)
	s.instrument(runner)

	return runner
}

func (s *Simulation) instrument(runner *sim.FixedStepRunner) {
	runner.AcceptHook(s.fireRecorder)

	if s.fireLogger != nil {
		runner.AcceptHook(sim.NewFireLogger(s.fireLogger))
	}

	if s.monitor != nil {
		s.monitor.RegisterRunner(runner)
	}
}

// GetRunnerByName returns the runner with the given name.
func (s *Simulation) GetRunnerByName(name string) *sim.FixedStepRunner {
	return s.schedule.Runner(name)
}

// Tick advances the session by one simulation tick.
func (s *Simulation) Tick(data any) {
	s.tickCount++
	s.fireRecorder.tick = s.tickCount

	s.schedule.Tick(data)
}

// Run advances the session by n simulation ticks.
func (s *Simulation) Run(n uint64, data any) {
	for i := uint64(0); i < n; i++ {
		s.Tick(data)
	}
}

// TickCount returns the number of ticks the session has run.
func (s *Simulation) TickCount() sim.TickCount {
	return s.tickCount
}

// Terminate terminates the simulation session.
func (s *Simulation) Terminate() {
	s.dataRecorder.Close()
}
