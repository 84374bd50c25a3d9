package sim

import "log"

// A FixedStepRunner owns one fixed-step channel and the ordered sequence of
// sub-phases to execute when the channel fires.
//
// The runner holds the authoritative copy of the channel's step,
// accumulator, and paused flag. On every invocation it synchronizes with the
// session's Registry, so that external edits to the step and the paused flag
// are honored, and so that sub-phases can retune the channel mid-fire.
//
// A runner fires at most once per invocation. If the accumulator is pushed
// past the step in a single jump, no catch-up fires are issued.
type FixedStepRunner struct {
	HookableBase

	name        string
	step        TickCount
	accumulator TickCount
	paused      bool
	phases      []Phase
}

// NewFixedStepRunner creates a runner for the channel with the given name,
// firing once every step ticks.
func NewFixedStepRunner(step TickCount, name string) *FixedStepRunner {
	if step == 0 {
		log.Panic("fixed step cannot be 0")
	}

	if name == "" {
		log.Panic("fixed-step channel must have a name")
	}

	return &FixedStepRunner{
		name: name,
		step: step,
	}
}

// WithPhase adds a sub-phase at the end of the runner's sequence. It returns
// the runner for chaining.
func (r *FixedStepRunner) WithPhase(phase Phase) *FixedStepRunner {
	r.phases = append(r.phases, phase)
	return r
}

// WithPausedStart makes the channel start in a paused state.
func (r *FixedStepRunner) WithPausedStart() *FixedStepRunner {
	r.paused = true
	return r
}

// AppendPhase adds a sub-phase at the end of the runner's sequence and
// returns the typed handle for further configuration.
func AppendPhase[P Phase](r *FixedStepRunner, phase P) P {
	r.phases = append(r.phases, phase)
	return phase
}

// Name returns the channel name. It is used as the registry key.
func (r *FixedStepRunner) Name() string {
	return r.name
}

// NumPhases returns the number of sub-phases of the runner.
func (r *FixedStepRunner) NumPhases() int {
	return len(r.phases)
}

// PhaseAt returns the i-th sub-phase of the runner.
func (r *FixedStepRunner) PhaseAt(i int) Phase {
	if i < 0 || i >= len(r.phases) {
		log.Panicf("channel %s has no sub-phase %d", r.name, i)
	}

	return r.phases[i]
}

// State returns a snapshot of the runner's local channel state.
func (r *FixedStepRunner) State() ChannelState {
	return ChannelState{
		Step:        r.step,
		Accumulator: r.accumulator,
		Paused:      r.paused,
	}
}

// Run executes one invocation of the runner. It implements Stage.
func (r *FixedStepRunner) Run(ctx *TickContext) {
	r.Tick(ctx)
}

// Tick executes one invocation of the runner and reports whether the channel
// fired.
func (r *FixedStepRunner) Tick(ctx *TickContext) bool {
	reg := ctx.Registry

	// Honor external edits. The accumulator is not pulled: the runner is
	// the sole source of truth for its own progress counter at the start
	// of a tick.
	if st, ok := reg.pull(r.name); ok {
		r.step = st.Step
		r.paused = st.Paused
	}

	if r.paused {
		return false
	}

	r.accumulator++

	fired := r.accumulator == r.step
	if fired {
		r.fire(ctx)
	}

	reg.publish(r.name, r.State())

	return fired
}

func (r *FixedStepRunner) fire(ctx *TickContext) {
	reg := ctx.Registry

	r.accumulator -= r.step

	// Sub-phases must observe the reset accumulator.
	reg.publish(r.name, r.State())
	reg.setActive(r.name)

	hookCtx := HookCtx{
		Domain: r,
		Pos:    HookPosBeforeFire,
		Item:   r.State(),
	}
	r.InvokeHook(hookCtx)

	for _, phase := range r.phases {
		phaseCtx := HookCtx{
			Domain: r,
			Pos:    HookPosBeforePhase,
			Item:   phase,
		}
		r.InvokeHook(phaseCtx)

		phase.Run(ctx)

		phaseCtx.Pos = HookPosAfterPhase
		r.InvokeHook(phaseCtx)

		// The sub-phase may have stretched, rewound, or paused the
		// channel. The change must be visible to the remaining
		// sub-phases and to the runner's own bookkeeping.
		if st, ok := reg.pull(r.name); ok {
			r.step = st.Step
			r.accumulator = st.Accumulator
			r.paused = st.Paused
		}
	}

	reg.clearActive()

	hookCtx.Pos = HookPosAfterFire
	hookCtx.Item = r.State()
	r.InvokeHook(hookCtx)
}
