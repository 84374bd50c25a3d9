package sim

// A TickContext carries the state shared by all the stages that run within
// one simulation tick.
type TickContext struct {
	// Registry distributes fixed-step channel state across the session.
	Registry *Registry

	// Data is the host-owned payload that is handed to every stage and
	// sub-phase of the tick.
	Data any
}

// A Phase is one opaque unit of work that a fixed-step channel executes, in
// order, when it fires. A phase may read and mutate the registry entry of
// the enclosing channel; the change is visible to all the following phases
// of the same fire.
type Phase interface {
	Run(ctx *TickContext)
}

// PhaseFunc adapts an ordinary function to the Phase interface.
type PhaseFunc func(ctx *TickContext)

// Run calls f.
func (f PhaseFunc) Run(ctx *TickContext) {
	f(ctx)
}

// A Stage is one unit in the host's per-tick execution order.
type Stage interface {
	// Name returns the stable identity of the stage.
	Name() string

	// Run executes the stage for one simulation tick.
	Run(ctx *TickContext)
}
