package simulation

import (
	"github.com/sarchlab/framestep/datarecording"
	"github.com/sarchlab/framestep/sim"
)

const fireTableName = "fires"

type fireEntry struct {
	Tick        uint64
	Channel     string
	Step        uint64
	Accumulator uint64
}

// fireRecorder is a hook that records one row per channel fire into the
// session's data recorder.
type fireRecorder struct {
	recorder datarecording.DataRecorder
	tick     sim.TickCount
}

func newFireRecorder(recorder datarecording.DataRecorder) *fireRecorder {
	recorder.CreateTable(fireTableName, fireEntry{})

	return &fireRecorder{recorder: recorder}
}

// Func records the fire into the data recorder.
func (r *fireRecorder) Func(ctx sim.HookCtx) {
	if ctx.Pos != sim.HookPosAfterFire {
		return
	}

	runner, ok := ctx.Domain.(*sim.FixedStepRunner)
	if !ok {
		return
	}

	st, ok := ctx.Item.(sim.ChannelState)
	if !ok {
		return
	}

	r.recorder.InsertData(fireTableName, fireEntry{
		Tick:        uint64(r.tick),
		Channel:     runner.Name(),
		Step:        uint64(st.Step),
		Accumulator: uint64(st.Accumulator),
	})
}
