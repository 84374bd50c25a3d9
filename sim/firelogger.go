package sim

import "log"

// FireLogger is a hook that prints a line every time a channel fires.
type FireLogger struct {
	Logger *log.Logger
}

// NewFireLogger returns a new FireLogger which will write into the logger.
func NewFireLogger(logger *log.Logger) *FireLogger {
	h := new(FireLogger)
	h.Logger = logger
	return h
}

// Func writes the fire information into the logger
func (h *FireLogger) Func(ctx HookCtx) {
	if ctx.Pos != HookPosBeforeFire {
		return
	}

	runner, ok := ctx.Domain.(*FixedStepRunner)
	if !ok {
		return
	}

	st, ok := ctx.Item.(ChannelState)
	if !ok {
		return
	}

	h.Logger.Printf("%s fires, step=%d, accumulator=%d",
		runner.Name(), st.Step, st.Accumulator)
}
