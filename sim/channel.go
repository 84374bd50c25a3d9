// Package sim provides deterministic fixed-timestep scheduling inside an
// externally driven simulation loop.
package sim

import "log"

// TickCount counts whole invocations of the outer simulation loop.
type TickCount uint64

// ChannelState holds the parameters of one fixed-step channel.
//
// The owning FixedStepRunner publishes its authoritative values here at the
// end of every invocation. Code running as a sub-phase, or anywhere else in
// the host, can read and mutate the state through the Registry. Mutations of
// Step and Paused take effect from the next invocation of the channel, never
// retroactively on the in-flight one.
type ChannelState struct {
	// Step is the number of ticks between two fixed updates.
	Step TickCount

	// Accumulator is the number of ticks accrued since the last fixed
	// update.
	Accumulator TickCount

	// Paused tells if the channel is paused.
	Paused bool
}

// Rate returns the number of fixed updates per second, given the real-time
// duration of one tick in seconds.
func (s *ChannelState) Rate(secPerTick float64) float64 {
	if secPerTick == 0 {
		log.Panic("tick duration cannot be 0")
	}

	return 1.0 / (float64(s.Step) * secPerTick)
}

// Remaining returns the number of ticks accrued since the last fixed update.
func (s *ChannelState) Remaining() TickCount {
	return s.Accumulator
}

// Overstep returns how far the accumulator has run past the step. The value
// is only meaningful right after a fixed update fires, before the
// accumulator is reset. At all other times it returns 0.
func (s *ChannelState) Overstep() TickCount {
	if s.Accumulator < s.Step {
		return 0
	}

	return s.Accumulator - s.Step
}

// Pause pauses the channel, starting from its next invocation.
func (s *ChannelState) Pause() {
	s.Paused = true
}

// Unpause resumes the channel, starting from its next invocation.
func (s *ChannelState) Unpause() {
	s.Paused = false
}

// TogglePause flips the paused state of the channel.
func (s *ChannelState) TogglePause() {
	s.Paused = !s.Paused
}
