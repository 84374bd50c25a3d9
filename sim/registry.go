package sim

import (
	"sort"
	"sync"
)

// A Registry distributes the state of all fixed-step channels in one
// simulation session.
//
// Each FixedStepRunner publishes its channel's state here under the channel
// name. Sub-phases and external inspectors read and mutate channel state
// through the registry; the owning runner re-reads the entry after every
// sub-phase, so mutations are honored mid-fire.
//
// The registry itself is guarded by a single mutex so that out-of-band
// readers, such as the monitoring server, can look entries up while the
// simulation runs. Channel state writes follow the single-threaded sub-phase
// sequence and are totally ordered by the host's tick loop.
type Registry struct {
	mu       sync.Mutex
	channels map[string]*ChannelState
	active   string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		channels: make(map[string]*ChannelState),
	}
}

// Get returns the state of the channel with the given name. It returns nil
// if the channel has never been synchronized into the registry, e.g., when
// reading before the channel's first tick.
func (r *Registry) Get(name string) *ChannelState {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.channels[name]
}

// GetActive returns the state of the channel that is currently executing its
// sub-phases. It returns nil when called outside a firing invocation.
func (r *Registry) GetActive() *ChannelState {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active == "" {
		return nil
	}

	return r.channels[r.active]
}

// MustActive is the panicking version of GetActive.
func (r *Registry) MustActive() *ChannelState {
	s := r.GetActive()
	if s == nil {
		panic("MustActive can only be used while a fixed-step channel " +
			"is running its sub-phases")
	}

	return s
}

// GetSingle returns the state of the only registered channel. It returns nil
// if zero or more than one channel is registered.
func (r *Registry) GetSingle() *ChannelState {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.channels) != 1 {
		return nil
	}

	for _, s := range r.channels {
		return s
	}

	return nil
}

// MustSingle is the panicking version of GetSingle.
func (r *Registry) MustSingle() *ChannelState {
	s := r.GetSingle()
	if s == nil {
		panic("expected exactly one fixed-step channel")
	}

	return s
}

// ChannelNames returns the names of all the channels that have been
// synchronized into the registry, sorted alphabetically.
func (r *Registry) ChannelNames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.channels))
	for name := range r.channels {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// publish writes a runner's local state into the registry, creating the
// entry if it does not exist yet.
func (r *Registry) publish(name string, st ChannelState) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.channels[name]
	if !ok {
		entry = &ChannelState{}
		r.channels[name] = entry
	}

	*entry = st
}

// pull reads the channel state back out for a runner's local copy.
func (r *Registry) pull(name string) (ChannelState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.channels[name]
	if !ok {
		return ChannelState{}, false
	}

	return *entry, true
}

func (r *Registry) setActive(name string) {
	r.mu.Lock()
	r.active = name
	r.mu.Unlock()
}

func (r *Registry) clearActive() {
	r.mu.Lock()
	r.active = ""
	r.mu.Unlock()
}
