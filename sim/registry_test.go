package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Registry", func() {
	var registry *Registry

	BeforeEach(func() {
		registry = NewRegistry()
	})

	It("should return nil for a channel that never synchronized", func() {
		Expect(registry.Get("physics")).To(BeNil())
	})

	It("should return the published state of a channel", func() {
		registry.publish("physics", ChannelState{Step: 3, Accumulator: 1})

		st := registry.Get("physics")
		Expect(st).NotTo(BeNil())
		Expect(st.Step).To(Equal(TickCount(3)))
		Expect(st.Accumulator).To(Equal(TickCount(1)))
	})

	It("should return the single channel only when exactly one is registered", func() {
		Expect(registry.GetSingle()).To(BeNil())

		registry.publish("a", ChannelState{Step: 2})
		Expect(registry.GetSingle().Step).To(Equal(TickCount(2)))

		registry.publish("b", ChannelState{Step: 3})
		Expect(registry.GetSingle()).To(BeNil())
	})

	It("should panic in MustSingle when no single channel exists", func() {
		Expect(func() { registry.MustSingle() }).To(Panic())

		registry.publish("a", ChannelState{Step: 2})
		registry.publish("b", ChannelState{Step: 3})

		Expect(func() { registry.MustSingle() }).To(Panic())
	})

	It("should return nil from GetActive outside a firing invocation", func() {
		registry.publish("a", ChannelState{Step: 2})

		Expect(registry.GetActive()).To(BeNil())
	})

	It("should panic in MustActive outside a firing invocation", func() {
		Expect(func() { registry.MustActive() }).To(Panic())
	})

	It("should list channel names in a stable order", func() {
		registry.publish("b", ChannelState{Step: 2})
		registry.publish("a", ChannelState{Step: 3})

		Expect(registry.ChannelNames()).To(Equal([]string{"a", "b"}))
	})
})
