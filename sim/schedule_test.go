package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("Schedule", func() {
	var (
		mockCtrl *gomock.Controller
		schedule *Schedule
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		schedule = NewSchedule()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	newStage := func(name string) *MockStage {
		st := NewMockStage(mockCtrl)
		st.EXPECT().Name().Return(name).AnyTimes()
		return st
	}

	It("should run the stages in insertion order", func() {
		first := newStage("first")
		second := newStage("second")
		schedule.AddStage(first)
		schedule.AddStage(second)

		gomock.InOrder(
			first.EXPECT().Run(gomock.Any()),
			second.EXPECT().Run(gomock.Any()),
		)

		schedule.Tick(nil)
	})

	It("should insert a stage before another", func() {
		schedule.AddStage(newStage("second"))
		schedule.AddStageBefore(newStage("first"), "second")

		Expect(schedule.StageNames()).To(Equal([]string{"first", "second"}))
	})

	It("should insert a stage after another", func() {
		schedule.AddStage(newStage("first"))
		schedule.AddStage(newStage("third"))
		schedule.AddStageAfter(newStage("second"), "first")

		Expect(schedule.StageNames()).To(
			Equal([]string{"first", "second", "third"}))
	})

	It("should panic when inserting around an unknown stage", func() {
		Expect(func() {
			schedule.AddStageBefore(newStage("first"), "missing")
		}).To(Panic())
	})

	It("should panic on duplicate stage names", func() {
		schedule.AddStage(newStage("update"))

		Expect(func() {
			schedule.AddStage(newStage("update"))
		}).To(Panic())
	})

	It("should create and insert fixed-step runners", func() {
		runner := schedule.AddFixedStep(2, "physics")
		before := schedule.AddFixedStepBefore(4, "input", "physics")
		after := schedule.AddFixedStepAfter(8, "ai", "physics")

		Expect(schedule.StageNames()).To(
			Equal([]string{"input", "physics", "ai"}))
		Expect(schedule.Runner("physics")).To(BeIdenticalTo(runner))
		Expect(schedule.Runner("input")).To(BeIdenticalTo(before))
		Expect(schedule.Runner("ai")).To(BeIdenticalTo(after))
	})

	It("should append a sub-phase to a runner by name", func() {
		schedule.AddFixedStep(1, "physics")

		phase := AppendPhaseTo(schedule, "physics",
			PhaseFunc(func(*TickContext) {}))

		Expect(schedule.Runner("physics").NumPhases()).To(Equal(1))
		Expect(schedule.PhaseAt("physics", 0)).To(
			BeAssignableToTypeOf(phase))
	})

	It("should panic when fetching a missing runner", func() {
		Expect(func() { schedule.Runner("missing") }).To(Panic())
	})

	It("should panic when the named stage is not a fixed-step runner", func() {
		schedule.AddStage(newStage("render"))

		Expect(func() { schedule.Runner("render") }).To(Panic())
	})

	It("should panic when fetching a sub-phase out of range", func() {
		schedule.AddFixedStep(1, "physics")

		Expect(func() { schedule.PhaseAt("physics", 0) }).To(Panic())
	})

	It("should share one registry across all the runners of a tick", func() {
		schedule.AddFixedStep(1, "a")
		schedule.AddFixedStep(2, "b")

		schedule.Tick(nil)

		Expect(schedule.Registry().Get("a")).NotTo(BeNil())
		Expect(schedule.Registry().Get("b")).NotTo(BeNil())
		Expect(schedule.Registry().GetSingle()).To(BeNil())
	})
})
