package simulation

import (
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/framestep/sim"
)

var _ = Describe("Simulation", func() {
	var s *Simulation

	BeforeEach(func() {
		s = MakeBuilder().WithoutMonitoring().Build()
	})

	AfterEach(func() {
		s.Terminate()

		os.Remove("framestep_sim_" + s.ID() + ".sqlite3")
	})

	It("should register fixed-step channels", func() {
		runner := s.AddFixedStep(2, "physics")

		Expect(s.GetRunnerByName("physics")).To(BeIdenticalTo(runner))
	})

	It("should panic when registering duplicated channel names", func() {
		s.AddFixedStep(2, "physics")

		Expect(func() { s.AddFixedStep(3, "physics") }).To(Panic())
	})

	It("should insert channels at a requested position", func() {
		s.AddFixedStep(2, "physics")
		s.AddFixedStepBefore(1, "input", "physics")
		s.AddFixedStepAfter(8, "ai", "physics")

		Expect(s.Schedule().StageNames()).To(
			Equal([]string{"input", "physics", "ai"}))
	})

	It("should drive all channels and count ticks", func() {
		fires := 0
		runner := s.AddFixedStep(2, "physics")
		sim.AppendPhase(runner, sim.PhaseFunc(func(*sim.TickContext) {
			fires++
		}))

		s.Run(9, nil)

		Expect(s.TickCount()).To(Equal(sim.TickCount(9)))
		Expect(fires).To(Equal(4))
		Expect(s.Registry().Get("physics").Accumulator).To(
			Equal(sim.TickCount(1)))
	})

	It("should create the fire table in the data recorder", func() {
		Expect(s.GetDataRecorder().ListTables()).To(ContainElement("fires"))
	})

	It("should not create a monitor when monitoring is disabled", func() {
		Expect(s.GetMonitor()).To(BeNil())
	})
})

var _ = Describe("Builder", func() {
	It("should panic when the monitor port is set without monitoring", func() {
		Expect(func() {
			MakeBuilder().WithoutMonitoring().WithMonitorPort(8080).Build()
		}).To(Panic())
	})

	Context("with custom output file", func() {
		var customSim *Simulation

		AfterEach(func() {
			customSim.Terminate()

			os.Remove("custom_output.sqlite3")
		})

		It("should use the custom output file name", func() {
			customSim = MakeBuilder().
				WithoutMonitoring().
				WithOutputFileName("custom_output").
				Build()

			_, err := os.Stat("custom_output.sqlite3")
			Expect(err).NotTo(HaveOccurred())
		})
	})
})
