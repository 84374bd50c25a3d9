package cmd

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/sarchlab/framestep/sim"
	"github.com/sarchlab/framestep/simulation"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a sample multi-channel fixed-timestep simulation.",
	Long: "`demo` runs a simulation with a configurable number of " +
		"fixed-step channels. Channel i fires every step*(i+1) ticks. " +
		"The per-channel fire counts are printed at the end.",
	Run: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().Uint64("ticks", 600,
		"Number of simulation ticks to run")
	demoCmd.Flags().Uint64("step", 3,
		"Ticks per fixed update of the first channel")
	demoCmd.Flags().Int("channels", 2,
		"Number of fixed-step channels")
	demoCmd.Flags().Bool("log-fires", false,
		"Log every channel fire to stderr")
	demoCmd.Flags().Bool("monitor", false,
		"Start the monitoring server")
	demoCmd.Flags().Int("monitor-port", 0,
		"Port for the monitoring server")
	demoCmd.Flags().Bool("open", false,
		"Open the monitoring API in a browser")
}

func runDemo(cmd *cobra.Command, _ []string) {
	ticks, _ := cmd.Flags().GetUint64("ticks")
	step, _ := cmd.Flags().GetUint64("step")
	numChannels, _ := cmd.Flags().GetInt("channels")
	logFires, _ := cmd.Flags().GetBool("log-fires")
	monitorOn, _ := cmd.Flags().GetBool("monitor")
	monitorPort, _ := cmd.Flags().GetInt("monitor-port")
	open, _ := cmd.Flags().GetBool("open")

	if numChannels < 1 {
		log.Fatal("at least one channel is required")
	}

	s := buildSession(logFires, monitorOn, monitorPort)
	defer s.Terminate()

	counts := make([]uint64, numChannels)
	for i := 0; i < numChannels; i++ {
		runner := s.AddFixedStep(
			sim.TickCount(step)*sim.TickCount(i+1),
			fmt.Sprintf("channel%d", i))

		idx := i
		sim.AppendPhase(runner, sim.PhaseFunc(func(*sim.TickContext) {
			counts[idx]++
		}))
	}

	if open && s.GetMonitor() != nil {
		url := fmt.Sprintf("http://localhost:%d/api/list_channels",
			s.GetMonitor().Port())

		err := browser.OpenURL(url)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot open browser: %v\n", err)
		}
	}

	s.Run(ticks, nil)

	for i, c := range counts {
		fmt.Printf("channel%d: %d fixed updates over %d ticks\n",
			i, c, ticks)
	}
}

func buildSession(
	logFires bool,
	monitorOn bool,
	monitorPort int,
) *simulation.Simulation {
	builder := simulation.MakeBuilder()

	if logFires {
		builder = builder.WithFireLogging(log.New(os.Stderr, "", 0))
	}

	if !monitorOn {
		return builder.WithoutMonitoring().Build()
	}

	if monitorPort == 0 {
		if fromEnv := os.Getenv("FRAMESTEP_MONITOR_PORT"); fromEnv != "" {
			p, err := strconv.Atoi(fromEnv)
			if err != nil {
				log.Fatalf("invalid FRAMESTEP_MONITOR_PORT: %v", err)
			}
			monitorPort = p
		}
	}

	if monitorPort != 0 {
		builder = builder.WithMonitorPort(monitorPort)
	}

	return builder.Build()
}
