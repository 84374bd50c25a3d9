package simulation

import (
	"log"

	"github.com/rs/xid"

	"github.com/sarchlab/framestep/datarecording"
	"github.com/sarchlab/framestep/monitoring"
	"github.com/sarchlab/framestep/sim"
)

// Builder can be used to build a simulation session.
type Builder struct {
	monitorOn      bool
	monitorPort    int
	outputFileName string
	fireLogger     *log.Logger
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		monitorOn: true,
	}
}

// WithoutMonitoring sets the simulation to not use monitoring.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOn = false
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithOutputFileName sets the custom output file name for the data recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

// WithFireLogging makes every channel fire be written into the given logger.
func (b Builder) WithFireLogging(logger *log.Logger) Builder {
	b.fireLogger = logger
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}
}

// Build builds the simulation session.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	s := &Simulation{
		id:         xid.New().String(),
		schedule:   sim.NewSchedule(),
		fireLogger: b.fireLogger,
	}

	outputFileName := b.outputFileName
	if outputFileName == "" {
		outputFileName = "framestep_sim_" + s.id
	}

	s.dataRecorder = datarecording.New(outputFileName)
	s.fireRecorder = newFireRecorder(s.dataRecorder)

	if b.monitorOn {
		monitor := monitoring.NewMonitor()
		if b.monitorPort != 0 {
			monitor = monitor.WithPortNumber(b.monitorPort)
		}

		monitor.RegisterRegistry(s.schedule.Registry())
		monitor.StartServer()

		s.monitor = monitor
	}

	return s
}
