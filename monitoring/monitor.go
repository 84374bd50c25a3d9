// Package monitoring provides a web server that allows external inspection
// and control of a running fixed-step simulation.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"sync"
	"time"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/framestep/sim"
)

// Monitor can turn a fixed-step simulation into a server and allows external
// monitoring and controlling of its channels.
type Monitor struct {
	registry *sim.Registry

	runnersLock sync.Mutex
	runners     []*sim.FixedStepRunner

	portNumber int
	actualPort int
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n",
			portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterRegistry registers the channel registry of the simulation session.
func (m *Monitor) RegisterRegistry(r *sim.Registry) {
	m.registry = r
}

// RegisterRunner registers a fixed-step runner to be monitored.
func (m *Monitor) RegisterRunner(r *sim.FixedStepRunner) {
	m.runnersLock.Lock()
	defer m.runnersLock.Unlock()

	m.runners = append(m.runners, r)
}

// StartServer starts the monitor as a web server with a custom port if
// wanted.
func (m *Monitor) StartServer() {
	r := mux.NewRouter()

	r.HandleFunc("/api/list_channels", m.listChannels)
	r.HandleFunc("/api/active", m.activeChannel)
	r.HandleFunc("/api/channel/{name}", m.channelDetails)
	r.HandleFunc("/api/channel/{name}/pause", m.pauseChannel)
	r.HandleFunc("/api/channel/{name}/continue", m.continueChannel)
	r.HandleFunc("/api/channel/{name}/toggle", m.togglePauseChannel)
	r.HandleFunc("/api/runner/{name}", m.runnerDetails)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	http.Handle("/", r)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	m.actualPort = listener.Addr().(*net.TCPAddr).Port

	fmt.Fprintf(
		os.Stderr,
		"Monitoring simulation with http://localhost:%d\n",
		m.actualPort)

	go func() {
		err = http.Serve(listener, nil)
		dieOnErr(err)
	}()
}

// Port returns the port the monitoring server is listening on. It is only
// valid after StartServer has been called.
func (m *Monitor) Port() int {
	return m.actualPort
}

func (m *Monitor) listChannels(w http.ResponseWriter, _ *http.Request) {
	names := m.registry.ChannelNames()

	bytes, err := json.Marshal(names)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) activeChannel(w http.ResponseWriter, _ *http.Request) {
	st := m.registry.GetActive()
	if st == nil {
		fmt.Fprint(w, "null")
		return
	}

	bytes, err := json.Marshal(st)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) channelDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	st := m.findChannelOr404(w, name)
	if st == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(st)
	serializer.SetMaxDepth(1)

	err := serializer.Serialize(w)
	dieOnErr(err)
}

func (m *Monitor) pauseChannel(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	st := m.findChannelOr404(w, name)
	if st == nil {
		return
	}

	st.Pause()

	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) continueChannel(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	st := m.findChannelOr404(w, name)
	if st == nil {
		return
	}

	st.Unpause()

	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) togglePauseChannel(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	st := m.findChannelOr404(w, name)
	if st == nil {
		return
	}

	st.TogglePause()

	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) runnerDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	runner := m.findRunnerOr404(w, name)
	if runner == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(runner)
	serializer.SetMaxDepth(1)

	err := serializer.Serialize(w)
	dieOnErr(err)
}

func (m *Monitor) findChannelOr404(
	w http.ResponseWriter,
	name string,
) *sim.ChannelState {
	st := m.registry.Get(name)

	if st == nil {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Channel not found"))
		dieOnErr(err)
	}

	return st
}

func (m *Monitor) findRunnerOr404(
	w http.ResponseWriter,
	name string,
) *sim.FixedStepRunner {
	m.runnersLock.Lock()
	defer m.runnersLock.Unlock()

	var runner *sim.FixedStepRunner
	for _, r := range m.runners {
		if r.Name() == name {
			runner = r
		}
	}

	if runner == nil {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Runner not found"))
		dieOnErr(err)
	}

	return runner
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	bytes, err := json.Marshal(prof)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
