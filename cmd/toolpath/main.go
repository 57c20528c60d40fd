package main

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/mastercactapus/toolpath/machine"
	"github.com/mastercactapus/toolpath/machine/grbl"
	"github.com/mastercactapus/toolpath/meshlevel"
	"github.com/mastercactapus/toolpath/motion"
	"github.com/mastercactapus/toolpath/output"
	"github.com/mastercactapus/toolpath/sample"
	"github.com/mastercactapus/toolpath/spjs"
	"github.com/mastercactapus/toolpath/vm"
)

func main() {
	log.SetFlags(log.Lshortfile)

	in := flag.String("in", "input.txt", "Command file to sample ('-' for stdin).")
	out := flag.String("out", "-", "Output file ('-' for stdout).")
	format := flag.String("format", "text", "Output format: text, gcode or json.")
	policy := flag.String("policy", "abort", "On a bad command: 'abort' or 'skip' it.")
	strict := flag.Bool("strict", false, "Reject degenerate motions and negative stop angles.")
	resolution := flag.Float64("resolution", sample.DefaultOptions.Resolution, "Distance per linear step.")
	angleStep := flag.Float64("angle-step", sample.DefaultOptions.AngleStep, "Max degrees per rotational step.")
	maxSteps := flag.Int("max-steps", 0, "Max steps per motion (0 for unlimited; API defaults to 100000).")
	meshFile := flag.String("mesh", "", "Probe grid JSON used to level Z.")
	meshRef := flag.Float64("mesh-ref", 0, "Probe height that corresponds to no Z offset.")
	port := flag.String("grbl", "", "Stream moves to grbl on this port (or SPJS port name with -spjs).")
	baud := flag.Int("baud", 115200, "Baud rate for -grbl.")
	feed := flag.Float64("feed", machine.DefaultFeedRate, "Feed rate (mm/min) for moves streamed to -grbl.")
	spjsURL := flag.String("spjs", "", "Websocket URL of an SPJS server to stream through, e.g. ws://cnc-bridge:8989/ws.")
	simulate := flag.Bool("simulate", false, "Check the generated moves with the gocnc interpreter.")
	addr := flag.String("addr", "", "Serve the HTTP API on this address instead of sampling -in.")
	dir := flag.String("dir", "./data", "Data directory for the HTTP API.")
	flag.Parse()

	pol, err := vm.ParsePolicy(*policy)
	if err != nil {
		log.Fatal(err)
	}
	cfg := vm.Config{
		Policy: pol,
		Options: sample.Options{
			Resolution: *resolution,
			AngleStep:  *angleStep,
			Strict:     *strict,
			MaxSteps:   *maxSteps,
		},
	}
	if *meshFile != "" {
		l, err := loadLeveler(*meshFile, *meshRef)
		if err != nil {
			log.Fatal("load mesh: ", err)
		}
		cfg.Leveler = l
	}

	var m *machine.Machine
	if *port != "" {
		m, err = connect(*port, *baud, *spjsURL)
		if err != nil {
			log.Fatal("connect: ", err)
		}
		m.FeedRate = *feed
	}

	if *addr != "" {
		if cfg.Options.MaxSteps == 0 {
			cfg.Options.MaxSteps = 100000
		}
		api := newAPI(cfg, m, *dir)
		log.Println("Listening on", *addr)
		err = http.ListenAndServe(*addr, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "*")
			log.Printf("%s %s - %s", req.Method, req.URL.Path, req.RemoteAddr)
			api.ServeHTTP(w, req)
		}))
		log.Fatal(err)
	}

	r, err := openInput(*in)
	if err != nil {
		log.Fatal("open input: ", err)
	}
	defer r.Close()
	w, err := openOutput(*out)
	if err != nil {
		log.Fatal("create output: ", err)
	}
	defer w.Close()

	sink := newSink(*format, w)
	if sink == nil {
		log.Fatal("unknown format: " + *format)
	}
	sinks := output.Multi{sink}
	if m != nil {
		err = m.Prepare()
		if err != nil {
			log.Fatal("prepare machine: ", err)
		}
		sinks = append(sinks, m)
	}
	var sim *simulator
	if *simulate {
		sim = &simulator{}
		sinks = append(sinks, sim)
	}

	proc := vm.New(cfg)
	err = proc.Process(motion.NewParser(r), sinks)
	if err != nil {
		log.Fatal(err)
	}

	if sim != nil {
		err = sim.Check(proc.Pos())
		if err != nil {
			log.Fatal("simulate: ", err)
		}
		log.Println("Simulation ended at", proc.Pos())
	}
}

func openInput(name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(name)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func openOutput(name string) (io.WriteCloser, error) {
	if name == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(name)
}

func loadLeveler(name string, ref float64) (*meshlevel.Leveler, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	probes, err := meshlevel.LoadProbes(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	mesh, err := meshlevel.NewMesh(meshlevel.OffsetFrom(ref, probes))
	if err != nil {
		return nil, err
	}
	return meshlevel.New(meshlevel.Config{ZOffsetter: mesh}), nil
}

// connect attaches to a grbl controller and waits for its first status
// report.
func connect(port string, baud int, spjsURL string) (*machine.Machine, error) {
	var adapter machine.Adapter
	if spjsURL != "" {
		adapter = grbl.NewSPJSAdapter(spjs.New(spjsURL), port, baud)
	} else {
		a, err := grbl.OpenSerial(port, baud)
		if err != nil {
			return nil, err
		}
		adapter = a
	}

	select {
	case stat := <-adapter.State():
		log.Println("Controller status:", stat.Status)
		return machine.NewMachine(adapter), nil
	case <-time.After(10 * time.Second):
		return nil, errors.New("no status from controller")
	}
}
