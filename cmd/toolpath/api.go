package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	sse "github.com/alexandrevicenzi/go-sse"
	"github.com/gorilla/mux"
	"github.com/mastercactapus/toolpath/machine"
	"github.com/mastercactapus/toolpath/motion"
	"github.com/mastercactapus/toolpath/output"
	"github.com/mastercactapus/toolpath/vm"
)

type api struct {
	http.Handler
	cfg     vm.Config
	m       *machine.Machine
	dataDir string
	sse     *sse.Server
}

func newAPI(cfg vm.Config, m *machine.Machine, dir string) *api {
	r := mux.NewRouter()

	a := &api{
		Handler: r,
		cfg:     cfg,
		m:       m,
		dataDir: dir,
		sse: sse.NewServer(&sse.Options{
			Logger: log.New(io.Discard, "", 0),
		}),
	}

	r.HandleFunc("/api/sample", a.sample).Methods("POST")
	r.HandleFunc("/api/run/{name}", a.run).Methods("POST")

	fs := http.StripPrefix("/data", http.FileServer(http.Dir(dir)))
	r.PathPrefix("/data/").Methods("GET", "HEAD").Handler(fs)
	r.HandleFunc("/data/{name:.+}", a.putFile).Methods("PUT")
	r.HandleFunc("/data/{name:.+}", a.deleteFile).Methods("DELETE")

	r.PathPrefix("/events/").Handler(a.sse)
	if m != nil {
		go func() {
			for state := range m.State() {
				a.sendEvent("/events/state", state)
			}
		}()
	}

	return a
}

func (a *api) sendEvent(channel string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("ERROR: marshal json: %+v", err)
		return
	}
	a.sse.SendMessage(channel, sse.SimpleMessage(string(data)))
}

// points publishes every result on the points event channel.
func (a *api) points() vm.Sink {
	return vm.SinkFunc(func(r vm.Result) error {
		a.sendEvent("/events/points", output.NewRecord(r))
		return nil
	})
}

func safePath(base, name string) (bool, string) {
	if filepath.Separator != '/' && strings.ContainsRune(name, filepath.Separator) {
		log.Println("invalid path '" + name + "'")
		return false, ""
	}
	dir := base
	if dir == "" {
		dir = "."
	}
	fullName := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+name)))
	return true, fullName
}

// config applies the request's query overrides to the server defaults.
func (a *api) config(req *http.Request) (vm.Config, error) {
	cfg := a.cfg
	var err error
	if p := req.FormValue("policy"); p != "" {
		cfg.Policy, err = vm.ParsePolicy(p)
		if err != nil {
			return cfg, err
		}
	}
	if s := req.FormValue("strict"); s != "" {
		cfg.Options.Strict, err = strconv.ParseBool(s)
		if err != nil {
			return cfg, fmt.Errorf("invalid strict value %q", s)
		}
	}

	parse := func(param string, val *float64) {
		s := req.FormValue(param)
		if err != nil || s == "" {
			return
		}
		*val, err = strconv.ParseFloat(s, 64)
	}
	parse("resolution", &cfg.Options.Resolution)
	parse("angleStep", &cfg.Options.AngleStep)
	return cfg, err
}

func newSink(format string, w io.Writer) vm.Sink {
	switch format {
	case "", "text":
		return output.NewText(w)
	case "gcode":
		return output.NewGcode(w)
	case "json":
		return output.NewJSON(w)
	}
	return nil
}

func (a *api) sample(w http.ResponseWriter, req *http.Request) {
	cfg, err := a.config(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	sink := newSink(req.FormValue("format"), &buf)
	if sink == nil {
		http.Error(w, "unknown format: "+req.FormValue("format"), http.StatusBadRequest)
		return
	}

	err = vm.New(cfg).Process(motion.NewParser(req.Body), sink)
	if err != nil {
		var le *motion.LineError
		if errors.As(err, &le) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		log.Printf("ERROR: sample: %+v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if req.FormValue("format") == "json" {
		w.Header().Set("Content-Type", "application/x-ndjson")
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	_, err = io.Copy(w, &buf)
	if err != nil {
		log.Println("ERROR: write response:", err)
	}
}

func (a *api) run(w http.ResponseWriter, req *http.Request) {
	if a.m == nil {
		http.Error(w, "no machine connected", http.StatusServiceUnavailable)
		return
	}
	cfg, err := a.config(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, name := safePath(a.dataDir, mux.Vars(req)["name"])
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	f, err := os.Open(name)
	if os.IsNotExist(err) {
		http.NotFound(w, req)
		return
	}
	if err != nil {
		log.Printf("ERROR: open '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}
	defer f.Close()

	err = a.m.Prepare()
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	proc := vm.New(cfg)
	err = proc.Process(motion.NewParser(f), output.Multi{a.points(), a.m})
	if err != nil {
		log.Printf("ERROR: run '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}
	err = json.NewEncoder(w).Encode(proc.Stats())
	if err != nil {
		log.Println("ERROR: encode:", err)
	}
}

func (a *api) putFile(w http.ResponseWriter, req *http.Request) {
	ok, name := safePath(a.dataDir, mux.Vars(req)["name"])
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	err := os.MkdirAll(filepath.Dir(name), 0755)
	if err != nil {
		log.Printf("ERROR: mkdir '%s': %+v", filepath.Dir(name), err)
		http.Error(w, err.Error(), 500)
		return
	}
	f, err := os.Create(name)
	if err != nil {
		log.Printf("ERROR: create '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}
	defer f.Close()
	_, err = io.Copy(f, req.Body)
	if err != nil {
		log.Printf("ERROR: write '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}
}

func (a *api) deleteFile(w http.ResponseWriter, req *http.Request) {
	ok, name := safePath(a.dataDir, mux.Vars(req)["name"])
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	err := os.Remove(name)
	if os.IsNotExist(err) {
		http.NotFound(w, req)
		return
	}
	if err != nil {
		log.Printf("ERROR: delete '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}
}
