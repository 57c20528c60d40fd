package grbl

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"log"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/mastercactapus/toolpath/machine"
	"github.com/mastercactapus/toolpath/spjs"
)

// spjsBatch is the number of lines sent per sendjson message.
const spjsBatch = 100

var lastID int64

func nextID() string {
	id := atomic.AddInt64(&lastID, 1)
	return "cmd_" + strconv.FormatInt(id, 36)
}

// Messages is the subset of *spjs.SPJS the adapter depends on.
type Messages interface {
	Messages() chan interface{}
	SendJSON(spjs.JSON)
	WriteString(string)
}

// SPJSAdapter drives a grbl controller attached to a Serial Port JSON
// Server. Flow control is left to the server's grbl buffer algorithm.
type SPJSAdapter struct {
	sp   Messages
	port string
	baud int

	cmds    chan adapterMessage
	waiting map[string]chan error

	mx    sync.Mutex
	last  machine.State
	state chan machine.State
}

var _ machine.Adapter = &SPJSAdapter{}

type adapterMessage struct {
	spjs.JSON
	wait chan error
}

func NewSPJSAdapter(sp Messages, port string, baud int) *SPJSAdapter {
	adapter := &SPJSAdapter{
		sp:      sp,
		port:    port,
		baud:    baud,
		waiting: make(map[string]chan error, 100),
		cmds:    make(chan adapterMessage, 1000),
		state:   make(chan machine.State),
	}
	go adapter.loop()

	return adapter
}

func (adapter *SPJSAdapter) CurrentState() machine.State {
	adapter.mx.Lock()
	defer adapter.mx.Unlock()
	return adapter.last
}
func (adapter *SPJSAdapter) setMachineState(state machine.State) {
	adapter.mx.Lock()
	adapter.last = state
	adapter.mx.Unlock()
	select {
	case adapter.state <- state:
	default:
	}
}

func (adapter *SPJSAdapter) handle(resp interface{}) {
	switch msg := resp.(type) {
	case *spjs.DataFrame:
		if msg.Port != "" && msg.Port != adapter.port {
			return
		}
		if strings.HasPrefix(msg.Data, "<") {
			stat, err := parseStatus(adapter.CurrentState(), msg.Data)
			if err != nil {
				log.Println("ERROR: parse status:", err)
				return
			}
			adapter.setMachineState(*stat)
		}
	case *spjs.CmdStatus:
		switch msg.Cmd {
		case "WipedQueue":
			for key, ch := range adapter.waiting {
				ch <- errors.New("wiped queue")
				delete(adapter.waiting, key)
			}
		case "Complete":
			if adapter.waiting[msg.ID] != nil {
				adapter.waiting[msg.ID] <- nil
				delete(adapter.waiting, msg.ID)
			}
		case "Error":
			if adapter.waiting[msg.ID] != nil {
				adapter.waiting[msg.ID] <- errors.New("command " + msg.ID + " failed")
				delete(adapter.waiting, msg.ID)
			}
		}
	case *spjs.SerialPortList:
		for _, port := range msg.SerialPorts {
			if port.Name != adapter.port {
				continue
			}
			if !port.IsOpen {
				adapter.sp.WriteString("open " + adapter.port + " " + strconv.Itoa(adapter.baud) + " grbl")
			}
		}
	case *spjs.ErrorMessage:
		log.Println("ERROR: spjs:", msg.Error)
	}
}

func (adapter *SPJSAdapter) loop() {
	for {
		select {
		case resp := <-adapter.sp.Messages():
			adapter.handle(resp)
		case msg := <-adapter.cmds:
			adapter.sp.SendJSON(msg.JSON)
			if msg.wait != nil {
				adapter.waiting[msg.Data[len(msg.Data)-1].ID] = msg.wait
			}
		}
	}
}

func (adapter *SPJSAdapter) State() chan machine.State {
	return adapter.state
}

// ReadFrom sends lines in batches and waits for the last one to complete.
func (adapter *SPJSAdapter) ReadFrom(r io.Reader) (n int64, err error) {
	scan := bufio.NewScanner(r)
	var wait chan error
	for {
		var j spjs.JSON
		j.Port = adapter.port
		for len(j.Data) < spjsBatch && scan.Scan() {
			line := strings.TrimSpace(scan.Text())
			n += int64(len(scan.Bytes()))
			if line == "" {
				continue
			}
			j.Data = append(j.Data, spjs.Data{
				Data: line + "\n",
				ID:   nextID(),
			})
		}
		if len(j.Data) == 0 {
			break
		}
		wait = make(chan error, 1)
		adapter.cmds <- adapterMessage{JSON: j, wait: wait}
	}
	if err = scan.Err(); err != nil {
		return n, err
	}

	if wait == nil {
		return n, nil
	}

	// wait for last batch
	return n, <-wait
}
func (adapter *SPJSAdapter) WriteByte(b byte) error {
	_, err := adapter.Write([]byte{b, '\n'})
	return err
}
func (adapter *SPJSAdapter) Write(p []byte) (int, error) {
	n, err := adapter.ReadFrom(bytes.NewReader(p))
	return int(n), err
}
