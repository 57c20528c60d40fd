package grbl

import (
	"io"
	"log"
	"sync"
	"time"

	"github.com/mastercactapus/toolpath/machine"
	"github.com/tarm/serial"
)

// StatusInterval is how often the adapter asks the controller for a
// status report.
const StatusInterval = 500 * time.Millisecond

type SerialAdapter struct {
	*Conn

	mx    sync.Mutex
	last  machine.State
	state chan machine.State
	data  chan string
	done  chan struct{}
	once  sync.Once
}

var _ machine.Adapter = &SerialAdapter{}

// OpenSerial opens a serial port and wraps it in a SerialAdapter.
func OpenSerial(name string, baud int) (*SerialAdapter, error) {
	port, err := serial.OpenPort(&serial.Config{Name: name, Baud: baud})
	if err != nil {
		return nil, err
	}
	return NewSerialAdapter(port), nil
}

func NewSerialAdapter(rw io.ReadWriter) *SerialAdapter {
	adapter := &SerialAdapter{
		Conn: NewConn(rw),

		state: make(chan machine.State),
		data:  make(chan string),
		done:  make(chan struct{}),
	}
	go adapter.pollLoop()
	go adapter.loop()
	go adapter.readLoop()

	return adapter
}

// Close stops the adapter's loops and closes the port.
func (adapter *SerialAdapter) Close() error {
	adapter.once.Do(func() { close(adapter.done) })
	return adapter.Conn.Close()
}

func (adapter *SerialAdapter) pollLoop() {
	t := time.NewTicker(StatusInterval)
	defer t.Stop()
	for {
		select {
		case <-adapter.done:
			return
		case <-t.C:
		}
		err := adapter.WriteByte('?')
		if err != nil {
			log.Println("ERROR: status poll:", err)
		}
	}
}

func (adapter *SerialAdapter) readLoop() {
	buf := make([]byte, 1024)
	for {
		n, err := adapter.Read(buf)
		if err == io.EOF || err == io.ErrClosedPipe {
			return
		}
		if err != nil {
			log.Println("ERROR: read from port:", err)
			continue
		}
		select {
		case adapter.data <- string(buf[:n]):
		case <-adapter.done:
			return
		}
	}
}
func (adapter *SerialAdapter) State() chan machine.State { return adapter.state }
func (adapter *SerialAdapter) CurrentState() machine.State {
	adapter.mx.Lock()
	state := adapter.last
	adapter.mx.Unlock()
	return state
}
func (adapter *SerialAdapter) loop() {
	for {
		var data string
		select {
		case <-adapter.done:
			return
		case data = <-adapter.data:
		}
		if len(data) == 0 || data[0] != '<' {
			continue
		}
		stat, err := parseStatus(adapter.CurrentState(), data)
		if err != nil {
			log.Println("ERROR: parse status:", err)
			continue
		}
		adapter.mx.Lock()
		adapter.last = *stat
		adapter.mx.Unlock()
		select {
		case adapter.state <- *stat:
		default:
		}
	}
}
