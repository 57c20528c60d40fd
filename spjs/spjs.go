// Package spjs is a client for Serial Port JSON Server, a websocket
// bridge to serial devices.
package spjs

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ReconnectDelay is the pause between failed connection attempts.
var ReconnectDelay = 3 * time.Second

type SPJS struct {
	url string

	outgoing  chan message
	incomming chan interface{}

	done chan struct{}
	once sync.Once
}

type message struct {
	done    chan struct{}
	payload []byte
}

// DataFrame is serial data received from a port.
type DataFrame struct {
	Port string `json:"P"`
	Data string `json:"D"`
}

// CmdStatus reports queue progress for commands sent with SendJSON.
type CmdStatus struct {
	Cmd        string
	QueueCount int `json:"QCnt"`
	Type       []string
	Data       []string `json:"D"`
	ID         string   `json:"Id"`
}

type ErrorMessage struct {
	Error string
}
type SerialPortList struct {
	SerialPorts []SerialPort
}
type SerialPort struct {
	Name         string
	Friendly     string
	SerialNumber string
	IsOpen       bool
	IsPrimary    bool
	Baud         int
	Ver          float64
}

// New connects to the server at url in the background, reconnecting
// whenever the connection drops.
func New(url string) *SPJS {
	sp := &SPJS{
		url:       url,
		outgoing:  make(chan message, 1000),
		incomming: make(chan interface{}, 1000),
		done:      make(chan struct{}),
	}

	go sp.loop()

	return sp
}

// Messages delivers decoded server messages: *DataFrame, *CmdStatus,
// *SerialPortList or *ErrorMessage.
func (sp *SPJS) Messages() chan interface{} {
	return sp.incomming
}

// Close stops reconnecting and drops the current connection.
func (sp *SPJS) Close() error {
	sp.once.Do(func() { close(sp.done) })
	return nil
}

func parseMessage(data []byte) (interface{}, error) {
	var msg map[string]json.RawMessage
	err := json.Unmarshal(data, &msg)
	if err != nil {
		return nil, err
	}

	var val interface{}
	switch {
	case msg["Error"] != nil:
		val = &ErrorMessage{}
	case msg["SerialPorts"] != nil:
		val = &SerialPortList{}
	case msg["Cmd"] != nil:
		val = &CmdStatus{}
	case msg["D"] != nil:
		val = &DataFrame{}
	default:
		return nil, errors.New("unknown message: " + string(data))
	}

	err = json.Unmarshal(data, val)
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (sp *SPJS) readLoop(ws *websocket.Conn, done chan struct{}) {
	defer close(done)
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			log.Println("ERROR: spjs read:", err)
			return
		}
		if !bytes.HasPrefix(data, []byte("{")) {
			// ignore echo messages
			continue
		}
		val, err := parseMessage(data)
		if err != nil {
			log.Println("ERROR: spjs parse:", err)
			continue
		}
		select {
		case sp.incomming <- val:
		case <-sp.done:
			return
		}
	}
}

func (sp *SPJS) loop() {
	var nextUp message

reconnect:
	for {
		select {
		case <-sp.done:
			return
		default:
		}

		log.Println("Connecting to", sp.url)
		ws, _, err := websocket.DefaultDialer.Dial(sp.url, nil)
		if err != nil {
			log.Println("ERROR: spjs connect:", err)
			select {
			case <-time.After(ReconnectDelay):
			case <-sp.done:
				return
			}
			continue
		}
		log.Println("Connected.")
		ch := make(chan struct{})
		go sp.readLoop(ws, ch)
		go sp.WriteString("list") // refresh list on reconnect

		for {
			if nextUp.done != nil {
				err = ws.WriteMessage(websocket.TextMessage, nextUp.payload)
				if err != nil {
					log.Println("ERROR: spjs send:", err)
					ws.Close()
					continue reconnect
				}
				close(nextUp.done)
				nextUp.done = nil
			}

			select {
			case <-sp.done:
				ws.Close()
				return
			case <-ch:
				ws.Close()
				continue reconnect
			case nextUp = <-sp.outgoing:
			}
		}
	}
}

// JSON is the payload of a "sendjson" command.
type JSON struct {
	Port string `json:"P"`
	Data []Data
}
type Data struct {
	Data string `json:"D"`
	ID   string `json:"Id"`
}

// SendJSON queues lines for a port. It returns once the message is on the
// wire; completion is reported through CmdStatus messages.
func (sp *SPJS) SendJSON(v JSON) {
	data, err := json.Marshal(v)
	if err != nil {
		// shouldn't happen since we control everything that's sent out
		log.Panicln("ERROR: sendjson (marshal):", err)
		return
	}

	sp.send(append([]byte("sendjson "), data...))
}

// WriteString sends a raw server command such as "list".
func (sp *SPJS) WriteString(data string) {
	sp.send([]byte(data))
}

func (sp *SPJS) send(payload []byte) {
	ch := make(chan struct{})
	select {
	case sp.outgoing <- message{done: ch, payload: payload}:
	case <-sp.done:
		return
	}
	select {
	case <-ch:
	case <-sp.done:
	}
}
