package spjs

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMessage(t *testing.T) {
	v, err := parseMessage([]byte(`{"P":"/dev/ttyUSB0","D":"ok\n"}`))
	require.NoError(t, err)
	assert.Equal(t, &DataFrame{Port: "/dev/ttyUSB0", Data: "ok\n"}, v)

	v, err = parseMessage([]byte(`{"Cmd":"Complete","Id":"cmd_1","P":"/dev/ttyUSB0"}`))
	require.NoError(t, err)
	assert.Equal(t, &CmdStatus{Cmd: "Complete", ID: "cmd_1"}, v)

	v, err = parseMessage([]byte(`{"SerialPorts":[{"Name":"/dev/ttyUSB0","IsOpen":true,"Baud":115200}]}`))
	require.NoError(t, err)
	assert.Equal(t, &SerialPortList{SerialPorts: []SerialPort{{Name: "/dev/ttyUSB0", IsOpen: true, Baud: 115200}}}, v)

	v, err = parseMessage([]byte(`{"Error":"port busy"}`))
	require.NoError(t, err)
	assert.Equal(t, &ErrorMessage{Error: "port busy"}, v)

	_, err = parseMessage([]byte(`{"Hello":1}`))
	assert.Error(t, err)
}

func TestSPJS(t *testing.T) {
	received := make(chan string, 10)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ws, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			return
		}
		defer ws.Close()
		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				return
			}
			received <- string(data)
			if string(data) == "list" {
				ws.WriteMessage(websocket.TextMessage, []byte(`{"SerialPorts":[{"Name":"/dev/ttyUSB0"}]}`))
			}
		}
	}))
	defer srv.Close()

	sp := New("ws" + strings.TrimPrefix(srv.URL, "http"))
	defer sp.Close()

	select {
	case msg := <-sp.Messages():
		require.IsType(t, &SerialPortList{}, msg)
		assert.Equal(t, "/dev/ttyUSB0", msg.(*SerialPortList).SerialPorts[0].Name)
	case <-time.After(5 * time.Second):
		t.Fatal("no port list")
	}
	assert.Equal(t, "list", <-received)

	sp.SendJSON(JSON{Port: "/dev/ttyUSB0", Data: []Data{{Data: "G1 X1\n", ID: "cmd_1"}}})
	assert.Equal(t, `sendjson {"P":"/dev/ttyUSB0","Data":[{"D":"G1 X1\n","Id":"cmd_1"}]}`, <-received)
}
