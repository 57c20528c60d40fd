package grbl

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"sync"
)

// bufferSize is the size of grbl's serial receive buffer.
const bufferSize = 128

// ErrGrblReset will be returned from write methods if a reset is encountered
// before all commands are run.
var ErrGrblReset = errors.New("grbl reset")

// ErrLineTooLong is returned for a line that can never fit in the
// controller's receive buffer.
var ErrLineTooLong = errors.New("line exceeds grbl receive buffer")

// Conn streams lines to a grbl controller using character counting: a
// line is only sent when the controller's receive buffer has room for it,
// and room is reclaimed as `ok` or `error:` acknowledgements arrive.
type Conn struct {
	rw io.ReadWriter

	readBuf []byte
	scan    *bufio.Scanner
	ackCh   chan error
	resetCh chan struct{}
	closeCh chan struct{}
	closed  sync.Once

	// mx guards writes to rw, wMx serializes streaming callers.
	mx  sync.Mutex
	wMx sync.Mutex

	// pending holds the length of each sent but unacknowledged line.
	pending []int
	inUse   int
}

// NewConn creates a new Conn using the provided ReadWriter for data.
//
// Read must be called continuously (see SerialAdapter) for acknowledgements
// to be processed.
func NewConn(rw io.ReadWriter) *Conn {
	return &Conn{
		scan:    bufio.NewScanner(rw),
		rw:      rw,
		ackCh:   make(chan error),
		resetCh: make(chan struct{}, 1),
		closeCh: make(chan struct{}),
	}
}

// Close will abort any in-progress writes and close the
// underlying ReadWriter, if it implements io.Closer.
func (c *Conn) Close() error {
	c.closed.Do(func() { close(c.closeCh) })
	if closer, ok := c.rw.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (c *Conn) isClosed() bool {
	select {
	case <-c.closeCh:
		return true
	default:
		return false
	}
}

func (c *Conn) reset() {
	c.pending = nil
	c.inUse = 0
}

// awaitAck blocks for the next acknowledgement and releases the buffer
// space of the oldest pending line.
func (c *Conn) awaitAck() error {
	if c.isClosed() {
		return io.ErrClosedPipe
	}

	select {
	case <-c.closeCh:
		return io.ErrClosedPipe
	case <-c.resetCh:
		c.reset()
		return ErrGrblReset
	case e := <-c.ackCh:
		if len(c.pending) > 0 {
			c.inUse -= c.pending[0]
			c.pending = c.pending[1:]
		}
		return e
	}
}

// writeLine blocks until line fits in the receive buffer, then sends it.
func (c *Conn) writeLine(line []byte) error {
	if len(line) > bufferSize {
		return ErrLineTooLong
	}
	for c.inUse+len(line) > bufferSize {
		err := c.awaitAck()
		if err != nil {
			return err
		}
	}

	c.mx.Lock()
	_, err := c.rw.Write(line)
	c.mx.Unlock()
	if err != nil {
		return err
	}
	c.pending = append(c.pending, len(line))
	c.inUse += len(line)
	return nil
}

// drain waits for every pending line, returning the first error reported.
func (c *Conn) drain() (err error) {
	for len(c.pending) > 0 {
		e := c.awaitAck()
		if e == ErrGrblReset || e == io.ErrClosedPipe {
			return e
		}
		if err == nil {
			err = e
		}
	}
	return err
}

func splitLinesKeepN(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i+1], nil
	}
	if atEOF {
		// terminate the final line
		return len(data), append(append([]byte(nil), data...), '\n'), nil
	}
	return 0, nil, nil
}

// ReadFrom returns after all lines have been sent and executed.
func (c *Conn) ReadFrom(r io.Reader) (n int64, err error) {
	c.wMx.Lock()
	defer c.wMx.Unlock()
	return c.stream(r)
}

func (c *Conn) stream(r io.Reader) (n int64, err error) {
	if c.isClosed() {
		return 0, io.ErrClosedPipe
	}

	scanner := bufio.NewScanner(r)
	scanner.Split(splitLinesKeepN)
	for scanner.Scan() {
		err = c.writeLine(scanner.Bytes())
		if err != nil {
			return n, err
		}
		n += int64(len(scanner.Bytes()))
	}
	if err = scanner.Err(); err != nil {
		return n, err
	}

	return n, c.drain()
}

// Write will return after all lines have been sent and executed.
func (c *Conn) Write(p []byte) (int, error) {
	c.wMx.Lock()
	defer c.wMx.Unlock()

	n, err := c.stream(bytes.NewReader(p))
	return int(n), err
}

// WriteByte will write directly to the serial device without
// accounting for buffering.
//
// Use for realtime commands like `?`.
func (c *Conn) WriteByte(p byte) (err error) {
	if c.isClosed() {
		return io.ErrClosedPipe
	}
	c.mx.Lock()
	_, err = c.rw.Write([]byte{p})
	c.mx.Unlock()
	return err
}

// Read will read the next line from the device, dispatching
// acknowledgements to any in-progress write.
func (c *Conn) Read(p []byte) (n int, err error) {
	if c.isClosed() {
		return 0, io.ErrClosedPipe
	}

	if c.readBuf != nil {
		if len(p) < len(c.readBuf) {
			return 0, io.ErrShortBuffer
		}
		n = copy(p, c.readBuf)
		c.readBuf = nil
		return n, nil
	}
	if !c.scan.Scan() {
		err = c.scan.Err()
		if err == nil {
			err = io.EOF
		}
		return 0, err
	}
	data := c.scan.Bytes()

	switch {
	case bytes.Equal(data, []byte("ok")):
		err = c.ack(nil)
	case bytes.HasPrefix(data, []byte("error:")):
		err = c.ack(errors.New(strings.TrimSpace(string(data))))
	case bytes.HasPrefix(data, []byte("Grbl")):
		select {
		case c.resetCh <- struct{}{}:
		default:
		}
	}
	if err != nil {
		return 0, err
	}

	if len(p) < len(data) {
		c.readBuf = append([]byte(nil), data...)
		return 0, io.ErrShortBuffer
	}

	return copy(p, data), nil
}

func (c *Conn) ack(e error) error {
	select {
	case c.ackCh <- e:
		return nil
	case <-c.closeCh:
		return io.ErrClosedPipe
	}
}
