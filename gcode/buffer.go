package gcode

import (
	"bytes"
	"io"
)

// Buffer renders blocks from a Reader as newline-terminated text.
type Buffer struct {
	gr  Reader
	buf bytes.Buffer
	err error
}

var _ io.Reader = &Buffer{}

func NewBuffer(r Reader) *Buffer {
	return &Buffer{gr: r}
}
func (b *Buffer) Buffered() []byte { return b.buf.Bytes() }

func (b *Buffer) Read(p []byte) (n int, err error) {
	var block Block
	for b.err == nil && b.buf.Len() < len(p) {
		block, b.err = b.gr.Read()
		if b.err != nil {
			break
		}
		b.buf.WriteString(block.String() + "\n")
	}

	if b.buf.Len() > 0 {
		return b.buf.Read(p)
	}
	return 0, b.err
}
