package motion

import (
	"bufio"
	"io"
	"strings"
)

// Parser reads motion commands, one per line, from an io.Reader.
//
// Blank lines and lines that do not start with a motion keyword are
// skipped. A malformed command is returned as a *LineError; the line is
// consumed, so Read may be called again to continue with the next one.
type Parser struct {
	br   *bufio.Reader
	line int
}

func NewParser(r io.Reader) *Parser {
	if br, ok := r.(*bufio.Reader); ok {
		return &Parser{br: br}
	}

	return &Parser{br: bufio.NewReader(r)}
}

// Line returns the number of the last line read, starting at 1.
func (p *Parser) Line() int { return p.line }

func (p *Parser) Read() (Command, error) {
	for {
		s, err := p.br.ReadString('\n')
		if err == io.EOF && s != "" {
			err = nil
		}
		if err != nil {
			return nil, err
		}
		p.line++

		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}

		cmd, ok, err := ParseCommand(s)
		if !ok {
			continue
		}
		if err != nil {
			return nil, &LineError{Line: p.line, Text: s, Err: err}
		}
		return cmd, nil
	}
}
