package motion

import "io"

// Reader is a pull stream of commands. It returns io.EOF when done.
type Reader interface {
	Read() (Command, error)
}

// CommandsReader replays a fixed list of commands.
type CommandsReader struct {
	Commands []Command
	n        int
}

func (c *CommandsReader) Read() (Command, error) {
	if c.n == len(c.Commands) {
		return nil, io.EOF
	}

	c.n++
	return c.Commands[c.n-1], nil
}
