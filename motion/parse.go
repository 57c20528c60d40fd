package motion

import (
	"io"
	"strings"
)

// Parse reads every command in data, failing on the first bad line.
func Parse(data string) ([]Command, error) {
	r := NewParser(strings.NewReader(data))
	var cmds []Command
	for {
		c, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, c)
	}
	return cmds, nil
}

func MustParse(data string) []Command {
	c, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return c
}
