package grbl

import (
	"strings"

	"github.com/mastercactapus/toolpath/machine"
	"github.com/mastercactapus/toolpath/motion"
)

// parseStatus applies a status report such as
// "<Idle|MPos:1.000,2.000,0.000|FS:0,0|WCO:0.000,0.000,0.000>" on top of
// the previous state.
func parseStatus(stat machine.State, data string) (*machine.State, error) {
	data = strings.TrimSpace(data)
	data = strings.TrimPrefix(data, "<")
	data = strings.TrimSuffix(data, ">")
	parts := strings.Split(data, "|")
	stat.Status = parts[0]
	var err error
	for _, s := range parts[1:] {
		sParts := strings.SplitN(s, ":", 2)
		if len(sParts) != 2 {
			continue
		}
		switch sParts[0] {
		case "MPos":
			stat.MPos, err = motion.ParsePoint(sParts[1])
		case "WCO":
			stat.WCO, err = motion.ParsePoint(sParts[1])
		}
		if err != nil {
			return nil, err
		}
	}
	return &stat, nil
}
