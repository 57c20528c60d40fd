package sample

import (
	"fmt"

	"github.com/mastercactapus/toolpath/motion"
)

// Sample dispatches cmd to the matching sampler.
func Sample(cmd motion.Command, opt Options) (Sequence, error) {
	switch c := cmd.(type) {
	case motion.Linear:
		return Linear(c, opt)
	case motion.Rotational:
		return Rotational(c, opt)
	}
	return Sequence{}, fmt.Errorf("unsupported motion command %T", cmd)
}
