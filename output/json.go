package output

import (
	"encoding/json"
	"io"

	"github.com/mastercactapus/toolpath/vm"
)

// Record is the JSON form of a result.
type Record struct {
	Line    int          `json:"line"`
	Command string       `json:"command,omitempty"`
	Points  [][3]float64 `json:"points,omitempty"`
	Error   string       `json:"error,omitempty"`
}

func NewRecord(r vm.Result) Record {
	rec := Record{Line: r.Line}
	if r.Command != nil {
		rec.Command = r.Command.String()
	}
	if r.Err != nil {
		rec.Error = r.Err.Error()
		return rec
	}
	rec.Points = make([][3]float64, 0, r.Points.Len())
	for p := range r.Points.All() {
		rec.Points = append(rec.Points, [3]float64{p.X, p.Y, p.Z})
	}
	return rec
}

// JSON writes one Record per line, failures included.
type JSON struct {
	enc *json.Encoder
}

func NewJSON(w io.Writer) *JSON { return &JSON{enc: json.NewEncoder(w)} }

func (j *JSON) Emit(r vm.Result) error {
	return j.enc.Encode(NewRecord(r))
}
