package render

import (
	"encoding/json"
	"io"

	"github.com/revelaction/qconcept/eval"
	"github.com/revelaction/qconcept/extract"
	"github.com/revelaction/qconcept/stat"
)

// JSONRenderer writes one JSON document per call to a writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// Report serializes an evaluation report. Undefined metrics are null.
func (r *JSONRenderer) Report(rep eval.Report) error {
	return json.NewEncoder(r.W).Encode(rep)
}

// ClassifiedQuestion is the JSON form of a classification.
type ClassifiedQuestion struct {
	Question string `json:"question"`
	extract.Result
}

func (r *JSONRenderer) Result(question string, res extract.Result) error {
	return json.NewEncoder(r.W).Encode(ClassifiedQuestion{Question: question, Result: res})
}

func (r *JSONRenderer) Stats(s stat.Stats) error {
	return json.NewEncoder(r.W).Encode(s)
}

// compile-time interface check
var _ Renderer = (*JSONRenderer)(nil)
