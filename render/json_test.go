package render

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/revelaction/qconcept/eval"
	"github.com/revelaction/qconcept/extract"
)

func TestJSONRendererReportNaN(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)
	if err := r.Report(eval.Report{Policy: "NER", Precision: eval.Metric(math.NaN())}); err != nil {
		t.Fatalf("render: %v", err)
	}

	if !strings.Contains(buf.String(), `"precision":null`) {
		t.Fatalf("expected null precision, got %s", buf.String())
	}

	var rep eval.Report
	if err := json.Unmarshal(buf.Bytes(), &rep); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if rep.Policy != "NER" {
		t.Errorf("expected policy 'NER', got %q", rep.Policy)
	}

	if !rep.Precision.IsNaN() {
		t.Errorf("expected NaN precision, got %v", rep.Precision)
	}
}

func TestJSONRendererResult(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)
	res := extract.NewResult([]string{"San Francisco"}, []string{"Where", "is", "?"})
	if err := r.Result("Where is San Francisco?", res); err != nil {
		t.Fatalf("render: %v", err)
	}

	var got ClassifiedQuestion
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if got.Question != "Where is San Francisco?" {
		t.Errorf("expected question, got %q", got.Question)
	}

	if len(got.Concepts) != 1 || got.Concepts[0] != "San Francisco" {
		t.Fatalf("expected 1 concept, got %v", got.Concepts)
	}

	if len(got.NotConcepts) != 3 {
		t.Fatalf("expected 3 not concepts, got %v", got.NotConcepts)
	}
}
