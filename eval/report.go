package eval

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/google/uuid"
)

// Metric is a ratio that may be undefined. NaN is written as JSON null.
type Metric float64

func (m Metric) IsNaN() bool {
	return math.IsNaN(float64(m))
}

func (m Metric) MarshalJSON() ([]byte, error) {
	if m.IsNaN() || math.IsInf(float64(m), 0) {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(float64(m), 'f', -1, 64)), nil
}

func (m *Metric) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*m = Metric(math.NaN())
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*m = Metric(f)
	return nil
}

// Report is the outcome of one evaluation run.
type Report struct {
	RunID     uuid.UUID `json:"run_id"`
	Policy    string    `json:"policy"`
	Questions int       `json:"questions"`
	Skipped   int       `json:"skipped"`
	Counters  Counters  `json:"counters"`
	Accuracy  Metric    `json:"accuracy"`
	Precision Metric    `json:"precision"`
	Recall    Metric    `json:"recall"`
	FMeasure  Metric    `json:"f_measure"`
}

// Report snapshots the current counters under a new run id.
func (e *Evaluator) Report(policy string) Report {
	c := e.counters
	return Report{
		RunID:     uuid.New(),
		Policy:    policy,
		Questions: len(e.questions),
		Skipped:   e.skipped,
		Counters:  c,
		Accuracy:  Metric(c.Accuracy()),
		Precision: Metric(c.Precision()),
		Recall:    Metric(c.Recall()),
		FMeasure:  Metric(c.FMeasure()),
	}
}
