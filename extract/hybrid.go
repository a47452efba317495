package extract

import (
	"context"
	"log/slog"
	"math"

	"github.com/revelaction/qconcept/annotate"
	"github.com/revelaction/qconcept/depth"
	"github.com/revelaction/qconcept/span"
)

// Hybrid groups tokens into spans by entity, then runs of single tokens of
// the same POS class. Multi-token spans are concepts; single-token spans
// are concepts when their depth reaches HybridFactor times the average
// depth of the question spans.
type Hybrid struct {
	ann    annotate.Annotator
	scorer *depth.Scorer
	logger *slog.Logger
}

var _ Extractor = (*Hybrid)(nil)

func NewHybrid(ann annotate.Annotator, scorer *depth.Scorer, opts ...Option) *Hybrid {
	return &Hybrid{ann: ann, scorer: scorer, logger: newOptions(opts).logger}
}

func (x *Hybrid) Classify(ctx context.Context, question string) (Result, error) {
	q, err := annotateQuestion(ctx, x.ann, question)
	if err != nil {
		return Result{}, err
	}

	spans := span.Group(q.Tokens(), sameEntity)
	spans = span.Merge(spans, samePOSRun)

	depths := make([]float64, len(spans))
	sum, n := 0.0, 0
	for i, s := range spans {
		if s.IsSingle() && !s.First().Class().Scorable() {
			continue
		}

		d, found, err := x.scorer.Text(ctx, s.Text())
		if err != nil {
			return Result{}, &CapabilityError{Capability: CapabilityOntology, Err: err}
		}

		if found {
			depths[i] = d
			sum += d
			n++
		}
	}

	// NaN when no span has senses: no comparison holds
	avg := math.NaN()
	if n > 0 {
		avg = sum / float64(n)
	}

	var concepts, notConcepts []string
	for i, s := range spans {
		if !s.IsSingle() || depths[i] >= HybridFactor*avg {
			concepts = append(concepts, s.Text())
			continue
		}
		notConcepts = append(notConcepts, s.Text())
	}

	x.logger.DebugContext(ctx, "hybrid classified", "question", q.Text, "spans", len(spans), "average", avg)
	return NewResult(concepts, notConcepts), nil
}

// samePOSRun merges single-token spans of the same scorable class.
func samePOSRun(prev, next *span.Span) bool {
	if !prev.IsSingle() || !next.IsSingle() {
		return false
	}

	c := prev.First().Class()
	return c.Scorable() && c == next.First().Class()
}
