package extract

import (
	"context"
	"log/slog"

	"github.com/revelaction/qconcept/annotate"
	"github.com/revelaction/qconcept/depth"
	sent "github.com/revelaction/qconcept/sentence"
	"github.com/revelaction/qconcept/span"
)

// Depth takes as concepts the nouns, verbs and adjectives whose senses sit
// deeper in the hypernym hierarchy than DepthFactor times the mean of the
// question. Adjacent selected tokens of the same class form one concept.
// Tokens of other classes are in neither set.
type Depth struct {
	ann    annotate.Annotator
	scorer *depth.Scorer
	logger *slog.Logger
}

var _ Extractor = (*Depth)(nil)

func NewDepth(ann annotate.Annotator, scorer *depth.Scorer, opts ...Option) *Depth {
	return &Depth{ann: ann, scorer: scorer, logger: newOptions(opts).logger}
}

type scoredToken struct {
	token sent.Token
	depth float64
}

func (x *Depth) Classify(ctx context.Context, question string) (Result, error) {
	q, err := annotateQuestion(ctx, x.ann, question)
	if err != nil {
		return Result{}, err
	}

	var pool []scoredToken
	sum := 0.0
	for _, t := range q.Tokens() {
		if !t.Class().Scorable() {
			continue
		}

		// no sense scores 0
		d, _, err := x.scorer.Text(ctx, t.Text)
		if err != nil {
			return Result{}, &CapabilityError{Capability: CapabilityOntology, Err: err}
		}

		pool = append(pool, scoredToken{token: t, depth: d})
		sum += d
	}

	mean := 0.0
	if len(pool) > 0 {
		mean = sum / float64(len(pool))
	}

	var selected []sent.Token
	var notConcepts []string
	for _, s := range pool {
		if s.depth > 0 && s.depth >= DepthFactor*mean {
			selected = append(selected, s.token)
			continue
		}
		notConcepts = append(notConcepts, s.token.Text)
	}

	spans := span.Group(selected, func(prev, next sent.Token) bool {
		return next.Index == prev.Index+1 && next.Class() == prev.Class()
	})

	x.logger.DebugContext(ctx, "depth classified", "question", q.Text, "scored", len(pool), "mean", mean, "selected", len(selected))
	return NewResult(texts(spans), notConcepts), nil
}
