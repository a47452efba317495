package extract

import (
	"context"
	"log/slog"

	"github.com/revelaction/qconcept/annotate"
	sent "github.com/revelaction/qconcept/sentence"
	"github.com/revelaction/qconcept/span"
)

// NE takes named entities as concepts and every other token as a
// not-concept.
type NE struct {
	ann    annotate.Annotator
	logger *slog.Logger
}

var _ Extractor = (*NE)(nil)

func NewNE(ann annotate.Annotator, opts ...Option) *NE {
	return &NE{ann: ann, logger: newOptions(opts).logger}
}

func (x *NE) Classify(ctx context.Context, question string) (Result, error) {
	q, err := annotateQuestion(ctx, x.ann, question)
	if err != nil {
		return Result{}, err
	}

	var concepts, all []string
	for _, s := range q.Sentences {
		for _, sp := range span.Group(s.Tokens, sameEntity) {
			if sp.First().Entity() != sent.Outside {
				concepts = append(concepts, sp.Text())
			}
		}

		for _, t := range s.Tokens {
			all = append(all, t.Text)
		}
	}

	x.logger.DebugContext(ctx, "ne classified", "question", q.Text, "entities", len(concepts))
	return NewResult(concepts, all), nil
}
