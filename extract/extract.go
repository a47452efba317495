// Package extract classifies the tokens of a question into concepts and
// not-concepts.
package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/revelaction/qconcept/annotate"
	sent "github.com/revelaction/qconcept/sentence"
	"github.com/revelaction/qconcept/span"
)

const (
	// DepthFactor scales the mean depth a token must reach in the
	// ontology-depth policy.
	DepthFactor = 1.5

	// HybridFactor scales the average span depth in the hybrid policy.
	HybridFactor = 1.0
)

// ErrInvalidQuestion is returned for an empty or blank question.
var ErrInvalidQuestion = errors.New("invalid question")

// CapabilityError reports a failure of the annotator or the ontology.
type CapabilityError struct {
	Capability string
	Err        error
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("%s: %v", e.Capability, e.Err)
}

func (e *CapabilityError) Unwrap() error {
	return e.Err
}

const (
	CapabilityAnnotate = "annotate"
	CapabilityOntology = "ontology"
)

// Extractor classifies the tokens of a question.
type Extractor interface {
	Classify(ctx context.Context, question string) (Result, error)
}

// Result holds the concept and not-concept strings of a question, each
// without duplicates and in order of appearance. The two sets are disjoint.
type Result struct {
	Concepts    []string `json:"concepts"`
	NotConcepts []string `json:"not_concepts"`
}

// NewResult builds a Result. A string in both lists is a concept.
func NewResult(concepts, notConcepts []string) Result {
	r := Result{Concepts: []string{}, NotConcepts: []string{}}

	seen := map[string]bool{}
	for _, c := range concepts {
		if seen[c] {
			continue
		}
		seen[c] = true
		r.Concepts = append(r.Concepts, c)
	}

	for _, n := range notConcepts {
		if seen[n] {
			continue
		}
		seen[n] = true
		r.NotConcepts = append(r.NotConcepts, n)
	}

	return r
}

// IsConcept reports whether s is one of the concepts.
func (r Result) IsConcept(s string) bool {
	for _, c := range r.Concepts {
		if c == s {
			return true
		}
	}
	return false
}

type options struct {
	logger *slog.Logger
}

type Option func(*options)

// WithLogger sets the logger receiving per-question debug records.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func newOptions(opts []Option) options {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// annotateQuestion validates and annotates a question.
func annotateQuestion(ctx context.Context, ann annotate.Annotator, question string) (sent.Question, error) {
	text := annotate.Normalize(question)
	if text == "" {
		return sent.Question{}, ErrInvalidQuestion
	}

	q, err := ann.Annotate(ctx, text)
	if err != nil {
		return sent.Question{}, &CapabilityError{Capability: CapabilityAnnotate, Err: err}
	}

	return q, nil
}

func texts(spans []*span.Span) []string {
	ts := make([]string, len(spans))
	for i, s := range spans {
		ts[i] = s.Text()
	}
	return ts
}

// sameEntity groups tokens of the same recognized entity.
func sameEntity(prev, next sent.Token) bool {
	return prev.Entity() != sent.Outside && prev.Entity() == next.Entity()
}
