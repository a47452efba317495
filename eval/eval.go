// Package eval measures extractors against ground-truth concepts.
package eval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/revelaction/qconcept/extract"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidInput   = errors.New("invalid evaluation input")
	ErrLengthMismatch = errors.New("questions and concepts differ in length")
)

// Counters is a confusion matrix over concept decisions.
type Counters struct {
	TP int `json:"tp"`
	FP int `json:"fp"`
	TN int `json:"tn"`
	FN int `json:"fn"`
}

func (c *Counters) Add(o Counters) {
	c.TP += o.TP
	c.FP += o.FP
	c.TN += o.TN
	c.FN += o.FN
}

// Precision is TP/(TP+FP), NaN when nothing was retrieved.
func (c Counters) Precision() float64 {
	return ratio(c.TP, c.TP+c.FP)
}

// Recall is TP/(TP+FN), NaN when the ground truth was never met.
func (c Counters) Recall() float64 {
	return ratio(c.TP, c.TP+c.FN)
}

func (c Counters) Accuracy() float64 {
	return ratio(c.TP+c.TN, c.TP+c.TN+c.FP+c.FN)
}

// FMeasure is the harmonic mean of precision and recall.
func (c Counters) FMeasure() float64 {
	p, r := c.Precision(), c.Recall()
	if math.IsNaN(p) || math.IsNaN(r) || p+r == 0 {
		return math.NaN()
	}
	return 2 * p * r / (p + r)
}

func ratio(n, d int) float64 {
	if d == 0 {
		return math.NaN()
	}
	return float64(n) / float64(d)
}

type options struct {
	logger   *slog.Logger
	progress func(done, total int)
}

type Option func(*options)

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithProgress sets a hook called after every question, skipped or not.
func WithProgress(fn func(done, total int)) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// Evaluator accumulates counters of extractors run over a fixed set of
// questions until Reset.
type Evaluator struct {
	questions []string
	truth     []map[string]bool

	counters Counters
	skipped  int

	logger     *slog.Logger
	progress   func(done, total int)
	progressMu sync.Mutex
}

// New builds an Evaluator. concepts[i] holds the ground-truth concepts of
// questions[i]; they are trimmed and empty ones dropped.
func New(questions []string, concepts [][]string, opts ...Option) (*Evaluator, error) {
	if questions == nil || concepts == nil {
		return nil, ErrInvalidInput
	}

	if len(questions) != len(concepts) {
		return nil, fmt.Errorf("%w: %d questions, %d concept lines", ErrLengthMismatch, len(questions), len(concepts))
	}

	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}

	truth := make([]map[string]bool, len(concepts))
	for i, cs := range concepts {
		truth[i] = map[string]bool{}
		for _, c := range cs {
			if c = strings.TrimSpace(c); c != "" {
				truth[i][c] = true
			}
		}
	}

	return &Evaluator{
		questions: questions,
		truth:     truth,
		logger:    o.logger,
		progress:  o.progress,
	}, nil
}

// Eval classifies every question with ex and adds the outcome to the
// counters. Questions that fail are logged and skipped.
func (e *Evaluator) Eval(ctx context.Context, ex extract.Extractor) error {
	total := len(e.questions)
	for i := range e.questions {
		if err := ctx.Err(); err != nil {
			return err
		}

		c, err := e.classify(ctx, ex, i)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			e.skip(i, err)
			e.skipped++
		} else {
			e.counters.Add(c)
		}

		e.report(i+1, total)
	}

	return nil
}

// EvalParallel is Eval run by workers goroutines. Each worker builds its own
// extractor with newExtractor; partial counters are merged at the end.
func (e *Evaluator) EvalParallel(ctx context.Context, workers int, newExtractor func() (extract.Extractor, error)) error {
	if workers < 1 {
		workers = 1
	}

	total := len(e.questions)
	partials := make([]Counters, workers)
	skipped := make([]int, workers)
	var done atomic.Int64

	jobs := make(chan int)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		for i := range e.questions {
			select {
			case jobs <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for w := range workers {
		g.Go(func() error {
			ex, err := newExtractor()
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}

			for i := range jobs {
				c, err := e.classify(gctx, ex, i)
				if err != nil {
					if gctx.Err() != nil {
						return gctx.Err()
					}
					e.skip(i, err)
					skipped[w]++
				} else {
					partials[w].Add(c)
				}

				e.report(int(done.Add(1)), total)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}

	for w := range workers {
		e.counters.Add(partials[w])
		e.skipped += skipped[w]
	}

	return nil
}

// classify returns the counts of question i. Nothing is counted on error.
func (e *Evaluator) classify(ctx context.Context, ex extract.Extractor, i int) (Counters, error) {
	r, err := ex.Classify(ctx, e.questions[i])
	if err != nil {
		return Counters{}, err
	}

	var c Counters
	truth := e.truth[i]
	for _, concept := range r.Concepts {
		if truth[concept] {
			c.TP++
		} else {
			c.FP++
		}
	}

	for _, n := range r.NotConcepts {
		if truth[n] {
			c.FN++
		} else {
			c.TN++
		}
	}

	return c, nil
}

func (e *Evaluator) skip(i int, err error) {
	e.logger.Warn("question skipped", "index", i, "question", e.questions[i], "error", err)
}

func (e *Evaluator) report(done, total int) {
	if e.progress == nil {
		return
	}

	e.progressMu.Lock()
	defer e.progressMu.Unlock()
	e.progress(done, total)
}

// Reset zeroes the counters and the skipped count.
func (e *Evaluator) Reset() {
	e.counters = Counters{}
	e.skipped = 0
}

func (e *Evaluator) Counters() Counters {
	return e.counters
}

// Skipped is the number of questions that failed since the last Reset.
func (e *Evaluator) Skipped() int {
	return e.skipped
}

// Len is the number of questions.
func (e *Evaluator) Len() int {
	return len(e.questions)
}

func (e *Evaluator) Precision() float64 {
	return e.counters.Precision()
}

func (e *Evaluator) Recall() float64 {
	return e.counters.Recall()
}

func (e *Evaluator) Accuracy() float64 {
	return e.counters.Accuracy()
}

func (e *Evaluator) FMeasure() float64 {
	return e.counters.FMeasure()
}
