// Package depth scores words by how deep their noun senses sit in the
// hypernym hierarchy.
package depth

import (
	"context"
	"errors"
	"fmt"

	sent "github.com/revelaction/qconcept/sentence"
	"github.com/revelaction/qconcept/sense"
	"github.com/revelaction/qconcept/storage"
)

// ErrCycle is returned when a hypernym walk visits a sense twice.
var ErrCycle = errors.New("hypernym cycle")

type Scorer struct {
	senses storage.SenseReader
}

func NewScorer(r storage.SenseReader) *Scorer {
	return &Scorer{senses: r}
}

// Token scores the text of a noun, verb or adjective token. Other tokens
// are not found.
func (sc *Scorer) Token(ctx context.Context, t sent.Token) (float64, bool, error) {
	if !t.Class().Scorable() {
		return 0, false, nil
	}
	return sc.Text(ctx, t.Text)
}

// Text returns the mean depth of the noun senses of s. found is false when
// s has no noun sense.
func (sc *Scorer) Text(ctx context.Context, s string) (depth float64, found bool, err error) {
	entries, err := sc.Senses(ctx, s)
	if err != nil {
		return 0, false, err
	}

	if len(entries) == 0 {
		return 0, false, nil
	}

	total := 0
	for _, e := range entries {
		d, err := sc.Sense(ctx, e)
		if err != nil {
			return 0, false, err
		}
		total += d
	}

	return float64(total) / float64(len(entries)), true, nil
}

// Senses returns the noun senses of s and of its base forms, without
// duplicates.
func (sc *Scorer) Senses(ctx context.Context, s string) ([]sense.Entry, error) {
	key := sense.Key(s)
	if key == "" {
		return nil, nil
	}

	var entries []sense.Entry
	seen := map[string]bool{}
	for _, k := range append([]string{key}, sense.BaseForms(key)...) {
		found, err := sc.senses.Lookup(ctx, k, sense.Noun)
		if err != nil {
			return nil, fmt.Errorf("lookup %q: %w", k, err)
		}

		for _, e := range found {
			if seen[e.ID] {
				continue
			}
			seen[e.ID] = true
			entries = append(entries, e)
		}
	}

	return entries, nil
}

// Sense returns the number of senses visited walking up from e, e
// included. A sense without hypernyms has depth 1.
func (sc *Scorer) Sense(ctx context.Context, e sense.Entry) (int, error) {
	visited := map[string]bool{e.ID: true}
	depth := 1
	cur := e
	for {
		parent, ok := cur.Parent()
		if !ok {
			return depth, nil
		}

		if visited[parent] {
			return 0, fmt.Errorf("%w: %s -> %s", ErrCycle, cur.ID, parent)
		}
		visited[parent] = true

		next, err := sc.senses.Read(ctx, parent)
		if err != nil {
			return 0, fmt.Errorf("read hypernym of %s: %w", cur.ID, err)
		}

		cur = next
		depth++
	}
}
