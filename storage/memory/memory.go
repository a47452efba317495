// Package memory is an in-memory ontology store.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/revelaction/qconcept/sense"
	"github.com/revelaction/qconcept/storage"
)

type Store struct {
	mu     sync.RWMutex
	senses map[string]sense.Entry
	order  []string
	lemmas map[string][]string
}

var _ storage.SenseRepository = (*Store)(nil)
var _ storage.SenseWalker = (*Store)(nil)

func NewStore(entries ...sense.Entry) *Store {
	s := &Store{
		senses: map[string]sense.Entry{},
		lemmas: map[string][]string{},
	}
	for _, e := range entries {
		_ = s.Write(context.Background(), e)
	}
	return s
}

func (s *Store) Lookup(ctx context.Context, lemma string, cat sense.Category) ([]sense.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var entries []sense.Entry
	for _, id := range s.lemmas[lemma] {
		e := s.senses[id]
		if e.Category == cat {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (s *Store) Read(ctx context.Context, id string) (sense.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.senses[id]
	if !ok {
		return sense.Entry{}, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	return e, nil
}

func (s *Store) Write(ctx context.Context, e sense.Entry) error {
	if e.ID == "" {
		return fmt.Errorf("sense without id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.senses[e.ID]; !ok {
		s.order = append(s.order, e.ID)
		for _, w := range e.Words {
			key := sense.Key(w)
			s.lemmas[key] = append(s.lemmas[key], e.ID)
		}
	}
	s.senses[e.ID] = e
	return nil
}

func (s *Store) Count(ctx context.Context, cat sense.Category) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, e := range s.senses {
		if e.Category == cat {
			n++
		}
	}
	return n, nil
}

func (s *Store) Walk(ctx context.Context, cat sense.Category, fn func(sense.Entry) error) error {
	s.mu.RLock()
	ids := append([]string(nil), s.order...)
	s.mu.RUnlock()

	for _, id := range ids {
		e, err := s.Read(ctx, id)
		if err != nil {
			return err
		}
		if e.Category != cat {
			continue
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}
