// Package cache memoizes ontology reads.
package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/revelaction/qconcept/sense"
	"github.com/revelaction/qconcept/storage"
)

const cleanupInterval = 10 * time.Minute

// Reader wraps a SenseReader, caching lookups and reads. Errors are not
// cached.
type Reader struct {
	next  storage.SenseReader
	items *gocache.Cache
}

var _ storage.SenseReader = (*Reader)(nil)

// NewReader caches the results of r for the given duration. A zero
// expiration keeps items for the life of the process.
func NewReader(r storage.SenseReader, expiration time.Duration) *Reader {
	if expiration <= 0 {
		expiration = gocache.NoExpiration
	}
	return &Reader{
		next:  r,
		items: gocache.New(expiration, cleanupInterval),
	}
}

func (r *Reader) Lookup(ctx context.Context, lemma string, cat sense.Category) ([]sense.Entry, error) {
	key := "l:" + string(cat) + ":" + lemma
	if v, ok := r.items.Get(key); ok {
		return v.([]sense.Entry), nil
	}

	entries, err := r.next.Lookup(ctx, lemma, cat)
	if err != nil {
		return nil, err
	}

	r.items.SetDefault(key, entries)
	return entries, nil
}

func (r *Reader) Read(ctx context.Context, id string) (sense.Entry, error) {
	key := "s:" + id
	if v, ok := r.items.Get(key); ok {
		return v.(sense.Entry), nil
	}

	e, err := r.next.Read(ctx, id)
	if err != nil {
		return sense.Entry{}, err
	}

	r.items.SetDefault(key, e)
	return e, nil
}

// Len returns the number of cached items.
func (r *Reader) Len() int {
	return r.items.ItemCount()
}
