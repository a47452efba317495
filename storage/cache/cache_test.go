package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/revelaction/qconcept/sense"
	"github.com/revelaction/qconcept/storage"
	"github.com/revelaction/qconcept/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingReader struct {
	storage.SenseReader
	lookups, reads int
}

func (c *countingReader) Lookup(ctx context.Context, lemma string, cat sense.Category) ([]sense.Entry, error) {
	c.lookups++
	return c.SenseReader.Lookup(ctx, lemma, cat)
}

func (c *countingReader) Read(ctx context.Context, id string) (sense.Entry, error) {
	c.reads++
	return c.SenseReader.Read(ctx, id)
}

func TestReader(t *testing.T) {
	ctx := context.Background()
	next := &countingReader{SenseReader: memory.NewStore(
		sense.Entry{ID: "n1", Category: sense.Noun, Words: []string{"dog"}},
	)}
	r := NewReader(next, 0)

	t.Run("Lookup is served from the cache", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			got, err := r.Lookup(ctx, "dog", sense.Noun)
			require.NoError(t, err)
			require.Len(t, got, 1)
		}
		assert.Equal(t, 1, next.lookups)
	})

	t.Run("Misses are cached too", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			got, err := r.Lookup(ctx, "cat", sense.Noun)
			require.NoError(t, err)
			assert.Empty(t, got)
		}
		assert.Equal(t, 2, next.lookups)
	})

	t.Run("Errors are not cached", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			_, err := r.Read(ctx, "n9")
			assert.True(t, errors.Is(err, storage.ErrNotFound))
		}
		assert.Equal(t, 2, next.reads)

		_, err := r.Read(ctx, "n1")
		require.NoError(t, err)
		_, err = r.Read(ctx, "n1")
		require.NoError(t, err)
		assert.Equal(t, 3, next.reads)
	})

	assert.Equal(t, 3, r.Len())
}
