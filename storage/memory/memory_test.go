package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/revelaction/qconcept/sense"
	"github.com/revelaction/qconcept/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := NewStore(
		sense.Entry{ID: "n1", Category: sense.Noun, Words: []string{"entity"}},
		sense.Entry{ID: "n2", Category: sense.Noun, Words: []string{"San_Francisco", "Frisco"}, InstanceHypernyms: []string{"n1"}},
	)

	t.Run("Lookup by lower case key", func(t *testing.T) {
		got, err := s.Lookup(ctx, "san_francisco", sense.Noun)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "n2", got[0].ID)
	})

	t.Run("Unknown lemma has no senses", func(t *testing.T) {
		got, err := s.Lookup(ctx, "unicorn", sense.Noun)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Read unknown id", func(t *testing.T) {
		_, err := s.Read(ctx, "n9")
		assert.True(t, errors.Is(err, storage.ErrNotFound))
	})

	t.Run("Walk in insertion order", func(t *testing.T) {
		var ids []string
		err := s.Walk(ctx, sense.Noun, func(e sense.Entry) error {
			ids = append(ids, e.ID)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"n1", "n2"}, ids)

		n, err := s.Count(ctx, sense.Noun)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})
}
