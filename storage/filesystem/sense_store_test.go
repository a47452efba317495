package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/revelaction/qconcept/sense"
	"github.com/revelaction/qconcept/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "  1 This software and database is being provided to you, the LICENSEE, by\n" +
	"  2 Princeton University under the following license.\n"

type synset struct {
	words    []string
	hyper    []int
	instance []int
}

// writeDict writes a minimal WNDB dictionary and returns the offset of
// every synset in the data file.
func writeDict(t *testing.T, synsets []synset, exc string) (string, []int64) {
	t.Helper()

	line := func(off int64, s synset, offs []int64) string {
		var words []string
		for _, w := range s.words {
			words = append(words, w+" 0")
		}
		var ptrs []string
		for _, h := range s.hyper {
			ptrs = append(ptrs, fmt.Sprintf("@ %08d n 0000", offs[h]))
		}
		for _, h := range s.instance {
			ptrs = append(ptrs, fmt.Sprintf("@i %08d n 0000", offs[h]))
		}
		ptrs = append(ptrs, "~ 00000000 n 0000")
		return fmt.Sprintf("%08d 03 n %02x %s %03d %s | gloss of %s  \n",
			off, len(s.words), strings.Join(words, " "), len(ptrs), strings.Join(ptrs, " "), s.words[0])
	}

	// offsets are fixed width, so line lengths do not depend on them
	offs := make([]int64, len(synsets))
	pos := int64(len(header))
	for i, s := range synsets {
		offs[i] = pos
		pos += int64(len(line(0, s, make([]int64, len(synsets)))))
	}

	var data strings.Builder
	data.WriteString(header)
	lemmas := map[string][]int64{}
	var order []string
	for i, s := range synsets {
		data.WriteString(line(offs[i], s, offs))
		for _, w := range s.words {
			key := strings.ToLower(w)
			if _, ok := lemmas[key]; !ok {
				order = append(order, key)
			}
			lemmas[key] = append(lemmas[key], offs[i])
		}
	}

	var index strings.Builder
	index.WriteString(header)
	for _, l := range order {
		var fields []string
		for _, o := range lemmas[l] {
			fields = append(fields, fmt.Sprintf("%08d", o))
		}
		fmt.Fprintf(&index, "%s n %d 1 @ %d 0 %s  \n", l, len(fields), len(fields), strings.Join(fields, " "))
	}

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DataFile), []byte(data.String()), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, IndexFile), []byte(index.String()), 0644))
	if exc != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, ExceptionFile), []byte(exc), 0644))
	}

	return dir, offs
}

func fixture(t *testing.T) (*SenseStore, []int64) {
	dir, offs := writeDict(t, []synset{
		{words: []string{"entity"}},
		{words: []string{"object", "physical_object"}, hyper: []int{0}},
		{words: []string{"city", "metropolis"}, hyper: []int{1}},
		{words: []string{"San_Francisco", "Frisco"}, instance: []int{2}},
		{words: []string{"goose"}, hyper: []int{1}},
	}, "geese goose\n")

	s, err := NewSenseStore(dir)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, offs
}

func TestSenseStoreLookup(t *testing.T) {
	ctx := context.Background()
	s, offs := fixture(t)

	t.Run("Lookup a collocation", func(t *testing.T) {
		got, err := s.Lookup(ctx, "san_francisco", sense.Noun)
		require.NoError(t, err)
		require.Len(t, got, 1)

		e := got[0]
		assert.Equal(t, ID(offs[3]), e.ID)
		assert.Equal(t, []string{"San_Francisco", "Frisco"}, e.Words)
		assert.Empty(t, e.Hypernyms)
		assert.Equal(t, []string{ID(offs[2])}, e.InstanceHypernyms)
		assert.Equal(t, "gloss of San_Francisco", e.Gloss)
	})

	t.Run("Lookup follows exceptions", func(t *testing.T) {
		got, err := s.Lookup(ctx, "geese", sense.Noun)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, []string{"goose"}, got[0].Words)
	})

	t.Run("Unknown lemma", func(t *testing.T) {
		got, err := s.Lookup(ctx, "unicorn", sense.Noun)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Hypernyms ignore other pointers", func(t *testing.T) {
		e, err := s.Read(ctx, ID(offs[2]))
		require.NoError(t, err)
		assert.Equal(t, []string{ID(offs[1])}, e.Hypernyms)
	})
}

func TestSenseStoreRead(t *testing.T) {
	ctx := context.Background()
	s, offs := fixture(t)

	t.Run("Read a root", func(t *testing.T) {
		e, err := s.Read(ctx, ID(offs[0]))
		require.NoError(t, err)
		_, ok := e.Parent()
		assert.False(t, ok)
	})

	t.Run("Read a bad offset", func(t *testing.T) {
		_, err := s.Read(ctx, ID(offs[0]+3))
		assert.True(t, errors.Is(err, storage.ErrNotFound))

		_, err = s.Read(ctx, "v00000001")
		assert.True(t, errors.Is(err, storage.ErrNotFound))

		_, err = s.Read(ctx, ID(1<<40))
		assert.True(t, errors.Is(err, storage.ErrNotFound))
	})
}

func TestSenseStoreWalk(t *testing.T) {
	ctx := context.Background()
	s, offs := fixture(t)

	var ids []string
	err := s.Walk(ctx, sense.Noun, func(e sense.Entry) error {
		ids = append(ids, e.ID)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, ids, len(offs))
	assert.Equal(t, ID(offs[4]), ids[4])

	n, err := s.Count(ctx, sense.Noun)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestNewSenseStoreMissingDict(t *testing.T) {
	_, err := NewSenseStore(t.TempDir())
	assert.Error(t, err)
}
