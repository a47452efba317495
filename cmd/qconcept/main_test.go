package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/qconcept/render"
	"github.com/revelaction/qconcept/sense"
	"github.com/revelaction/qconcept/storage/sqlite/zombiezen"
)

// corpus writes a SQLite ontology, a gazetteer and a one question corpus.
func corpus(t *testing.T) (dir string) {
	t.Helper()
	dir = t.TempDir()

	pool, err := zombiezen.NewPool(filepath.Join(dir, "wn.db"))
	require.NoError(t, err)
	defer pool.Close()
	require.NoError(t, zombiezen.CreateSenseTables(context.Background(), pool))

	store := zombiezen.NewSenseStore(pool)
	require.NoError(t, store.WriteBatch(context.Background(), []sense.Entry{
		{ID: "n00000001", Category: sense.Noun, Words: []string{"entity"}},
		{ID: "n00000002", Category: sense.Noun, Words: []string{"city"}, Hypernyms: []string{"n00000001"}},
		{ID: "n00000003", Category: sense.Noun, Words: []string{"San_Francisco"}, InstanceHypernyms: []string{"n00000002"}},
	}))

	files := map[string]string{
		"gazetteer.tsv": "LOCATION\tSan Francisco\n",
		"questions.txt": "Where is San Francisco?\n",
		"concepts.txt":  "San Francisco\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	return dir
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := newApp(UI{Out: &out, Err: &errOut}).Run(append([]string{"qconcept"}, args...))
	return out.String(), errOut.String(), err
}

func TestEvalCommand(t *testing.T) {
	dir := corpus(t)
	global := []string{
		"--ontology", filepath.Join(dir, "wn.db"),
		"--gazetteer", filepath.Join(dir, "gazetteer.tsv"),
		"--annotator", "lexicon",
	}
	evalArgs := []string{
		"eval",
		"--questions", filepath.Join(dir, "questions.txt"),
		"--concepts", filepath.Join(dir, "concepts.txt"),
		"--no-progress", "--no-color",
	}

	t.Run("All policies in order", func(t *testing.T) {
		out, _, err := run(t, append(global, evalArgs...)...)
		require.NoError(t, err)

		ner := strings.Index(out, "Results for NER:")
		wordnet := strings.Index(out, "Results for WordNet:")
		hybrid := strings.Index(out, "Results for Hybrid:")
		require.True(t, ner >= 0 && wordnet > ner && hybrid > wordnet, out)

		assert.Contains(t, out, "Results for NER:\nAccuracy = 1.0000\nPrecision = 1.0000\nRecall = 1.0000\nF-Measure = 1.0000\n")
	})

	t.Run("Parallel JSON", func(t *testing.T) {
		out, _, err := run(t, append(global, append(evalArgs, "--policy", "hybrid", "--workers", "2", "--format", render.FormatJSON)...)...)
		require.NoError(t, err)

		var rep struct {
			Policy    string `json:"policy"`
			Questions int    `json:"questions"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &rep))
		assert.Equal(t, "Hybrid", rep.Policy)
		assert.Equal(t, 1, rep.Questions)
	})

	t.Run("Length mismatch", func(t *testing.T) {
		two := filepath.Join(dir, "two.txt")
		require.NoError(t, os.WriteFile(two, []byte("a\nb\n"), 0o644))

		args := append(global, "eval", "--questions", two, "--concepts", filepath.Join(dir, "concepts.txt"), "--no-progress")
		_, _, err := run(t, args...)
		assert.ErrorContains(t, err, "differ in length")
	})

	t.Run("Missing file", func(t *testing.T) {
		args := append(global, "eval", "--questions", filepath.Join(dir, "none.txt"), "--concepts", filepath.Join(dir, "concepts.txt"))
		_, _, err := run(t, args...)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("Default corpus paths", func(t *testing.T) {
		_, _, err := run(t, append(global, "eval", "--no-progress")...)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.ErrorContains(t, err, "corpus/questions.txt")
	})
}

func TestClassifyCommand(t *testing.T) {
	dir := corpus(t)

	out, _, err := run(t,
		"--ontology", filepath.Join(dir, "wn.db"),
		"--gazetteer", filepath.Join(dir, "gazetteer.tsv"),
		"classify", "--policy", "ner", "--no-color", "Where is San Francisco?",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "  concepts:     San Francisco\n")

	_, _, err = run(t, "classify")
	assert.Error(t, err)
}

func TestStatCommand(t *testing.T) {
	dir := corpus(t)

	out, _, err := run(t, "--gazetteer", filepath.Join(dir, "gazetteer.tsv"), "stat", "--questions", filepath.Join(dir, "questions.txt"))
	require.NoError(t, err)
	assert.Contains(t, out, "Num questions 1, num sentences 1, num tokens 5\n")
	assert.Contains(t, out, "Num entity tokens 2")
}

func TestImportCommand(t *testing.T) {
	dict := t.TempDir()

	entity := "00000000 03 n 01 entity 0 000 | that which exists\n"
	city := fmt.Sprintf("%08d 15 n 01 city 0 001 @ 00000000 n 0000 | a large town\n", len(entity))
	require.NoError(t, os.WriteFile(filepath.Join(dict, "data.noun"), []byte(entity+city), 0o644))

	index := fmt.Sprintf("city n 1 1 @ 1 0 %08d\nentity n 1 0 1 0 00000000\n", len(entity))
	require.NoError(t, os.WriteFile(filepath.Join(dict, "index.noun"), []byte(index), 0o644))

	db := filepath.Join(t.TempDir(), "wn.db")
	out, _, err := run(t, "import", "--from", dict, "--to", db, "--no-progress")
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully imported 2 senses")

	out, _, err = run(t, "--ontology", db, "classify", "--policy", "wordnet", "--format", "json", "Which city?")
	require.NoError(t, err)
	assert.Contains(t, out, `"question":"Which city?"`)
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "qconcept version dev (commit: none)\n", out)
}

func TestBashCommand(t *testing.T) {
	out, _, err := run(t, "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "complete -o bashdefault -o default -F _qconcept_autocomplete qconcept")
}

func TestFprintErr(t *testing.T) {
	var buf bytes.Buffer
	fprintErr(&buf, fmt.Errorf("boom"))
	assert.Equal(t, "qconcept: boom\n", buf.String())
}
