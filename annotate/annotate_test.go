package annotate

import (
	"context"
	"strings"
	"testing"

	sent "github.com/revelaction/qconcept/sentence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(words []Word) []string {
	ts := make([]string, len(words))
	for i, w := range words {
		ts[i] = w.Text
	}
	return ts
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "Where is", Normalize("  Where is \n"))
	assert.Equal(t, "fi", Normalize("ﬁ"))
	assert.Equal(t, "", Normalize(" \t "))
}

func TestTokenize(t *testing.T) {
	t.Run("Words and offsets", func(t *testing.T) {
		words := Tokenize("Where is San Francisco?")
		assert.Equal(t, []string{"Where", "is", "San", "Francisco", "?"}, texts(words))
		assert.Equal(t, 9, words[2].Start)
		assert.Equal(t, 22, words[3].End())
		assert.Equal(t, 22, words[4].Start)
	})

	t.Run("Percent sign is a word", func(t *testing.T) {
		assert.Equal(t, []string{"50", "%"}, texts(Tokenize("50%")))
	})

	t.Run("Empty text", func(t *testing.T) {
		assert.Empty(t, Tokenize("   "))
	})
}

func TestSentences(t *testing.T) {
	ss := Sentences(Tokenize("Hi. Who are you? Bye"))
	require.Len(t, ss, 3)
	assert.Equal(t, []string{"Hi", "."}, texts(ss[0]))
	assert.Equal(t, []string{"Who", "are", "you", "?"}, texts(ss[1]))
	assert.Equal(t, []string{"Bye"}, texts(ss[2]))
}

func TestTagger(t *testing.T) {
	tg := NewTagger()

	t.Run("Lexicon and proper nouns", func(t *testing.T) {
		tags := tg.Tag([]string{"Where", "is", "San", "Francisco", "?"})
		assert.Equal(t, []string{"WRB", "VBZ", "NNP", "NNP", "."}, tags)
	})

	t.Run("Determiner turns a verb into a noun", func(t *testing.T) {
		assert.Equal(t, []string{"DT", "NN"}, tg.Tag([]string{"the", "running"}))
	})

	t.Run("Modal turns a noun into a verb", func(t *testing.T) {
		assert.Equal(t, []string{"MD", "VB"}, tg.Tag([]string{"can", "cook"}))
	})

	t.Run("Suffix heuristics", func(t *testing.T) {
		tags := tg.Tag([]string{"famous", "invention", "quickly", "1990"})
		assert.Equal(t, []string{"JJ", "NN", "RB", "CD"}, tags)
	})

	t.Run("Added words", func(t *testing.T) {
		tg := NewTagger()
		tg.Add("Cook", "NN")
		assert.Equal(t, []string{"NN"}, tg.Tag([]string{"cook"}))
	})
}

func TestRecognizer(t *testing.T) {
	r := NewRecognizer()
	r.Add("San Francisco", sent.Location)

	cases := []struct {
		name  string
		words []string
		want  []sent.EntityTag
	}{
		{"Year", []string{"in", "1990"}, []sent.EntityTag{sent.Outside, sent.Date}},
		{"Percent", []string{"50", "%"}, []sent.EntityTag{sent.Percent, sent.Percent}},
		{"Clock time", []string{"5", "pm"}, []sent.EntityTag{sent.Time, sent.Time}},
		{"Compact clock time", []string{"5pm"}, []sent.EntityTag{sent.Time}},
		{"Month and day", []string{"July", "4"}, []sent.EntityTag{sent.Date, sent.Date}},
		{"Number word", []string{"three", "cats"}, []sent.EntityTag{sent.Number, sent.Outside}},
		{"Gazetteer phrase", []string{"in", "San", "Francisco", "?"}, []sent.EntityTag{sent.Outside, sent.Location, sent.Location, sent.Outside}},
		{"Partial phrase", []string{"San", "Diego"}, []sent.EntityTag{sent.Outside, sent.Outside}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, r.Recognize(c.words))
		})
	}
}

func TestRecognizerLoad(t *testing.T) {
	t.Run("Load a gazetteer", func(t *testing.T) {
		r := NewRecognizer()
		err := r.Load(strings.NewReader("# places\nLOCATION\tNew York\n\nperson\tAbraham Lincoln\n"))
		require.NoError(t, err)

		tags := r.Recognize([]string{"Abraham", "Lincoln", "visited", "New", "York"})
		assert.Equal(t, []sent.EntityTag{sent.Person, sent.Person, sent.Outside, sent.Location, sent.Location}, tags)
	})

	t.Run("Unknown tag", func(t *testing.T) {
		err := NewRecognizer().Load(strings.NewReader("MISC\tFoo\n"))
		assert.ErrorContains(t, err, "line 1")
	})

	t.Run("Missing tab", func(t *testing.T) {
		err := NewRecognizer().Load(strings.NewReader("LOCATION New York\n"))
		assert.Error(t, err)
	})
}

func TestLexiconAnnotate(t *testing.T) {
	l := NewLexicon()
	l.Recognizer.Add("San Francisco", sent.Location)
	l.Recognizer.Add("California", sent.Location)

	q, err := l.Annotate(context.Background(), "Where is San Francisco? It is in California.")
	require.NoError(t, err)
	require.Len(t, q.Sentences, 2)

	tokens := q.Tokens()
	require.Len(t, tokens, 10)
	for i, tk := range tokens {
		assert.Equal(t, i, tk.Index)
	}

	assert.Equal(t, "San", tokens[2].Text)
	assert.Equal(t, sent.Location, tokens[2].Entity())
	assert.Equal(t, sent.Noun, tokens[3].Class())
	assert.Equal(t, 1, tokens[5].SentenceId)
	assert.Equal(t, "O", tokens[5].Ner)
	assert.Equal(t, sent.Location, tokens[8].Entity())
}
