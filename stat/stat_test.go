package stat

import (
	"testing"

	sent "github.com/revelaction/qconcept/sentence"
	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	h := NewHandler()
	assert.Equal(t, 0, h.Get().NumQuestions)

	h.Aggregate(sent.Question{Sentences: []sent.Sentence{{Tokens: []sent.Token{
		{Text: "Where", Pos: "WRB", Ner: "O"},
		{Text: "is", Pos: "VBZ", Ner: "O"},
		{Text: "San", Pos: "NNP", Ner: "LOCATION"},
		{Text: "Francisco", Pos: "NNP", Ner: "LOCATION"},
	}}}})
	h.Aggregate(sent.Question{Sentences: []sent.Sentence{
		{Tokens: []sent.Token{{Text: "Hi", Pos: "UH", Ner: "O"}}},
		{Tokens: []sent.Token{{Text: "Who", Pos: "WP", Ner: "O"}}},
	}})

	s := h.Get()
	assert.Equal(t, 2, s.NumQuestions)
	assert.Equal(t, 3, s.NumSentences)
	assert.Equal(t, 6, s.NumTokens)
	assert.Equal(t, 3.0, s.TokensPerQuestionMean)
	assert.Equal(t, map[int]int{4: 1, 2: 1}, s.TokensPerQuestionDis)
	assert.Equal(t, 2, s.NumEntityTokens)
	assert.Equal(t, 2, s.EntityDis[sent.Location])
	assert.Equal(t, 3, s.NumScorableTokens)
}
