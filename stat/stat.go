package stat

import (
	sent "github.com/revelaction/qconcept/sentence"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumQuestions          int
	NumSentences          int
	NumTokens             int
	TokensPerQuestionMean float64
	TokensPerQuestionDis  map[int]int

	// tokens inside a named entity
	NumEntityTokens int
	EntityDis       map[sent.EntityTag]int

	// nouns, verbs and adjectives
	NumScorableTokens int
}

func (h *Handler) Get() Stats {
	return h.stats
}

func NewHandler() *Handler {
	stats := Stats{
		TokensPerQuestionDis: map[int]int{},
		EntityDis:            map[sent.EntityTag]int{},
	}
	return &Handler{
		stats: stats,
	}
}

func (h *Handler) Aggregate(q sent.Question) {
	h.stats.NumQuestions++
	h.stats.NumSentences += len(q.Sentences)

	tokens := q.Tokens()
	h.stats.NumTokens += len(tokens)
	h.stats.TokensPerQuestionDis[len(tokens)]++

	for _, t := range tokens {
		if e := t.Entity(); e != sent.Outside {
			h.stats.NumEntityTokens++
			h.stats.EntityDis[e]++
		}

		if t.Class().Scorable() {
			h.stats.NumScorableTokens++
		}
	}

	h.stats.TokensPerQuestionMean = float64(h.stats.NumTokens) / float64(h.stats.NumQuestions)
}
