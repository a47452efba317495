// Package span groups contiguous tokens into candidate concept spans.
package span

import (
	"strings"

	sent "github.com/revelaction/qconcept/sentence"
)

// Span is a non-empty run of contiguous tokens.
type Span struct {
	Tokens []sent.Token
}

// New returns a span holding the given token.
func New(t sent.Token) *Span {
	return &Span{Tokens: []sent.Token{t}}
}

// Append adds the tokens of o at the end of the span.
func (s *Span) Append(o *Span) {
	s.Tokens = append(s.Tokens, o.Tokens...)
}

// Text returns the member token texts joined by a single space.
func (s *Span) Text() string {
	texts := make([]string, len(s.Tokens))
	for i, t := range s.Tokens {
		texts[i] = t.Text
	}
	return strings.TrimSpace(strings.Join(texts, " "))
}

// IsSingle reports whether the span holds exactly one token.
func (s *Span) IsSingle() bool {
	return len(s.Tokens) == 1
}

func (s *Span) First() sent.Token {
	return s.Tokens[0]
}

func (s *Span) Last() sent.Token {
	return s.Tokens[len(s.Tokens)-1]
}

// Group partitions tokens into spans. A token joins the current span when
// same(previous token, token) holds, otherwise it opens a new one.
func Group(tokens []sent.Token, same func(prev, next sent.Token) bool) []*Span {
	spans := make([]*Span, 0, len(tokens))
	for _, t := range tokens {
		spans = append(spans, New(t))
	}

	return Merge(spans, func(prev, next *Span) bool {
		return same(prev.Last(), next.First())
	})
}

// Merge folds spans left to right: next is appended to the current span
// when same(prev, next) holds for the input span prev just before it. The
// input spans are not modified.
func Merge(spans []*Span, same func(prev, next *Span) bool) []*Span {
	merged := []*Span{}
	var cur *Span
	for i, s := range spans {
		if cur != nil && same(spans[i-1], s) {
			cur.Append(s)
			continue
		}

		cur = &Span{Tokens: append([]sent.Token(nil), s.Tokens...)}
		merged = append(merged, cur)
	}

	return merged
}
