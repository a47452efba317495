package annotate

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// Word is a token of a text before tagging.
type Word struct {
	Text string

	// byte offset in the text
	Start int
}

func (w Word) End() int {
	return w.Start + len(w.Text)
}

// Tokenize splits text at Unicode word boundaries, dropping whitespace.
func Tokenize(text string) []Word {
	var words []Word

	state := -1
	offset := 0
	rest := text
	for len(rest) > 0 {
		var w string
		w, rest, state = uniseg.FirstWordInString(rest, state)
		start := offset
		offset += len(w)

		if strings.TrimSpace(w) == "" {
			continue
		}

		words = append(words, Word{Text: w, Start: start})
	}

	return words
}

// Sentences groups words into sentences ending at a terminal punctuation
// word.
func Sentences(words []Word) [][]Word {
	var sentences [][]Word
	var cur []Word
	for _, w := range words {
		cur = append(cur, w)
		if isTerminal(w.Text) {
			sentences = append(sentences, cur)
			cur = nil
		}
	}

	if len(cur) > 0 {
		sentences = append(sentences, cur)
	}

	return sentences
}

func isTerminal(s string) bool {
	switch s {
	case ".", "?", "!", "…":
		return true
	}
	return false
}

func isPunct(s string) bool {
	for _, r := range s {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return s != ""
}
