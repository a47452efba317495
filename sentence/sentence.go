package sentence

import (
	"strings"
)

// Question is an annotated question: its raw text split into sentences.
type Question struct {
	Text string `json:"text"`

	Sentences []Sentence `json:"sentences"`
}

// Tokens returns all tokens of the question in order, flattening sentences.
func (q Question) Tokens() []Token {
	var tokens []Token
	for _, s := range q.Sentences {
		tokens = append(tokens, s.Tokens...)
	}
	return tokens
}

// Sentence is an ordered list of tokens.
type Sentence struct {
	Id     int     `json:"id"`
	Tokens []Token `json:"tokens"`
}

// Token represents a word of the question, with POS and named entity
// annotations.
type Token struct {
	SentenceId int `json:"sent"`

	// The index of the word in the question, starting at 0. Strictly
	// increasing across sentences.
	Index int `json:"index"`

	// the byte offset of the start of the token in the question text
	Idx int `json:"idx"`

	// The unmodified word
	Text string `json:"text"`

	// Part of speech tag, Penn Treebank (NN, VBZ...) or Universal (NOUN,
	// VERB...).
	Pos string `json:"pos"`

	// Named entity tag. Empty or "O" for tokens outside any entity.
	Ner string `json:"ner"`
}

// Class returns the coarse POS class of the token.
func (t Token) Class() POSClass {
	return ClassOf(t.Pos)
}

// Entity returns the recognized entity tag of the token, Outside for
// unrecognized or missing tags.
func (t Token) Entity() EntityTag {
	tag, _ := ParseEntityTag(t.Ner)
	return tag
}

// POSClass is the coarse part of speech used by the extractors.
type POSClass int

const (
	Other POSClass = iota
	Noun
	Verb
	Adjective
)

func (c POSClass) String() string {
	switch c {
	case Noun:
		return "noun"
	case Verb:
		return "verb"
	case Adjective:
		return "adjective"
	}
	return "other"
}

// Scorable reports whether tokens of this class take part in depth scoring.
func (c POSClass) Scorable() bool {
	return c != Other
}

// ClassOf maps a Penn Treebank or Universal POS tag to its class.
func ClassOf(tag string) POSClass {
	switch tag {
	case "NOUN", "PROPN":
		return Noun
	case "VERB", "AUX":
		return Verb
	case "ADJ":
		return Adjective
	}

	switch {
	case strings.HasPrefix(tag, "NN"):
		return Noun
	case strings.HasPrefix(tag, "VB"):
		return Verb
	case strings.HasPrefix(tag, "JJ"):
		return Adjective
	}

	return Other
}

// EntityTag is a named entity category.
type EntityTag string

const (
	Outside      EntityTag = "O"
	Location     EntityTag = "LOCATION"
	Person       EntityTag = "PERSON"
	Organization EntityTag = "ORGANIZATION"
	Date         EntityTag = "DATE"
	Number       EntityTag = "NUMBER"
	Time         EntityTag = "TIME"
	Percent      EntityTag = "PERCENT"
)

// EntityTags returns the recognized entity categories.
func EntityTags() []EntityTag {
	return []EntityTag{Location, Person, Organization, Date, Number, Time, Percent}
}

// ParseEntityTag returns the entity tag for s. Unknown tags yield Outside
// and false.
func ParseEntityTag(s string) (EntityTag, bool) {
	for _, t := range EntityTags() {
		if string(t) == s {
			return t, true
		}
	}
	return Outside, false
}
