package annotate

import (
	"context"

	sent "github.com/revelaction/qconcept/sentence"
)

// Lexicon is a deterministic annotator built on a Tagger and a Recognizer.
type Lexicon struct {
	Tagger     *Tagger
	Recognizer *Recognizer
}

var _ Annotator = (*Lexicon)(nil)

func NewLexicon() *Lexicon {
	return &Lexicon{
		Tagger:     NewTagger(),
		Recognizer: NewRecognizer(),
	}
}

func (l *Lexicon) Annotate(ctx context.Context, text string) (sent.Question, error) {
	q := sent.Question{Text: text}

	index := 0
	for sid, words := range Sentences(Tokenize(text)) {
		if err := ctx.Err(); err != nil {
			return sent.Question{}, err
		}

		texts := make([]string, len(words))
		for i, w := range words {
			texts[i] = w.Text
		}

		tags := l.Tagger.Tag(texts)
		entities := l.Recognizer.Recognize(texts)

		s := sent.Sentence{Id: sid}
		for i, w := range words {
			s.Tokens = append(s.Tokens, sent.Token{
				SentenceId: sid,
				Index:      index,
				Idx:        w.Start,
				Text:       w.Text,
				Pos:        tags[i],
				Ner:        string(entities[i]),
			})
			index++
		}

		q.Sentences = append(q.Sentences, s)
	}

	return q, nil
}
