// Package annotate turns question text into tokens carrying POS and named
// entity tags.
package annotate

import (
	"context"
	"strings"

	sent "github.com/revelaction/qconcept/sentence"
	"golang.org/x/text/unicode/norm"
)

// Annotator tokenizes a text, splits it into sentences and tags every token.
// Implementations are not required to be safe for concurrent use.
type Annotator interface {
	Annotate(ctx context.Context, text string) (sent.Question, error)
}

// Normalize applies NFKC normalization and trims surrounding whitespace.
func Normalize(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}
