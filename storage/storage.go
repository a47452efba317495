package storage

import (
	"context"
	"errors"

	"github.com/revelaction/qconcept/sense"
)

// ErrNotFound is returned by SenseReader.Read for an unknown sense ID.
var ErrNotFound = errors.New("sense not found")

// SenseReader defines read operations for the lexical ontology
type SenseReader interface {
	// Lookup returns the senses of the given lemma key (see sense.Key) in
	// the category. An unknown lemma returns no senses and no error.
	Lookup(ctx context.Context, lemma string, cat sense.Category) ([]sense.Entry, error)

	// Read returns a single sense by ID
	Read(ctx context.Context, id string) (sense.Entry, error)
}

// SenseWriter defines write operations for the lexical ontology
type SenseWriter interface {
	// Write persists a sense, indexed by each of its words
	Write(ctx context.Context, e sense.Entry) error
}

// SenseRepository combines read and write operations
type SenseRepository interface {
	SenseReader
	SenseWriter
}

// SenseWalker defines an optional capability for repositories that can
// enumerate all their senses, used to copy an ontology between backends.
type SenseWalker interface {
	// Count returns the number of senses of the category
	Count(ctx context.Context, cat sense.Category) (int, error)

	// Walk calls fn for every sense of the category.
	Walk(ctx context.Context, cat sense.Category, fn func(sense.Entry) error) error
}
