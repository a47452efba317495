package zombiezen

import (
	"context"
	_ "embed"
	"fmt"

	"zombiezen.com/go/sqlite/sqlitex"
)

// sense, lemma and pointer tables
//
//go:embed sql/senses.sql
var sensesSQL string

// CreateSenseTables creates the ontology tables when missing. An already
// imported database keeps its rows.
func CreateSenseTables(ctx context.Context, pool *sqlitex.Pool) error {
	conn, err := pool.Take(ctx)
	if err != nil {
		return err
	}
	defer pool.Put(conn)

	if err := sqlitex.ExecuteScript(conn, sensesSQL, nil); err != nil {
		return fmt.Errorf("create sense tables: %w", err)
	}
	return nil
}
