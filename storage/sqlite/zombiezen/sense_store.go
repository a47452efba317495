package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/revelaction/qconcept/sense"
	"github.com/revelaction/qconcept/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const (
	kindHypernym         = "hypernym"
	kindInstanceHypernym = "instance_hypernym"
)

type SenseStore struct {
	pool *sqlitex.Pool
}

var _ storage.SenseRepository = (*SenseStore)(nil)
var _ storage.SenseWalker = (*SenseStore)(nil)

func NewSenseStore(pool *sqlitex.Pool) *SenseStore {
	return &SenseStore{pool: pool}
}

func (h *SenseStore) Lookup(ctx context.Context, lemma string, cat sense.Category) ([]sense.Entry, error) {
	conn, err := h.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var entries []sense.Entry
	err = sqlitex.Execute(conn, `
		SELECT s.id, s.category, s.words, s.gloss
		FROM sense_lemmas l JOIN senses s ON s.id = l.sense_id
		WHERE l.lemma = ? AND s.category = ?
		ORDER BY l.rowid`, &sqlitex.ExecOptions{
		Args: []interface{}{lemma, string(cat)},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			e, err := scanSense(stmt)
			if err != nil {
				return err
			}
			entries = append(entries, e)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	for i := range entries {
		if err := readPointers(conn, &entries[i]); err != nil {
			return nil, err
		}
	}

	return entries, nil
}

func (h *SenseStore) Read(ctx context.Context, id string) (sense.Entry, error) {
	conn, err := h.pool.Take(ctx)
	if err != nil {
		return sense.Entry{}, err
	}
	defer h.pool.Put(conn)

	var e sense.Entry
	found := false
	err = sqlitex.Execute(conn, "SELECT id, category, words, gloss FROM senses WHERE id = ?", &sqlitex.ExecOptions{
		Args: []interface{}{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			e, err = scanSense(stmt)
			return err
		},
	})
	if err != nil {
		return sense.Entry{}, err
	}
	if !found {
		return sense.Entry{}, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}

	if err := readPointers(conn, &e); err != nil {
		return sense.Entry{}, err
	}

	return e, nil
}

func (h *SenseStore) Write(ctx context.Context, e sense.Entry) error {
	return h.WriteBatch(ctx, []sense.Entry{e})
}

// WriteBatch persists the senses in a single transaction. Existing senses
// with the same ID are replaced.
func (h *SenseStore) WriteBatch(ctx context.Context, entries []sense.Entry) (err error) {
	conn, err := h.pool.Take(ctx)
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	// Start Transaction
	defer sqlitex.Save(conn)(&err)

	for _, e := range entries {
		if err = writeSense(conn, e); err != nil {
			return err
		}
	}

	return nil
}

func (h *SenseStore) Count(ctx context.Context, cat sense.Category) (int, error) {
	conn, err := h.pool.Take(ctx)
	if err != nil {
		return 0, err
	}
	defer h.pool.Put(conn)

	n := 0
	err = sqlitex.Execute(conn, "SELECT count(*) FROM senses WHERE category = ?", &sqlitex.ExecOptions{
		Args: []interface{}{string(cat)},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			n = stmt.ColumnInt(0)
			return nil
		},
	})
	return n, err
}

func (h *SenseStore) Walk(ctx context.Context, cat sense.Category, fn func(sense.Entry) error) error {
	conn, err := h.pool.Take(ctx)
	if err != nil {
		return err
	}

	// ids first, so fn may use the pool while walking
	var ids []string
	err = sqlitex.Execute(conn, "SELECT id FROM senses WHERE category = ? ORDER BY rowid", &sqlitex.ExecOptions{
		Args: []interface{}{string(cat)},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			ids = append(ids, stmt.ColumnText(0))
			return nil
		},
	})
	h.pool.Put(conn)
	if err != nil {
		return err
	}

	for _, id := range ids {
		e, err := h.Read(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(e); err != nil {
			return err
		}
	}

	return nil
}

func writeSense(conn *sqlite.Conn, e sense.Entry) error {
	words, err := json.Marshal(e.Words)
	if err != nil {
		return err
	}

	err = sqlitex.Execute(conn, "INSERT OR REPLACE INTO senses (id, category, words, gloss) VALUES (?, ?, ?, ?)", &sqlitex.ExecOptions{
		Args: []interface{}{e.ID, string(e.Category), string(words), e.Gloss},
	})
	if err != nil {
		return fmt.Errorf("failed to insert sense %s: %w", e.ID, err)
	}

	for _, q := range []string{
		"DELETE FROM sense_lemmas WHERE sense_id = ?",
		"DELETE FROM sense_pointers WHERE sense_id = ?",
	} {
		if err := sqlitex.Execute(conn, q, &sqlitex.ExecOptions{Args: []interface{}{e.ID}}); err != nil {
			return fmt.Errorf("failed to clear sense %s: %w", e.ID, err)
		}
	}

	for _, w := range e.Words {
		err = sqlitex.Execute(conn, "INSERT OR IGNORE INTO sense_lemmas (lemma, sense_id) VALUES (?, ?)", &sqlitex.ExecOptions{
			Args: []interface{}{sense.Key(w), e.ID},
		})
		if err != nil {
			return fmt.Errorf("failed to insert lemma: %w", err)
		}
	}

	pointers := map[string][]string{
		kindHypernym:         e.Hypernyms,
		kindInstanceHypernym: e.InstanceHypernyms,
	}
	for kind, targets := range pointers {
		for pos, target := range targets {
			err = sqlitex.Execute(conn, "INSERT INTO sense_pointers (sense_id, kind, position, target_id) VALUES (?, ?, ?, ?)", &sqlitex.ExecOptions{
				Args: []interface{}{e.ID, kind, pos, target},
			})
			if err != nil {
				return fmt.Errorf("failed to insert pointer: %w", err)
			}
		}
	}

	return nil
}

func scanSense(stmt *sqlite.Stmt) (sense.Entry, error) {
	e := sense.Entry{
		ID:       stmt.ColumnText(0),
		Category: sense.Category(stmt.ColumnText(1)),
		Gloss:    stmt.ColumnText(3),
	}
	if err := json.Unmarshal([]byte(stmt.ColumnText(2)), &e.Words); err != nil {
		return sense.Entry{}, fmt.Errorf("malformed words of sense %s: %w", e.ID, err)
	}
	return e, nil
}

func readPointers(conn *sqlite.Conn, e *sense.Entry) error {
	return sqlitex.Execute(conn, "SELECT kind, target_id FROM sense_pointers WHERE sense_id = ? ORDER BY kind, position", &sqlitex.ExecOptions{
		Args: []interface{}{e.ID},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			switch stmt.ColumnText(0) {
			case kindHypernym:
				e.Hypernyms = append(e.Hypernyms, stmt.ColumnText(1))
			case kindInstanceHypernym:
				e.InstanceHypernyms = append(e.InstanceHypernyms, stmt.ColumnText(1))
			}
			return nil
		},
	})
}
