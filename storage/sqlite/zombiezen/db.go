package zombiezen

import (
	"fmt"
	"runtime"

	"zombiezen.com/go/sqlite/sqlitex"
)

// NewPool opens the ontology database at dbPath, creating the file when it
// does not exist. Lookups from parallel evaluation workers each take their
// own connection, so the pool holds one connection per CPU.
func NewPool(dbPath string) (*sqlitex.Pool, error) {
	pool, err := sqlitex.NewPool("file:"+dbPath, sqlitex.PoolOptions{
		PoolSize: runtime.NumCPU(),
	})
	if err != nil {
		return nil, fmt.Errorf("open ontology %s: %w", dbPath, err)
	}
	return pool, nil
}
