package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"memory-agent/internal/memory"
	pkgLog "memory-agent/pkg/log"
)

type implRepository struct {
	db       *sql.DB
	embedder memory.Embedder
	l        pkgLog.Logger
}

// New opens or creates the database at path. Embeddings are stored next to
// each row and similarity is computed in process.
func New(ctx context.Context, path string, embedder memory.Embedder, l pkgLog.Logger) (memory.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("%w: open db: %w", memory.ErrStoreUnavailable, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: migrate: %w", memory.ErrStoreUnavailable, err)
	}

	l.Infof(ctx, "%s: opened %s", LogPrefixNew, path)
	return &implRepository{db: db, embedder: embedder, l: l}, nil
}
