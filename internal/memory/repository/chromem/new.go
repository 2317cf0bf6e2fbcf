package chromem

import (
	"context"
	"fmt"

	chromemgo "github.com/philippgille/chromem-go"

	"memory-agent/internal/memory"
	pkgLog "memory-agent/pkg/log"
)

type implRepository struct {
	db       *chromemgo.DB
	embedder memory.Embedder
	l        pkgLog.Logger
}

// Options configures the embedded store. An empty Path keeps everything in memory.
type Options struct {
	Path     string
	Compress bool
}

// New creates a chromem-go backed store with one collection per user.
func New(ctx context.Context, opt Options, embedder memory.Embedder, l pkgLog.Logger) (memory.Store, error) {
	var db *chromemgo.DB
	if opt.Path == "" {
		db = chromemgo.NewDB()
	} else {
		var err error
		db, err = chromemgo.NewPersistentDB(opt.Path, opt.Compress)
		if err != nil {
			return nil, fmt.Errorf("%w: open %s: %w", memory.ErrStoreUnavailable, opt.Path, err)
		}
		l.Infof(ctx, "%s: opened persistent store at %s (%d collections)", LogPrefixNew, opt.Path, len(db.ListCollections()))
	}

	return &implRepository{
		db:       db,
		embedder: embedder,
		l:        l,
	}, nil
}
