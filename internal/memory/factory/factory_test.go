package factory

import (
	"context"
	"path/filepath"
	"testing"

	"memory-agent/config"
	"memory-agent/internal/memory"
	pkgLog "memory-agent/pkg/log"
)

func TestNewStore_Backends(t *testing.T) {
	tests := []struct {
		name    string
		cfg     func(dir string) *config.Config
		wantErr bool
	}{
		{
			name: "chromem in memory",
			cfg: func(string) *config.Config {
				return &config.Config{Memory: config.MemoryConfig{Backend: config.BackendChromem}}
			},
		},
		{
			name: "sqlite",
			cfg: func(dir string) *config.Config {
				return &config.Config{
					Memory: config.MemoryConfig{Backend: config.BackendSQLite},
					SQLite: config.SQLiteConfig{Path: filepath.Join(dir, "m.db")},
				}
			},
		},
		{
			name: "unknown",
			cfg: func(string) *config.Config {
				return &config.Config{Memory: config.MemoryConfig{Backend: "redis"}}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s, err := NewStore(ctx, tt.cfg(t.TempDir()), pkgLog.NewNop())
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewStore() error = %v", err)
			}
			defer s.Close()

			id, err := s.Upsert(ctx, "u1", memory.Record{Content: "hello there"})
			if err != nil {
				t.Fatalf("Upsert() error = %v", err)
			}
			hits, err := s.Search(ctx, "u1", "hello", 1)
			if err != nil || len(hits) != 1 || hits[0].ID != id {
				t.Errorf("Search() = %+v, %v", hits, err)
			}
		})
	}
}

func TestNewEmbedder(t *testing.T) {
	e, err := NewEmbedder(&config.Config{Embedding: config.EmbeddingConfig{Dimensions: 32}})
	if err != nil {
		t.Fatalf("NewEmbedder() error = %v", err)
	}
	if _, ok := e.(*memory.HashEmbedder); !ok || e.Dimensions() != 32 {
		t.Errorf("embedder = %T dims=%d, want hash embedder with 32 dims", e, e.Dimensions())
	}

	e, err = NewEmbedder(&config.Config{Voyage: config.VoyageConfig{APIKey: "k", Model: "voyage-3-lite", Dimensions: 512}})
	if err != nil {
		t.Fatalf("NewEmbedder() error = %v", err)
	}
	if _, ok := e.(*memory.VoyageEmbedder); !ok || e.Dimensions() != 512 {
		t.Errorf("embedder = %T dims=%d, want voyage embedder with 512 dims", e, e.Dimensions())
	}
}
