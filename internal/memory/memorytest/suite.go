// Package memorytest holds the behavioral checks every memory.Store backend must pass.
package memorytest

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"memory-agent/internal/memory"
	"memory-agent/internal/model"
)

// RunStoreSuite exercises newStore against the Store contract. Each subtest
// gets a fresh store. Stores must be built with an embedder where texts
// sharing words score higher, such as memory.HashEmbedder.
func RunStoreSuite(t *testing.T, newStore func(t *testing.T) memory.Store) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("upsert list fetch", func(t *testing.T) {
		s := newStore(t)
		id1, err := s.Upsert(ctx, "alice", memory.Record{Content: "Hello", Role: model.RoleUser, Timestamp: base})
		if err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
		id2, err := s.Upsert(ctx, "alice", memory.Record{ID: memory.NewID(), Content: "Hi Alice", Role: model.RoleAssistant, Timestamp: base.Add(time.Second)})
		if err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
		if id1 == "" || id1 == id2 {
			t.Fatalf("ids = %q, %q", id1, id2)
		}

		ids, err := s.ListIDs(ctx, "alice")
		if err != nil {
			t.Fatalf("ListIDs() error = %v", err)
		}
		sort.Strings(ids)
		want := []string{id1, id2}
		sort.Strings(want)
		if len(ids) != 2 || ids[0] != want[0] || ids[1] != want[1] {
			t.Fatalf("ListIDs() = %v, want %v", ids, want)
		}

		recs, err := s.Fetch(ctx, "alice", []string{id2, "00000000-0000-0000-0000-000000000000"})
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if len(recs) != 1 {
			t.Fatalf("Fetch() = %+v, want one record", recs)
		}
		got := recs[0]
		if got.ID != id2 || got.Content != "Hi Alice" || got.Role != model.RoleAssistant || got.UserID != "alice" {
			t.Errorf("record = %+v", got)
		}
		if !got.Timestamp.Equal(base.Add(time.Second)) {
			t.Errorf("timestamp = %v, want %v", got.Timestamp, base.Add(time.Second))
		}
	})

	t.Run("namespace isolation", func(t *testing.T) {
		s := newStore(t)
		bobID, err := s.Upsert(ctx, "bob", memory.Record{Content: "bob likes chess", Role: model.RoleUser, Timestamp: base})
		if err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
		if _, err := s.Upsert(ctx, "carol", memory.Record{Content: "carol likes chess", Role: model.RoleUser, Timestamp: base}); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}

		hits, err := s.Search(ctx, "carol", "chess", 5)
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		for _, h := range hits {
			if h.ID == bobID {
				t.Errorf("carol's search returned bob's memory")
			}
		}

		recs, err := s.Fetch(ctx, "carol", []string{bobID})
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if len(recs) != 0 {
			t.Errorf("carol fetched bob's record: %+v", recs)
		}

		if err := s.DeleteNamespace(ctx, "carol"); err != nil {
			t.Fatalf("DeleteNamespace() error = %v", err)
		}
		ids, err := s.ListIDs(ctx, "bob")
		if err != nil || len(ids) != 1 {
			t.Errorf("bob's records after clearing carol: %v err=%v", ids, err)
		}
	})

	t.Run("search ranks related text first", func(t *testing.T) {
		s := newStore(t)
		teal, err := s.Upsert(ctx, "dave", memory.Record{Content: "my favorite color is teal", Role: model.RoleUser, Timestamp: base})
		if err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
		for i, text := range []string{"the train leaves at noon", "I adopted a cat named Miso", "paris is lovely in spring"} {
			if _, err := s.Upsert(ctx, "dave", memory.Record{Content: text, Role: model.RoleUser, Timestamp: base.Add(time.Duration(i+1) * time.Minute)}); err != nil {
				t.Fatalf("Upsert() error = %v", err)
			}
		}

		hits, err := s.Search(ctx, "dave", "favorite color", 3)
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(hits) == 0 || hits[0].ID != teal || hits[0].Content != "my favorite color is teal" {
			t.Fatalf("Search() = %+v, want teal first", hits)
		}
		if len(hits) > 3 {
			t.Errorf("Search() returned %d hits, topK is 3", len(hits))
		}
		for i := 1; i < len(hits); i++ {
			if hits[i].Score > hits[i-1].Score {
				t.Errorf("hits not ordered by score: %+v", hits)
			}
		}
	})

	t.Run("search empty namespace", func(t *testing.T) {
		s := newStore(t)
		hits, err := s.Search(ctx, "nobody", "anything", 3)
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(hits) != 0 {
			t.Errorf("Search() = %+v, want none", hits)
		}
		ids, err := s.ListIDs(ctx, "nobody")
		if err != nil || len(ids) != 0 {
			t.Errorf("ListIDs() = %v err=%v", ids, err)
		}
	})

	t.Run("delete namespace is idempotent", func(t *testing.T) {
		s := newStore(t)
		if _, err := s.Upsert(ctx, "erin", memory.Record{Content: "remember me", Role: model.RoleUser, Timestamp: base}); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
		for i := 0; i < 2; i++ {
			if err := s.DeleteNamespace(ctx, "erin"); err != nil {
				t.Fatalf("DeleteNamespace() #%d error = %v", i+1, err)
			}
		}
		if err := s.DeleteNamespace(ctx, "never-seen"); err != nil {
			t.Fatalf("DeleteNamespace() on unknown namespace error = %v", err)
		}

		h, err := memory.AssembleHistory(ctx, s, "erin", memory.DefaultHistoryLimit)
		if err != nil {
			t.Fatalf("AssembleHistory() error = %v", err)
		}
		if len(h.Turns) != 0 {
			t.Errorf("history after clear = %+v", h.Turns)
		}

		if _, err := s.Upsert(ctx, "erin", memory.Record{Content: "fresh start", Role: model.RoleUser, Timestamp: base}); err != nil {
			t.Fatalf("Upsert() after clear error = %v", err)
		}
	})

	t.Run("empty namespace rejected", func(t *testing.T) {
		s := newStore(t)
		if _, err := s.Upsert(ctx, "", memory.Record{Content: "x"}); !errors.Is(err, memory.ErrInvalidNamespace) {
			t.Errorf("Upsert() error = %v", err)
		}
		if _, err := s.Search(ctx, "", "x", 1); !errors.Is(err, memory.ErrInvalidNamespace) {
			t.Errorf("Search() error = %v", err)
		}
		if _, err := s.ListIDs(ctx, ""); !errors.Is(err, memory.ErrInvalidNamespace) {
			t.Errorf("ListIDs() error = %v", err)
		}
		if err := s.DeleteNamespace(ctx, ""); !errors.Is(err, memory.ErrInvalidNamespace) {
			t.Errorf("DeleteNamespace() error = %v", err)
		}
	})

	t.Run("history window", func(t *testing.T) {
		s := newStore(t)
		for i := 0; i < 5; i++ {
			role := model.RoleUser
			if i%2 == 1 {
				role = model.RoleAssistant
			}
			if _, err := s.Upsert(ctx, "frank", memory.Record{
				Content:   string(rune('a' + i)),
				Role:      role,
				Timestamp: base.Add(time.Duration(i) * time.Second),
			}); err != nil {
				t.Fatalf("Upsert() error = %v", err)
			}
		}

		h, err := memory.AssembleHistory(ctx, s, "frank", 3)
		if err != nil {
			t.Fatalf("AssembleHistory() error = %v", err)
		}
		if len(h.Turns) != 3 {
			t.Fatalf("turns = %+v", h.Turns)
		}
		for i, want := range []string{"c", "d", "e"} {
			if h.Turns[i].Content != want {
				t.Errorf("turn %d = %q, want %q", i, h.Turns[i].Content, want)
			}
		}
		if h.Turns[1].Role != model.RoleAssistant {
			t.Errorf("turn 1 role = %q", h.Turns[1].Role)
		}
	})
}
