package qdrant_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"memory-agent/internal/memory"
	"memory-agent/internal/memory/memorytest"
	"memory-agent/internal/memory/repository/qdrant"
	pkgQdrant "memory-agent/pkg/qdrant"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

// fakeQdrant implements the slice of the Qdrant REST API the repository uses.
type fakeQdrant struct {
	mu         sync.Mutex
	collection string
	created    bool
	indexed    []string
	points     map[string]pkgQdrant.Point
	pageSize   int
}

func newFakeQdrant(collection string) *fakeQdrant {
	return &fakeQdrant{collection: collection, points: map[string]pkgQdrant.Point{}, pageSize: 2}
}

func matches(f *pkgQdrant.Filter, p pkgQdrant.Point) bool {
	if f == nil {
		return true
	}
	for _, c := range f.Must {
		if c.Match != nil && p.Payload[c.Key] != c.Match.Value {
			return false
		}
	}
	return true
}

func (f *fakeQdrant) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	base := "/collections/" + f.collection
	switch {
	case r.URL.Path == base && r.Method == http.MethodGet:
		if !f.created {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"result":{"status":"green"}}`))

	case r.URL.Path == base && r.Method == http.MethodPut:
		f.created = true
		w.Write([]byte(`{"result":true}`))

	case r.URL.Path == base+"/index":
		var req pkgQdrant.CreateIndexRequest
		json.NewDecoder(r.Body).Decode(&req)
		f.indexed = append(f.indexed, req.FieldName)
		w.Write([]byte(`{"result":{}}`))

	case r.URL.Path == base+"/points" && r.Method == http.MethodPut:
		var req pkgQdrant.UpsertPointsRequest
		json.NewDecoder(r.Body).Decode(&req)
		for _, p := range req.Points {
			f.points[p.ID] = p
		}
		w.Write([]byte(`{"result":{}}`))

	case r.URL.Path == base+"/points" && r.Method == http.MethodPost:
		var req pkgQdrant.RetrieveRequest
		json.NewDecoder(r.Body).Decode(&req)
		var resp pkgQdrant.RetrieveResponse
		for _, id := range req.IDs {
			if p, ok := f.points[id]; ok {
				resp.Result = append(resp.Result, pkgQdrant.RecordPoint{ID: p.ID, Payload: p.Payload})
			}
		}
		json.NewEncoder(w).Encode(resp)

	case r.URL.Path == base+"/points/search":
		var req pkgQdrant.SearchRequest
		json.NewDecoder(r.Body).Decode(&req)
		var resp pkgQdrant.SearchResponse
		for _, p := range f.points {
			if !matches(req.Filter, p) {
				continue
			}
			resp.Result = append(resp.Result, pkgQdrant.ScoredPoint{ID: p.ID, Score: memory.Cosine(req.Vector, p.Vector), Payload: p.Payload})
		}
		sort.Slice(resp.Result, func(i, j int) bool { return resp.Result[i].Score > resp.Result[j].Score })
		if len(resp.Result) > req.Limit {
			resp.Result = resp.Result[:req.Limit]
		}
		json.NewEncoder(w).Encode(resp)

	case r.URL.Path == base+"/points/scroll":
		var req pkgQdrant.ScrollRequest
		json.NewDecoder(r.Body).Decode(&req)
		var ids []string
		for id, p := range f.points {
			if matches(req.Filter, p) {
				ids = append(ids, id)
			}
		}
		sort.Strings(ids)
		start := 0
		if off, ok := req.Offset.(string); ok {
			start = sort.SearchStrings(ids, off)
		}
		end := start + f.pageSize
		var resp pkgQdrant.ScrollResponse
		if end < len(ids) {
			resp.Result.NextPageOffset = ids[end]
		} else {
			end = len(ids)
		}
		for _, id := range ids[start:end] {
			resp.Result.Points = append(resp.Result.Points, pkgQdrant.RecordPoint{ID: id, Payload: f.points[id].Payload})
		}
		json.NewEncoder(w).Encode(resp)

	case r.URL.Path == base+"/points/delete":
		var req pkgQdrant.DeletePointsRequest
		json.NewDecoder(r.Body).Decode(&req)
		for _, id := range req.Points {
			delete(f.points, id)
		}
		if req.Filter != nil {
			for id, p := range f.points {
				if matches(req.Filter, p) {
					delete(f.points, id)
				}
			}
		}
		w.Write([]byte(`{"result":{}}`))

	default:
		http.Error(w, "unexpected "+r.Method+" "+r.URL.Path, http.StatusBadRequest)
	}
}

func newTestStore(t *testing.T) (memory.Store, *fakeQdrant) {
	t.Helper()
	fake := newFakeQdrant("memories")
	ts := httptest.NewServer(fake)
	t.Cleanup(ts.Close)

	s, err := qdrant.New(context.Background(), pkgQdrant.NewClient(ts.URL), memory.NewHashEmbedder(256), "memories", &mockLogger{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s, fake
}

func TestStoreContract(t *testing.T) {
	memorytest.RunStoreSuite(t, func(t *testing.T) memory.Store {
		s, _ := newTestStore(t)
		return s
	})
}

func TestNew_EnsuresCollection(t *testing.T) {
	_, fake := newTestStore(t)
	if !fake.created {
		t.Error("collection was not created")
	}
	if len(fake.indexed) != 1 || fake.indexed[0] != "user_id" {
		t.Errorf("indexed = %v, want [user_id]", fake.indexed)
	}
}

func TestNew_Unavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	_, err := qdrant.New(context.Background(), pkgQdrant.NewClient(ts.URL), memory.NewHashEmbedder(8), "memories", &mockLogger{})
	if !errors.Is(err, memory.ErrStoreUnavailable) {
		t.Errorf("New() error = %v, want ErrStoreUnavailable", err)
	}
}

func TestListIDs_Pages(t *testing.T) {
	s, fake := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := s.Upsert(ctx, "alice", memory.Record{Content: strings.Repeat("x", i+1)}); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
	}
	if _, err := s.Upsert(ctx, "bob", memory.Record{Content: "other"}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	ids, err := s.ListIDs(ctx, "alice")
	if err != nil {
		t.Fatalf("ListIDs() error = %v", err)
	}
	if len(ids) != 5 {
		t.Errorf("ListIDs() returned %d ids across pages of %d, want 5", len(ids), fake.pageSize)
	}
}

func TestFetch_SkipsForeignNamespace(t *testing.T) {
	s, fake := newTestStore(t)
	ctx := context.Background()

	id, err := s.Upsert(ctx, "alice", memory.Record{Content: "secret"})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	recs, err := s.Fetch(ctx, "mallory", []string{id})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("Fetch() leaked %+v", recs)
	}

	fake.mu.Lock()
	delete(fake.points[id].Payload, "role")
	fake.mu.Unlock()

	recs, err = s.Fetch(ctx, "alice", []string{id})
	if err != nil || len(recs) != 1 {
		t.Fatalf("Fetch() = %+v, %v", recs, err)
	}
	if recs[0].Role != "user" {
		t.Errorf("missing role decoded as %q, want user", recs[0].Role)
	}
}

func TestUpsert_EmptyContent(t *testing.T) {
	s, _ := newTestStore(t)
	if _, err := s.Upsert(context.Background(), "alice", memory.Record{}); !errors.Is(err, memory.ErrEmptyContent) {
		t.Errorf("Upsert() error = %v, want ErrEmptyContent", err)
	}
}
