package qdrant_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"memory-agent/pkg/qdrant"
)

func newServer(t *testing.T, handler http.HandlerFunc) *qdrant.Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return qdrant.NewClient(ts.URL + "/")
}

func TestCollectionExists(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s", r.Method)
		}
		if strings.HasSuffix(r.URL.Path, "/present") {
			_, _ = w.Write([]byte(`{"result":{},"status":"ok"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	ok, err := client.CollectionExists(context.Background(), "present")
	if err != nil || !ok {
		t.Errorf("present: ok=%v err=%v", ok, err)
	}
	ok, err = client.CollectionExists(context.Background(), "absent")
	if err != nil || ok {
		t.Errorf("absent: ok=%v err=%v", ok, err)
	}
}

func TestUpsertPoints(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/collections/memories/points" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("wait") != "true" {
			t.Error("upsert should wait for indexing")
		}
		var req qdrant.UpsertPointsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(req.Points) != 1 || req.Points[0].Payload["user_id"] != "u1" {
			t.Errorf("points = %+v", req.Points)
		}
		if req.Points[0].Payload["cause_500"] == true {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	err := client.UpsertPoints(context.Background(), "memories", qdrant.UpsertPointsRequest{
		Points: []qdrant.Point{{ID: "id-1", Vector: []float32{0.1}, Payload: map[string]interface{}{"user_id": "u1"}}},
	})
	if err != nil {
		t.Fatalf("UpsertPoints() error = %v", err)
	}

	err = client.UpsertPoints(context.Background(), "memories", qdrant.UpsertPointsRequest{
		Points: []qdrant.Point{{ID: "id-2", Payload: map[string]interface{}{"user_id": "u1", "cause_500": true}}},
	})
	if err == nil {
		t.Fatal("expected error on 500")
	}
}

func TestSearchPoints_WithFilter(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req qdrant.SearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if req.Filter == nil || len(req.Filter.Must) != 1 || req.Filter.Must[0].Key != "user_id" {
			t.Errorf("filter = %+v", req.Filter)
		}
		_, _ = w.Write([]byte(`{"result":[{"id":"a","version":1,"score":0.95,"payload":{"content":"x"}}],"status":"ok"}`))
	})

	resp, err := client.SearchPoints(context.Background(), "memories", qdrant.SearchRequest{
		Vector:      []float32{1, 0},
		Limit:       3,
		WithPayload: true,
		Filter:      &qdrant.Filter{Must: []qdrant.Condition{qdrant.FieldEquals("user_id", "u1")}},
	})
	if err != nil {
		t.Fatalf("SearchPoints() error = %v", err)
	}
	if len(resp.Result) != 1 || resp.Result[0].Score != 0.95 || resp.Result[0].Payload["content"] != "x" {
		t.Errorf("result = %+v", resp.Result)
	}
}

func TestScrollAndRetrieve(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/points/scroll"):
			var req qdrant.ScrollRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.Offset == nil {
				_, _ = w.Write([]byte(`{"result":{"points":[{"id":"a","payload":{}}],"next_page_offset":"b"}}`))
				return
			}
			_, _ = w.Write([]byte(`{"result":{"points":[{"id":"b","payload":{}}],"next_page_offset":null}}`))
		case r.URL.Path == "/collections/memories/points":
			var req qdrant.RetrieveRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if len(req.IDs) != 2 {
				t.Errorf("ids = %v", req.IDs)
			}
			_, _ = w.Write([]byte(`{"result":[{"id":"a","payload":{"content":"hello"}}]}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	})

	page, err := client.Scroll(context.Background(), "memories", qdrant.ScrollRequest{Limit: 1})
	if err != nil {
		t.Fatalf("Scroll() error = %v", err)
	}
	if len(page.Result.Points) != 1 || page.Result.NextPageOffset != "b" {
		t.Fatalf("page = %+v", page.Result)
	}
	page, err = client.Scroll(context.Background(), "memories", qdrant.ScrollRequest{Limit: 1, Offset: "b"})
	if err != nil || page.Result.NextPageOffset != nil {
		t.Fatalf("second page = %+v err=%v", page.Result, err)
	}

	got, err := client.RetrievePoints(context.Background(), "memories", qdrant.RetrieveRequest{IDs: []string{"a", "missing"}, WithPayload: true})
	if err != nil {
		t.Fatalf("RetrievePoints() error = %v", err)
	}
	if len(got.Result) != 1 || got.Result[0].Payload["content"] != "hello" {
		t.Errorf("result = %+v", got.Result)
	}
}

func TestDeleteByFilter(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req qdrant.DeletePointsRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Filter == nil || len(req.Points) != 0 {
			t.Errorf("req = %+v", req)
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if err := client.DeleteByFilter(context.Background(), "memories", qdrant.Filter{
		Must: []qdrant.Condition{qdrant.FieldEquals("user_id", "u1")},
	}); err != nil {
		t.Fatalf("DeleteByFilter() error = %v", err)
	}
}

func TestNotFoundIsTyped(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	_, err := client.SearchPoints(context.Background(), "gone", qdrant.SearchRequest{Limit: 1})
	if !errors.Is(err, qdrant.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
