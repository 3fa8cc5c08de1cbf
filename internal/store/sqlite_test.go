package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mfgworks/dynaform/internal/types"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_CRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	if err := s.Put(ctx, "c", "1", types.Record{"id": "1", "v": "a"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put(ctx, "c", "2", types.Record{"id": "2", "v": "b"}); err != nil {
		t.Fatalf("put: %v", err)
	}

	doc, err := s.Get(ctx, "c", "2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if doc["v"] != "b" {
		t.Errorf("got %v, want b", doc["v"])
	}

	docs, err := s.List(ctx, "c")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 2 || docs[0].ID() != "1" {
		t.Errorf("list order wrong: %v", docs)
	}

	// Upsert keeps a single row per id.
	if err := s.Put(ctx, "c", "1", types.Record{"id": "1", "v": "a2"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	docs, _ = s.List(ctx, "c")
	if len(docs) != 2 || docs[0]["v"] != "a2" {
		t.Errorf("upsert wrong: %v", docs)
	}

	if err := s.Delete(ctx, "c", "1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, "c", "1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete: err = %v, want ErrNotFound", err)
	}
}

func TestSQLiteStore_CollectionsIsolated(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	s.Put(ctx, "a", "1", types.Record{"id": "1"})
	s.Put(ctx, "b", "1", types.Record{"id": "1"})

	if err := s.Drop(ctx, "a"); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if _, err := s.Get(ctx, "a", "1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("a survived drop: %v", err)
	}
	if _, err := s.Get(ctx, "b", "1"); err != nil {
		t.Errorf("drop leaked into b: %v", err)
	}
}

func TestSQLiteStore_NumbersSurviveRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	s.Put(ctx, "c", "1", types.Record{"id": "1", "qty": float64(4), "ok": true, "sizes": []any{"S", "M"}})
	doc, err := s.Get(ctx, "c", "1")
	if err != nil {
		t.Fatal(err)
	}
	if doc["qty"] != float64(4) {
		t.Errorf("qty = %#v, want float64(4)", doc["qty"])
	}
	if doc["ok"] != true {
		t.Errorf("ok = %#v", doc["ok"])
	}
	if types.String(doc["sizes"]) != "S, M" {
		t.Errorf("sizes = %#v", doc["sizes"])
	}
}
