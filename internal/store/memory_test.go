package store

import (
	"context"
	"errors"
	"testing"

	"github.com/mfgworks/dynaform/internal/types"
)

func TestMemoryStore_CRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Put(ctx, "c", "1", types.Record{"id": "1", "v": "a"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put(ctx, "c", "2", types.Record{"id": "2", "v": "b"}); err != nil {
		t.Fatalf("put: %v", err)
	}

	doc, err := s.Get(ctx, "c", "1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if doc["v"] != "a" {
		t.Errorf("got %v, want a", doc["v"])
	}

	docs, err := s.List(ctx, "c")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 2 || docs[0].ID() != "1" || docs[1].ID() != "2" {
		t.Errorf("list order wrong: %v", docs)
	}

	if err := s.Delete(ctx, "c", "1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, "c", "1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("get deleted: err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_NotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Get(ctx, "c", "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("get: err = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "c", "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete: err = %v, want ErrNotFound", err)
	}
	docs, err := s.List(ctx, "unknown")
	if err != nil || len(docs) != 0 {
		t.Errorf("list unknown: docs = %v, err = %v", docs, err)
	}
}

func TestMemoryStore_PutReplacesInPlace(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	s.Put(ctx, "c", "1", types.Record{"id": "1", "v": "a"})
	s.Put(ctx, "c", "2", types.Record{"id": "2", "v": "b"})
	s.Put(ctx, "c", "1", types.Record{"id": "1", "v": "a2"})

	docs, _ := s.List(ctx, "c")
	if len(docs) != 2 {
		t.Fatalf("len = %d, want 2", len(docs))
	}
	if docs[0]["v"] != "a2" {
		t.Errorf("replace moved document: %v", docs)
	}
}

func TestMemoryStore_Drop(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	s.Put(ctx, "c", "1", types.Record{"id": "1"})
	if err := s.Drop(ctx, "c"); err != nil {
		t.Fatalf("drop: %v", err)
	}
	docs, _ := s.List(ctx, "c")
	if len(docs) != 0 {
		t.Errorf("collection survived drop: %v", docs)
	}
	if err := s.Drop(ctx, "never-existed"); err != nil {
		t.Errorf("drop unknown: %v", err)
	}
}

func TestMemoryStore_IsolatesCallers(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	orig := types.Record{"id": "1", "tags": []string{"x"}}
	s.Put(ctx, "c", "1", orig)
	orig["tags"].([]string)[0] = "mutated"

	doc, _ := s.Get(ctx, "c", "1")
	if doc["tags"].([]string)[0] != "x" {
		t.Error("store shares memory with caller")
	}

	doc["tags"].([]string)[0] = "mutated-too"
	again, _ := s.Get(ctx, "c", "1")
	if again["tags"].([]string)[0] != "x" {
		t.Error("store shares memory with reader")
	}
}
