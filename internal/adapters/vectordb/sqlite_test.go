package vectordb

import (
	"context"
	"errors"
	"testing"

	"portfoliochat/internal/domain/entities"
)

func TestSQLiteStore_UpsertAndSearch(t *testing.T) {
	dir := t.TempDir()

	store, err := NewSQLiteStore(dir)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	docs := []entities.Document{
		{ID: "record-0", RecordID: 0, Content: "pand nul"},
		{ID: "record-1", RecordID: 1, Content: "pand een"},
	}
	vectors := [][]float32{{1, 0, 0}, {0, 1, 0}}

	if err := store.Upsert(ctx, docs, vectors); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	results, err := store.Search(ctx, []float32{0.9, 0.1, 0}, 2)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Document.RecordID != 0 {
		t.Error("record 0 should rank first")
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewSQLiteStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	store.Upsert(ctx, []entities.Document{{ID: "record-0", RecordID: 0, Content: "x"}}, [][]float32{{1}})
	store.Close()

	reopened, err := OpenSQLiteStore(dir)
	if err != nil {
		t.Fatalf("reopening existing store failed: %v", err)
	}
	defer reopened.Close()

	count, err := reopened.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("expected 1 persisted document, got %d", count)
	}
}

func TestOpenSQLiteStore_MissingIsUnavailable(t *testing.T) {
	_, err := OpenSQLiteStore(t.TempDir())

	if !errors.Is(err, entities.ErrIndexUnavailable) {
		t.Fatalf("expected ErrIndexUnavailable, got %v", err)
	}
}

func TestSQLiteStore_UpsertReplacesByID(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewSQLiteStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	doc := entities.Document{ID: "record-0", RecordID: 0, Content: "oud"}
	store.Upsert(ctx, []entities.Document{doc}, [][]float32{{1}})
	doc.Content = "nieuw"
	store.Upsert(ctx, []entities.Document{doc}, [][]float32{{1}})

	count, _ := store.Count(ctx)
	if count != 1 {
		t.Errorf("expected 1 document after replace, got %d", count)
	}
}

func TestSQLiteStore_Clear(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewSQLiteStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	store.Upsert(ctx, []entities.Document{{ID: "x", Content: "y"}}, [][]float32{{1}})
	if err := store.Clear(ctx); err != nil {
		t.Fatal(err)
	}

	count, _ := store.Count(ctx)
	if count != 0 {
		t.Error("store should be empty after clear")
	}
}
