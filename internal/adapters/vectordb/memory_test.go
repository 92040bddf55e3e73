package vectordb

import (
	"context"
	"testing"

	"portfoliochat/internal/domain/entities"
)

func TestMemoryStore_UpsertAndSearch(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	docs := []entities.Document{
		{ID: "record-0", RecordID: 0, Content: "pand nul"},
		{ID: "record-1", RecordID: 1, Content: "pand een"},
	}
	vectors := [][]float32{{1, 0, 0}, {0, 1, 0}}

	if err := store.Upsert(ctx, docs, vectors); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	results, err := store.Search(ctx, []float32{1, 0, 0}, 2)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Document.ID != "record-0" {
		t.Error("record-0 should rank first")
	}
	if results[0].Score <= results[1].Score {
		t.Error("results must be ordered by descending score")
	}
}

func TestMemoryStore_TopKLimits(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var docs []entities.Document
	var vectors [][]float32
	for i := 0; i < 10; i++ {
		docs = append(docs, entities.Document{ID: string(rune('a' + i)), RecordID: i})
		vectors = append(vectors, []float32{float32(i), 1})
	}
	store.Upsert(ctx, docs, vectors)

	results, _ := store.Search(ctx, []float32{1, 1}, 3)
	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}
}

func TestMemoryStore_UpsertReplacesByID(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	doc := entities.Document{ID: "record-0", RecordID: 0, Content: "oud"}
	store.Upsert(ctx, []entities.Document{doc}, [][]float32{{1, 0}})
	doc.Content = "nieuw"
	store.Upsert(ctx, []entities.Document{doc}, [][]float32{{1, 0}})

	count, _ := store.Count(ctx)
	if count != 1 {
		t.Errorf("same id should replace, got %d documents", count)
	}

	results, _ := store.Search(ctx, []float32{1, 0}, 1)
	if results[0].Document.Content != "nieuw" {
		t.Error("replacement should win")
	}
}

func TestMemoryStore_Clear(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Upsert(ctx, []entities.Document{{ID: "x"}}, [][]float32{{1}})
	store.Clear(ctx)

	count, _ := store.Count(ctx)
	if count != 0 {
		t.Error("store should be empty after clear")
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		a, b []float32
		want float64
	}{
		{[]float32{1, 0}, []float32{1, 0}, 1},
		{[]float32{1, 0}, []float32{0, 1}, 0},
		{[]float32{1, 0}, []float32{1}, 0},  // dimension mismatch
		{[]float32{0, 0}, []float32{1, 1}, 0}, // zero vector
	}
	for _, tt := range tests {
		if got := cosineSimilarity(tt.a, tt.b); got != tt.want {
			t.Errorf("cosineSimilarity(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
