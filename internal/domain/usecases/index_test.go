package usecases

import (
	"context"
	"errors"
	"testing"

	"portfoliochat/internal/domain/entities"
)

func TestIndexUseCase_BuildIndex(t *testing.T) {
	store := &mockStore{}
	uc := NewIndexUseCase(&mockEmbedder{}, store)

	records := []entities.PortfolioRecord{
		{ID: 0, Address: "Damrak 1"},
		{ID: 1, Address: "Rokin 2"},
	}
	if err := uc.BuildIndex(context.Background(), records); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if len(store.docs) != 2 {
		t.Fatalf("expected 2 stored documents, got %d", len(store.docs))
	}
	if len(store.vectors) != 2 {
		t.Fatalf("expected 2 stored vectors, got %d", len(store.vectors))
	}
	if store.docs[0].Content == store.docs[1].Content {
		t.Error("documents for different records must differ")
	}
}

func TestIndexUseCase_EmptyInput(t *testing.T) {
	store := &mockStore{}
	uc := NewIndexUseCase(&mockEmbedder{}, store)

	if err := uc.BuildIndex(context.Background(), nil); err != nil {
		t.Fatalf("empty input should be a no-op: %v", err)
	}
	if len(store.docs) != 0 {
		t.Error("nothing should be stored")
	}
}

func TestIndexUseCase_EmbedderFailurePropagates(t *testing.T) {
	emb := &mockEmbedder{embedFn: func(string) ([]float32, error) {
		return nil, errors.New("unreachable")
	}}
	store := &mockStore{}
	uc := NewIndexUseCase(emb, store)

	err := uc.BuildIndex(context.Background(), []entities.PortfolioRecord{{ID: 0}})

	var embErr *entities.EmbeddingError
	if !errors.As(err, &embErr) {
		t.Fatalf("expected EmbeddingError, got %v", err)
	}
	if len(store.docs) != 0 {
		t.Error("no partial index may be written on embedding failure")
	}
}

func TestIndexUseCase_StoreFailure(t *testing.T) {
	store := &mockStore{upsertFn: func([]entities.Document, [][]float32) error {
		return errors.New("disk full")
	}}
	uc := NewIndexUseCase(&mockEmbedder{}, store)

	if err := uc.BuildIndex(context.Background(), []entities.PortfolioRecord{{ID: 0}}); err == nil {
		t.Fatal("store failure must propagate")
	}
}
