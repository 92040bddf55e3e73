package vectordb

import (
	"context"
	"fmt"
	"sync"

	qdrantclient "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"portfoliochat/internal/domain/entities"
)

// QdrantStore keeps the index in a Qdrant collection over gRPC. The
// collection is created lazily on the first upsert, when the vector
// dimension is known.
type QdrantStore struct {
	mu          sync.Mutex
	conn        *grpc.ClientConn
	collections qdrantclient.CollectionsClient
	points      qdrantclient.PointsClient
	collection  string
	initialized bool
}

// NewQdrantStore connects to a Qdrant server.
func NewQdrantStore(addr, collection string) (*QdrantStore, error) {
	if addr == "" {
		addr = "localhost:6334"
	}
	if collection == "" {
		collection = "portfolio"
	}

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("connecting to qdrant at %s: %w", addr, err)
	}

	return &QdrantStore{
		conn:        conn,
		collections: qdrantclient.NewCollectionsClient(conn),
		points:      qdrantclient.NewPointsClient(conn),
		collection:  collection,
	}, nil
}

// ensureCollection creates the collection if it does not exist yet.
func (s *QdrantStore) ensureCollection(ctx context.Context, dimension int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}

	list, err := s.collections.List(ctx, &qdrantclient.ListCollectionsRequest{})
	if err != nil {
		return fmt.Errorf("listing collections: %w", err)
	}
	for _, col := range list.GetCollections() {
		if col.GetName() == s.collection {
			s.initialized = true
			return nil
		}
	}

	_, err = s.collections.Create(ctx, &qdrantclient.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: &qdrantclient.VectorsConfig{
			Config: &qdrantclient.VectorsConfig_Params{
				Params: &qdrantclient.VectorParams{
					Size:     uint64(dimension),
					Distance: qdrantclient.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("creating collection %s: %w", s.collection, err)
	}
	s.initialized = true
	return nil
}

// Upsert writes one point per document, keyed by record identifier so a
// rebuild replaces rather than duplicates.
func (s *QdrantStore) Upsert(ctx context.Context, docs []entities.Document, vectors [][]float32) error {
	if len(docs) == 0 {
		return nil
	}
	if err := s.ensureCollection(ctx, len(vectors[0])); err != nil {
		return err
	}

	points := make([]*qdrantclient.PointStruct, len(docs))
	for i, doc := range docs {
		points[i] = &qdrantclient.PointStruct{
			Id: &qdrantclient.PointId{
				PointIdOptions: &qdrantclient.PointId_Num{Num: uint64(doc.RecordID)},
			},
			Vectors: &qdrantclient.Vectors{
				VectorsOptions: &qdrantclient.Vectors_Vector{
					Vector: &qdrantclient.Vector{Data: vectors[i]},
				},
			},
			Payload: map[string]*qdrantclient.Value{
				"text":      {Kind: &qdrantclient.Value_StringValue{StringValue: doc.Content}},
				"doc_id":    {Kind: &qdrantclient.Value_StringValue{StringValue: doc.ID}},
				"record_id": {Kind: &qdrantclient.Value_IntegerValue{IntegerValue: int64(doc.RecordID)}},
			},
		}
	}

	_, err := s.points.Upsert(ctx, &qdrantclient.UpsertPoints{
		CollectionName: s.collection,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("upserting points: %w", err)
	}
	return nil
}

// Search queries the collection for the nearest points.
func (s *QdrantStore) Search(ctx context.Context, embedding []float32, topK int) ([]entities.SearchResult, error) {
	resp, err := s.points.Search(ctx, &qdrantclient.SearchPoints{
		CollectionName: s.collection,
		Vector:         embedding,
		Limit:          uint64(topK),
		WithPayload: &qdrantclient.WithPayloadSelector{
			SelectorOptions: &qdrantclient.WithPayloadSelector_Enable{Enable: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("searching points: %w", err)
	}

	results := make([]entities.SearchResult, 0, len(resp.GetResult()))
	for _, point := range resp.GetResult() {
		payload := point.GetPayload()
		doc := entities.Document{
			ID:       payload["doc_id"].GetStringValue(),
			RecordID: int(payload["record_id"].GetIntegerValue()),
			Content:  payload["text"].GetStringValue(),
		}
		results = append(results, entities.SearchResult{
			Document: doc,
			Score:    float64(point.GetScore()),
		})
	}
	return results, nil
}

// Count returns the number of stored points.
func (s *QdrantStore) Count(ctx context.Context) (int, error) {
	resp, err := s.points.Count(ctx, &qdrantclient.CountPoints{
		CollectionName: s.collection,
	})
	if err != nil {
		return 0, fmt.Errorf("counting points: %w", err)
	}
	return int(resp.GetResult().GetCount()), nil
}

// Clear drops the collection; it is recreated on the next upsert.
func (s *QdrantStore) Clear(ctx context.Context) error {
	_, err := s.collections.Delete(ctx, &qdrantclient.DeleteCollection{
		CollectionName: s.collection,
	})
	if err != nil {
		return fmt.Errorf("deleting collection: %w", err)
	}
	s.mu.Lock()
	s.initialized = false
	s.mu.Unlock()
	return nil
}

// Close closes the gRPC connection.
func (s *QdrantStore) Close() error {
	return s.conn.Close()
}
