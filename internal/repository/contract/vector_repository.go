package contract

import (
	"context"

	"doc-assistant-be/internal/entity"

	"github.com/google/uuid"
)

// VectorRepository manages the embedding catalog: named collections plus the
// embedding rows that belong to them.
type VectorRepository interface {
	// FindCollectionByName returns nil without error when no collection with
	// that name exists.
	FindCollectionByName(ctx context.Context, name string) (*entity.VectorCollection, error)
	CreateCollection(ctx context.Context, name string) (*entity.VectorCollection, error)

	CreateEmbeddingsBulk(ctx context.Context, collectionId uuid.UUID, chunks []*entity.Chunk, vectors [][]float32) error
	SearchSimilar(ctx context.Context, collectionId uuid.UUID, vector []float32, limit int) ([]*entity.RetrievedChunk, error)

	DeleteEmbeddingsByCollection(ctx context.Context, collectionId uuid.UUID) error
	DeleteCollection(ctx context.Context, collectionId uuid.UUID) error
}
