package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"doc-assistant-be/internal/entity"
	"doc-assistant-be/internal/model"
	"doc-assistant-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type VectorRepositoryImpl struct {
	db *gorm.DB
}

func NewVectorRepository(db *gorm.DB) contract.VectorRepository {
	return &VectorRepositoryImpl{db: db}
}

func (r *VectorRepositoryImpl) FindCollectionByName(ctx context.Context, name string) (*entity.VectorCollection, error) {
	var m model.VectorCollection
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity.VectorCollection{Id: m.Id, Name: m.Name}, nil
}

func (r *VectorRepositoryImpl) CreateCollection(ctx context.Context, name string) (*entity.VectorCollection, error) {
	m := model.VectorCollection{Id: uuid.New(), Name: name}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	return &entity.VectorCollection{Id: m.Id, Name: m.Name}, nil
}

func (r *VectorRepositoryImpl) CreateEmbeddingsBulk(ctx context.Context, collectionId uuid.UUID, chunks []*entity.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunk count %d does not match vector count %d", len(chunks), len(vectors))
	}
	if len(chunks) == 0 {
		return nil
	}

	models := make([]*model.VectorEmbedding, len(chunks))
	for i, c := range chunks {
		meta, err := json.Marshal(c.Metadata)
		if err != nil {
			return fmt.Errorf("marshal chunk metadata: %w", err)
		}
		models[i] = &model.VectorEmbedding{
			Id:           uuid.New(),
			CollectionId: collectionId,
			Document:     c.Text,
			Embedding:    pgvector.NewVector(vectors[i]),
			Metadata:     meta,
		}
	}

	return r.db.WithContext(ctx).Create(models).Error
}

func (r *VectorRepositoryImpl) SearchSimilar(ctx context.Context, collectionId uuid.UUID, vector []float32, limit int) ([]*entity.RetrievedChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	// Cosine distance in pgvector is 1 - cosine_similarity.
	type result struct {
		model.VectorEmbedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(vector)

	err := r.db.WithContext(ctx).
		Table("vector_embeddings").
		Select("vector_embeddings.*, 1 - (embedding <=> ?) as similarity", queryVector).
		Where("collection_id = ?", collectionId).
		Order(gorm.Expr("embedding <=> ?", queryVector)).
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	chunks := make([]*entity.RetrievedChunk, len(results))
	for i, res := range results {
		var meta map[string]interface{}
		if len(res.Metadata) > 0 {
			if err := json.Unmarshal(res.Metadata, &meta); err != nil {
				return nil, fmt.Errorf("unmarshal embedding metadata: %w", err)
			}
		}
		chunks[i] = &entity.RetrievedChunk{
			Text:       res.Document,
			Metadata:   meta,
			Similarity: res.Similarity,
		}
	}
	return chunks, nil
}

func (r *VectorRepositoryImpl) DeleteEmbeddingsByCollection(ctx context.Context, collectionId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("collection_id = ?", collectionId).Delete(&model.VectorEmbedding{}).Error
}

func (r *VectorRepositoryImpl) DeleteCollection(ctx context.Context, collectionId uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.VectorCollection{}, "id = ?", collectionId).Error
}
