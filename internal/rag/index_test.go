package rag

import (
	"context"
	"testing"

	"doc-assistant-be/internal/entity"
	"doc-assistant-be/internal/pkg/logger"
	"doc-assistant-be/internal/repository/contract"
	"doc-assistant-be/internal/repository/unitofwork"
	"doc-assistant-be/pkg/embedding"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalogRepo struct {
	collections map[string]*entity.VectorCollection
	rows        map[uuid.UUID][]*entity.RetrievedChunk
}

func newCatalogRepo() *catalogRepo {
	return &catalogRepo{
		collections: map[string]*entity.VectorCollection{},
		rows:        map[uuid.UUID][]*entity.RetrievedChunk{},
	}
}

func (r *catalogRepo) FindCollectionByName(ctx context.Context, name string) (*entity.VectorCollection, error) {
	return r.collections[name], nil
}

func (r *catalogRepo) CreateCollection(ctx context.Context, name string) (*entity.VectorCollection, error) {
	c := &entity.VectorCollection{Id: uuid.New(), Name: name}
	r.collections[name] = c
	return c, nil
}

func (r *catalogRepo) CreateEmbeddingsBulk(ctx context.Context, collectionId uuid.UUID, chunks []*entity.Chunk, vectors [][]float32) error {
	for _, c := range chunks {
		r.rows[collectionId] = append(r.rows[collectionId], &entity.RetrievedChunk{
			Text:     c.Text,
			Metadata: c.Metadata,
		})
	}
	return nil
}

func (r *catalogRepo) SearchSimilar(ctx context.Context, collectionId uuid.UUID, vector []float32, limit int) ([]*entity.RetrievedChunk, error) {
	rows := r.rows[collectionId]
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (r *catalogRepo) DeleteEmbeddingsByCollection(ctx context.Context, collectionId uuid.UUID) error {
	delete(r.rows, collectionId)
	return nil
}

func (r *catalogRepo) DeleteCollection(ctx context.Context, collectionId uuid.UUID) error {
	for name, c := range r.collections {
		if c.Id == collectionId {
			delete(r.collections, name)
		}
	}
	return nil
}

type catalogUow struct {
	repo *catalogRepo
}

func (u *catalogUow) Begin(ctx context.Context) error { return nil }
func (u *catalogUow) Commit() error                   { return nil }
func (u *catalogUow) Rollback() error                 { return nil }

func (u *catalogUow) DocumentRepository() contract.DocumentRepository       { return nil }
func (u *catalogUow) ChatSessionRepository() contract.ChatSessionRepository { return nil }
func (u *catalogUow) ChatLogRepository() contract.ChatLogRepository         { return nil }
func (u *catalogUow) VectorRepository() contract.VectorRepository           { return u.repo }

type catalogFactory struct {
	uow *catalogUow
}

func (f *catalogFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type stubEmbedder struct{}

func (s *stubEmbedder) Generate(ctx context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error) {
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{1, 0, 0}},
	}, nil
}

func (s *stubEmbedder) GenerateBatch(ctx context.Context, texts []string, taskType string) ([]*embedding.EmbeddingResponse, error) {
	out := make([]*embedding.EmbeddingResponse, len(texts))
	for i := range texts {
		out[i], _ = s.Generate(ctx, texts[i], taskType)
	}
	return out, nil
}

func testLogger() logger.ILogger {
	return logger.NewZapLogger("/tmp/rag_test.log", false)
}

func newTestIndex() (*VectorIndex, *catalogRepo) {
	repo := newCatalogRepo()
	factory := &catalogFactory{uow: &catalogUow{repo: repo}}
	return NewVectorIndex(factory, &stubEmbedder{}, "embeddings", testLogger()), repo
}

func TestUpsertAndSearchAreNamespaceScoped(t *testing.T) {
	ix, _ := newTestIndex()
	ctx := context.Background()

	count, err := ix.Upsert(ctx, "7", []*entity.Chunk{
		{Text: "alpha facts", Metadata: map[string]interface{}{"page": 0}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	other, err := ix.Search(ctx, "8", "alpha", 5)
	require.NoError(t, err)
	assert.Empty(t, other)

	own, err := ix.Search(ctx, "7", "alpha", 5)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "alpha facts", own[0].Text)
}

func TestUpsertEmptyInputIsNoOp(t *testing.T) {
	ix, repo := newTestIndex()

	count, err := ix.Upsert(context.Background(), "7", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Empty(t, repo.collections)
}

func TestDeleteNamespaceAbsentCollection(t *testing.T) {
	ix, _ := newTestIndex()

	deleted, err := ix.DeleteNamespace(context.Background(), "7")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestDeleteNamespaceRemovesCollection(t *testing.T) {
	ix, repo := newTestIndex()
	ctx := context.Background()

	_, err := ix.Upsert(ctx, "7", []*entity.Chunk{{Text: "alpha facts"}})
	require.NoError(t, err)
	require.Len(t, repo.collections, 1)

	deleted, err := ix.DeleteNamespace(ctx, "7")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Empty(t, repo.collections)
	assert.Empty(t, repo.rows)

	results, err := ix.Search(ctx, "7", "alpha", 5)
	require.NoError(t, err)
	assert.Empty(t, results)

	deleted, err = ix.DeleteNamespace(ctx, "7")
	require.NoError(t, err)
	assert.False(t, deleted)
}
