package rag

import (
	"context"
	"fmt"

	"doc-assistant-be/internal/entity"
	"doc-assistant-be/internal/pkg/logger"
	"doc-assistant-be/internal/repository/unitofwork"
	"doc-assistant-be/pkg/embedding"
)

// VectorIndex stores and retrieves embedded chunks per namespace. Each
// namespace maps to its own collection, which keeps tenants fully isolated.
type VectorIndex struct {
	repoFactory unitofwork.RepositoryFactory
	embedder    embedding.EmbeddingProvider
	base        string
	logger      logger.ILogger
}

func NewVectorIndex(repoFactory unitofwork.RepositoryFactory, embedder embedding.EmbeddingProvider, baseCollection string, logger logger.ILogger) *VectorIndex {
	return &VectorIndex{
		repoFactory: repoFactory,
		embedder:    embedder,
		base:        baseCollection,
		logger:      logger,
	}
}

// Upsert embeds the chunks and writes them into the namespace's collection,
// creating the collection on first use. The collection row and embedding rows
// commit in one transaction. Returns the number of chunks stored.
func (ix *VectorIndex) Upsert(ctx context.Context, namespace string, chunks []*entity.Chunk) (int, error) {
	if len(chunks) == 0 {
		return 0, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	responses, err := ix.embedder.GenerateBatch(ctx, texts, embedding.TaskDocument)
	if err != nil {
		return 0, err
	}

	vectors := make([][]float32, len(responses))
	for i, res := range responses {
		vectors[i] = res.Embedding.Values
	}

	uow := ix.repoFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer uow.Rollback()

	repo := uow.VectorRepository()
	name := CollectionName(ix.base, namespace)

	collection, err := repo.FindCollectionByName(ctx, name)
	if err != nil {
		return 0, err
	}
	if collection == nil {
		collection, err = repo.CreateCollection(ctx, name)
		if err != nil {
			return 0, err
		}
	}

	if err := repo.CreateEmbeddingsBulk(ctx, collection.Id, chunks, vectors); err != nil {
		return 0, err
	}

	if err := uow.Commit(); err != nil {
		return 0, err
	}

	ix.logger.Info("rag", "chunks indexed", map[string]interface{}{
		"namespace": namespace,
		"count":     len(chunks),
	})
	return len(chunks), nil
}

// Search embeds the query and returns the k nearest chunks in the namespace.
// A namespace with no collection yields an empty result, not an error.
func (ix *VectorIndex) Search(ctx context.Context, namespace, query string, k int) ([]*entity.RetrievedChunk, error) {
	res, err := ix.embedder.Generate(ctx, query, embedding.TaskQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	uow := ix.repoFactory.NewUnitOfWork(ctx)
	repo := uow.VectorRepository()

	collection, err := repo.FindCollectionByName(ctx, CollectionName(ix.base, namespace))
	if err != nil {
		return nil, err
	}
	if collection == nil {
		return []*entity.RetrievedChunk{}, nil
	}

	return repo.SearchSimilar(ctx, collection.Id, res.Embedding.Values, k)
}

// DeleteNamespace drops the namespace's embeddings and its collection row in
// one transaction. Reports whether a collection existed. Safe to call again
// after a successful delete.
func (ix *VectorIndex) DeleteNamespace(ctx context.Context, namespace string) (bool, error) {
	uow := ix.repoFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}
	defer uow.Rollback()

	repo := uow.VectorRepository()
	name := CollectionName(ix.base, namespace)

	collection, err := repo.FindCollectionByName(ctx, name)
	if err != nil {
		return false, err
	}
	if collection == nil {
		return false, nil
	}

	if err := repo.DeleteEmbeddingsByCollection(ctx, collection.Id); err != nil {
		return false, err
	}
	if err := repo.DeleteCollection(ctx, collection.Id); err != nil {
		return false, err
	}

	if err := uow.Commit(); err != nil {
		return false, err
	}

	ix.logger.Info("rag", "namespace deleted", map[string]interface{}{
		"namespace":  namespace,
		"collection": name,
	})
	return true, nil
}
