package rag

import (
	"context"
	"errors"

	"doc-assistant-be/internal/entity"
)

// ErrNoDocumentsIndexed is returned when a question is asked against a
// namespace that has nothing indexed yet.
var ErrNoDocumentsIndexed = errors.New("no documents indexed for this session")

// ChunkRetriever finds the chunks most relevant to a query.
type ChunkRetriever interface {
	Retrieve(ctx context.Context, query string) ([]*entity.RetrievedChunk, error)
}

// Answerer turns a question plus supporting chunks into an answer.
type Answerer interface {
	Answer(ctx context.Context, question string, chunks []*entity.RetrievedChunk) (string, error)
}

// QAPipeline binds one retriever to one answerer. Pipelines are built per
// namespace and cached.
type QAPipeline struct {
	retriever ChunkRetriever
	answerer  Answerer
}

func NewQAPipeline(retriever ChunkRetriever, answerer Answerer) *QAPipeline {
	return &QAPipeline{
		retriever: retriever,
		answerer:  answerer,
	}
}

// Ask retrieves context for the question and hands it to the answerer.
// Answerer errors pass through unmodified so callers can classify them.
func (p *QAPipeline) Ask(ctx context.Context, question string) (string, error) {
	chunks, err := p.retriever.Retrieve(ctx, question)
	if err != nil {
		return "", err
	}
	if len(chunks) == 0 {
		return "", ErrNoDocumentsIndexed
	}
	return p.answerer.Answer(ctx, question, chunks)
}

// NamespaceRetriever adapts a VectorIndex to a fixed namespace and k.
type NamespaceRetriever struct {
	index     *VectorIndex
	namespace string
	k         int
}

func NewNamespaceRetriever(index *VectorIndex, namespace string, k int) *NamespaceRetriever {
	return &NamespaceRetriever{
		index:     index,
		namespace: namespace,
		k:         k,
	}
}

func (r *NamespaceRetriever) Retrieve(ctx context.Context, query string) ([]*entity.RetrievedChunk, error) {
	return r.index.Search(ctx, r.namespace, query, r.k)
}
