package service

import (
	"context"
	"fmt"

	"doc-assistant-be/internal/dto"
	"doc-assistant-be/internal/entity"
	"doc-assistant-be/internal/pkg/logger"
	"doc-assistant-be/pkg/textutil"
)

// BlobDownloader fetches the raw bytes of an uploaded file.
type BlobDownloader interface {
	Get(ctx context.Context, path string) ([]byte, error)
}

// ChunkUpserter writes embedded chunks into a namespace.
type ChunkUpserter interface {
	Upsert(ctx context.Context, namespace string, chunks []*entity.Chunk) (int, error)
}

// PageExtractor turns a raw PDF into per-page text.
type PageExtractor func(raw []byte) ([]string, error)

type IIndexerService interface {
	Ingest(ctx context.Context, msg *dto.IndexDocumentMessage) (int, error)
}

// indexerService runs the ingestion pipeline: download, extract, sanitize,
// chunk, then hand off to the vector index.
type indexerService struct {
	blobs        BlobDownloader
	extractPages PageExtractor
	index        ChunkUpserter
	chunkSize    int
	chunkOverlap int
	logger       logger.ILogger
}

func NewIndexerService(
	blobs BlobDownloader,
	extractPages PageExtractor,
	index ChunkUpserter,
	chunkSize, chunkOverlap int,
	logger logger.ILogger,
) IIndexerService {
	return &indexerService{
		blobs:        blobs,
		extractPages: extractPages,
		index:        index,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		logger:       logger,
	}
}

func (s *indexerService) Ingest(ctx context.Context, msg *dto.IndexDocumentMessage) (int, error) {
	raw, err := s.blobs.Get(ctx, msg.BlobPath)
	if err != nil {
		return 0, fmt.Errorf("download document: %w", err)
	}

	pages, err := s.extractPages(raw)
	if err != nil {
		return 0, fmt.Errorf("extract pages: %w", err)
	}

	var chunks []*entity.Chunk
	for pageNum, pageText := range pages {
		clean := textutil.Sanitize(pageText)
		if clean == "" {
			continue
		}
		for _, piece := range textutil.SplitText(clean, s.chunkSize, s.chunkOverlap) {
			meta := map[string]interface{}{
				"owner_id":     msg.OwnerKey,
				"storage_path": msg.BlobPath,
				"page":         pageNum,
			}
			if msg.Title != "" {
				meta["title"] = msg.Title
			}
			chunks = append(chunks, &entity.Chunk{
				Text:     piece,
				Metadata: meta,
			})
		}
	}

	// A scanned or empty PDF produces no chunks. That is a soft success, the
	// document simply contributes nothing to retrieval.
	if len(chunks) == 0 {
		s.logger.Warn("indexer", "document produced no indexable text", map[string]interface{}{
			"blob_path": msg.BlobPath,
			"pages":     len(pages),
		})
		return 0, nil
	}

	count, err := s.index.Upsert(ctx, msg.Namespace, chunks)
	if err != nil {
		return 0, err
	}

	s.logger.Info("indexer", "document ingested", map[string]interface{}{
		"blob_path": msg.BlobPath,
		"namespace": msg.Namespace,
		"chunks":    count,
	})
	return count, nil
}
