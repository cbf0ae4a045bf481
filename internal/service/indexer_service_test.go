package service

import (
	"context"
	"errors"
	"testing"

	"doc-assistant-be/internal/dto"
	"doc-assistant-be/internal/entity"
	"doc-assistant-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBlobs struct {
	data map[string][]byte
}

func (f *fakeBlobs) Get(ctx context.Context, path string) ([]byte, error) {
	d, ok := f.data[path]
	if !ok {
		return nil, errors.New("object not found")
	}
	return d, nil
}

type fakeUpserter struct {
	namespace string
	chunks    []*entity.Chunk
	err       error
}

func (f *fakeUpserter) Upsert(ctx context.Context, namespace string, chunks []*entity.Chunk) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.namespace = namespace
	f.chunks = chunks
	return len(chunks), nil
}

func testLogger() logger.ILogger {
	return logger.NewZapLogger("/tmp/indexer_test.log", false)
}

func TestIngestIndexesPerPage(t *testing.T) {
	blobs := &fakeBlobs{data: map[string][]byte{"42/7/doc.pdf": []byte("pdf")}}
	extract := func(raw []byte) ([]string, error) {
		return []string{"", "text   on\tpage two"}, nil
	}
	upserter := &fakeUpserter{}

	svc := NewIndexerService(blobs, extract, upserter, 700, 100, testLogger())

	count, err := svc.Ingest(context.Background(), &dto.IndexDocumentMessage{
		BlobPath:  "42/7/doc.pdf",
		OwnerKey:  "42",
		Namespace: "7",
		Title:     "doc.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, "7", upserter.namespace)

	require.Len(t, upserter.chunks, 1)
	chunk := upserter.chunks[0]
	assert.Equal(t, "text on page two", chunk.Text)
	assert.Equal(t, "42", chunk.Metadata["owner_id"])
	assert.Equal(t, "42/7/doc.pdf", chunk.Metadata["storage_path"])
	assert.Equal(t, 1, chunk.Metadata["page"])
	assert.Equal(t, "doc.pdf", chunk.Metadata["title"])
}

func TestIngestScannedPdfIsSoftSuccess(t *testing.T) {
	blobs := &fakeBlobs{data: map[string][]byte{"42/7/scan.pdf": []byte("pdf")}}
	extract := func(raw []byte) ([]string, error) {
		return []string{"", "  ", "\x00\x01"}, nil
	}
	upserter := &fakeUpserter{}

	svc := NewIndexerService(blobs, extract, upserter, 700, 100, testLogger())

	count, err := svc.Ingest(context.Background(), &dto.IndexDocumentMessage{
		BlobPath:  "42/7/scan.pdf",
		OwnerKey:  "42",
		Namespace: "7",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Nil(t, upserter.chunks)
}

func TestIngestUpsertErrorPropagates(t *testing.T) {
	blobs := &fakeBlobs{data: map[string][]byte{"42/7/doc.pdf": []byte("pdf")}}
	extract := func(raw []byte) ([]string, error) {
		return []string{"some real content"}, nil
	}
	upstream := errors.New("embedding provider unavailable")
	upserter := &fakeUpserter{err: upstream}

	svc := NewIndexerService(blobs, extract, upserter, 700, 100, testLogger())

	_, err := svc.Ingest(context.Background(), &dto.IndexDocumentMessage{
		BlobPath:  "42/7/doc.pdf",
		OwnerKey:  "42",
		Namespace: "7",
	})
	assert.ErrorIs(t, err, upstream)
}

func TestIngestMissingBlob(t *testing.T) {
	svc := NewIndexerService(&fakeBlobs{}, nil, &fakeUpserter{}, 700, 100, testLogger())

	_, err := svc.Ingest(context.Background(), &dto.IndexDocumentMessage{
		BlobPath: "42/7/missing.pdf",
	})
	assert.Error(t, err)
}
