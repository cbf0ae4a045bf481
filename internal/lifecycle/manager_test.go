package lifecycle

import (
	"context"
	"errors"
	"testing"

	"doc-assistant-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
)

type fakeBlobs struct {
	objects map[string][]string // prefix -> names
	listErr error
}

func (f *fakeBlobs) ListPrefix(ctx context.Context, prefix string) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.objects[prefix], nil
}

func (f *fakeBlobs) DeleteMany(ctx context.Context, paths []string) (int, error) {
	n := 0
	for prefix, names := range f.objects {
		kept := names[:0]
		for _, name := range names {
			full := prefix + "/" + name
			removed := false
			for _, p := range paths {
				if p == full {
					removed = true
					break
				}
			}
			if removed {
				n++
			} else {
				kept = append(kept, name)
			}
		}
		f.objects[prefix] = kept
	}
	return n, nil
}

type fakeIndex struct {
	namespaces map[string]bool
	err        error
}

func (f *fakeIndex) DeleteNamespace(ctx context.Context, namespace string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.namespaces[namespace] {
		delete(f.namespaces, namespace)
		return true, nil
	}
	return false, nil
}

type fakeCache struct {
	evicted []string
}

func (f *fakeCache) Evict(key string) {
	f.evicted = append(f.evicted, key)
}

func newTestManager(blobs *fakeBlobs, index *fakeIndex, cache *fakeCache) *Manager {
	return NewManager(blobs, index, cache, logger.NewZapLogger("/tmp/lifecycle_test.log", false))
}

func TestCleanupRemovesEverything(t *testing.T) {
	blobs := &fakeBlobs{objects: map[string][]string{
		"42/7": {"a.pdf", "b.pdf"},
	}}
	index := &fakeIndex{namespaces: map[string]bool{"7": true}}
	cache := &fakeCache{}

	report := newTestManager(blobs, index, cache).
		DeleteNamespaceEverywhere(context.Background(), "42", "7", "42/7")

	assert.Equal(t, 2, report.BlobsRemoved)
	assert.True(t, report.CollectionDeleted)
	assert.Equal(t, []string{"42/7"}, cache.evicted)
	assert.Empty(t, blobs.objects["42/7"])
}

func TestCleanupNeverIndexedNamespace(t *testing.T) {
	blobs := &fakeBlobs{objects: map[string][]string{}}
	index := &fakeIndex{namespaces: map[string]bool{}}
	cache := &fakeCache{}

	report := newTestManager(blobs, index, cache).
		DeleteNamespaceEverywhere(context.Background(), "42", "9", "42/9")

	assert.Equal(t, 0, report.BlobsRemoved)
	assert.False(t, report.CollectionDeleted)
	assert.Equal(t, []string{"42/9"}, cache.evicted)
}

func TestCleanupIsIdempotent(t *testing.T) {
	blobs := &fakeBlobs{objects: map[string][]string{
		"42/7": {"a.pdf"},
	}}
	index := &fakeIndex{namespaces: map[string]bool{"7": true}}
	cache := &fakeCache{}
	m := newTestManager(blobs, index, cache)

	first := m.DeleteNamespaceEverywhere(context.Background(), "42", "7", "42/7")
	second := m.DeleteNamespaceEverywhere(context.Background(), "42", "7", "42/7")

	assert.Equal(t, 1, first.BlobsRemoved)
	assert.True(t, first.CollectionDeleted)
	assert.Equal(t, 0, second.BlobsRemoved)
	assert.False(t, second.CollectionDeleted)
}

func TestCleanupFailingStoreDoesNotAbort(t *testing.T) {
	blobs := &fakeBlobs{listErr: errors.New("storage down")}
	index := &fakeIndex{namespaces: map[string]bool{"7": true}}
	cache := &fakeCache{}

	report := newTestManager(blobs, index, cache).
		DeleteNamespaceEverywhere(context.Background(), "42", "7", "42/7")

	assert.Equal(t, 0, report.BlobsRemoved)
	assert.True(t, report.CollectionDeleted)
	assert.Equal(t, []string{"42/7"}, cache.evicted)
}
