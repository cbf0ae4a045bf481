package lifecycle

import (
	"context"

	"doc-assistant-be/internal/pkg/logger"
)

// BlobStore is the subset of the storage gateway cleanup needs.
type BlobStore interface {
	ListPrefix(ctx context.Context, prefix string) ([]string, error)
	DeleteMany(ctx context.Context, paths []string) (int, error)
}

// NamespaceDeleter removes everything indexed under a namespace.
type NamespaceDeleter interface {
	DeleteNamespace(ctx context.Context, namespace string) (bool, error)
}

// CacheEvictor drops any cached pipeline for a key.
type CacheEvictor interface {
	Evict(key string)
}

// Report summarizes one cleanup run.
type Report struct {
	BlobsRemoved      int
	CollectionDeleted bool
}

// Manager tears down every store that may hold data for a namespace. Each
// step is best effort: a failing store is logged and skipped so the others
// still run. Running twice is safe, the second run simply finds nothing.
type Manager struct {
	blobs  BlobStore
	index  NamespaceDeleter
	cache  CacheEvictor
	logger logger.ILogger
}

func NewManager(blobs BlobStore, index NamespaceDeleter, cache CacheEvictor, logger logger.ILogger) *Manager {
	return &Manager{
		blobs:  blobs,
		index:  index,
		cache:  cache,
		logger: logger,
	}
}

// DeleteNamespaceEverywhere removes the namespace's blobs under
// ownerKey/namespace, its vector collection, and its cached pipeline.
func (m *Manager) DeleteNamespaceEverywhere(ctx context.Context, ownerKey, namespace, cacheKey string) Report {
	var report Report

	prefix := ownerKey + "/" + namespace
	names, err := m.blobs.ListPrefix(ctx, prefix)
	if err != nil {
		m.logger.Error("lifecycle", "failed to list blobs for cleanup", map[string]interface{}{
			"prefix": prefix,
			"error":  err.Error(),
		})
	} else if len(names) > 0 {
		paths := make([]string, len(names))
		for i, n := range names {
			paths[i] = prefix + "/" + n
		}
		removed, err := m.blobs.DeleteMany(ctx, paths)
		if err != nil {
			m.logger.Error("lifecycle", "failed to delete blobs", map[string]interface{}{
				"prefix": prefix,
				"error":  err.Error(),
			})
		} else {
			report.BlobsRemoved = removed
		}
	}

	deleted, err := m.index.DeleteNamespace(ctx, namespace)
	if err != nil {
		m.logger.Error("lifecycle", "failed to delete vector namespace", map[string]interface{}{
			"namespace": namespace,
			"error":     err.Error(),
		})
	} else {
		report.CollectionDeleted = deleted
	}

	m.cache.Evict(cacheKey)

	m.logger.Info("lifecycle", "namespace cleanup finished", map[string]interface{}{
		"namespace":          namespace,
		"blobs_removed":      report.BlobsRemoved,
		"collection_deleted": report.CollectionDeleted,
	})
	return report
}
