package rag

import (
	"sync"

	"doc-assistant-be/internal/identity"

	lru "github.com/hashicorp/golang-lru/v2"
)

// PipelineKey is the canonical cache key for one principal's view of one
// namespace.
func PipelineKey(id identity.Identity, namespace string) string {
	return id.Key() + "/" + namespace
}

// PipelineCache keeps a bounded number of built pipelines. Least recently
// used entries fall out when the cap is hit, so idle tenants cannot pin
// memory forever.
type PipelineCache struct {
	mu  sync.Mutex
	lru *lru.Cache[string, *QAPipeline]
}

func NewPipelineCache(capacity int) (*PipelineCache, error) {
	if capacity <= 0 {
		capacity = 256
	}
	c, err := lru.New[string, *QAPipeline](capacity)
	if err != nil {
		return nil, err
	}
	return &PipelineCache{lru: c}, nil
}

// GetOrBuild returns the cached pipeline for key, building and storing one
// when absent. Concurrent callers for the same key build at most once.
func (c *PipelineCache) GetOrBuild(key string, build func() (*QAPipeline, error)) (*QAPipeline, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.lru.Get(key); ok {
		return p, nil
	}

	p, err := build()
	if err != nil {
		return nil, err
	}
	c.lru.Add(key, p)
	return p, nil
}

// Evict drops the pipeline for key if present.
func (c *PipelineCache) Evict(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Remove(key)
}

func (c *PipelineCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}
