package rag

import (
	"fmt"
	"testing"

	"doc-assistant-be/internal/identity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineKey(t *testing.T) {
	assert.Equal(t, "42/7", PipelineKey(identity.Authenticated(42), "7"))
	assert.Equal(t, "tok/tok_session", PipelineKey(identity.Guest("tok"), "tok_session"))
}

func TestPipelineCacheBuildsOnce(t *testing.T) {
	c, err := NewPipelineCache(4)
	require.NoError(t, err)

	builds := 0
	build := func() (*QAPipeline, error) {
		builds++
		return &QAPipeline{}, nil
	}

	p1, err := c.GetOrBuild("a", build)
	require.NoError(t, err)
	p2, err := c.GetOrBuild("a", build)
	require.NoError(t, err)

	assert.Same(t, p1, p2)
	assert.Equal(t, 1, builds)
}

func TestPipelineCacheBuildErrorNotCached(t *testing.T) {
	c, err := NewPipelineCache(4)
	require.NoError(t, err)

	_, err = c.GetOrBuild("a", func() (*QAPipeline, error) {
		return nil, fmt.Errorf("build failed")
	})
	assert.Error(t, err)
	assert.Equal(t, 0, c.Len())

	p, err := c.GetOrBuild("a", func() (*QAPipeline, error) {
		return &QAPipeline{}, nil
	})
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestPipelineCacheEvict(t *testing.T) {
	c, err := NewPipelineCache(4)
	require.NoError(t, err)

	builds := 0
	build := func() (*QAPipeline, error) {
		builds++
		return &QAPipeline{}, nil
	}

	_, _ = c.GetOrBuild("a", build)
	c.Evict("a")
	_, _ = c.GetOrBuild("a", build)

	assert.Equal(t, 2, builds)
}

func TestPipelineCacheBounded(t *testing.T) {
	c, err := NewPipelineCache(2)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		key := fmt.Sprintf("k%d", i)
		_, err := c.GetOrBuild(key, func() (*QAPipeline, error) {
			return &QAPipeline{}, nil
		})
		require.NoError(t, err)
	}

	assert.Equal(t, 2, c.Len())
}
