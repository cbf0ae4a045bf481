package embedding

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyProvider struct {
	failures int
	calls    int
}

func (f *flakyProvider) Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("transient upstream error")
	}
	return &EmbeddingResponse{
		Embedding: EmbeddingResponseEmbedding{Values: []float32{0.1, 0.2}},
	}, nil
}

func (f *flakyProvider) GenerateBatch(ctx context.Context, texts []string, taskType string) ([]*EmbeddingResponse, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("transient upstream error")
	}
	out := make([]*EmbeddingResponse, len(texts))
	for i := range texts {
		out[i] = &EmbeddingResponse{
			Embedding: EmbeddingResponseEmbedding{Values: []float32{float32(i)}},
		}
	}
	return out, nil
}

func TestRetryingProviderRecovers(t *testing.T) {
	inner := &flakyProvider{failures: 2}
	p := NewRetryingProvider(inner, 3, time.Millisecond, 4*time.Millisecond)

	res, err := p.Generate(context.Background(), "hello", TaskDocument)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2}, res.Embedding.Values)
	assert.Equal(t, 3, inner.calls)
}

func TestRetryingProviderExhaustsAttempts(t *testing.T) {
	inner := &flakyProvider{failures: 100}
	p := NewRetryingProvider(inner, 3, time.Millisecond, 4*time.Millisecond)

	_, err := p.Generate(context.Background(), "hello", TaskQuery)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 3, inner.calls)
}

func TestRetryingProviderBatch(t *testing.T) {
	inner := &flakyProvider{failures: 1}
	p := NewRetryingProvider(inner, 3, time.Millisecond, 4*time.Millisecond)

	out, err := p.GenerateBatch(context.Background(), []string{"a", "b"}, TaskDocument)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 2, inner.calls)
}

func TestRetryingProviderHonorsContext(t *testing.T) {
	inner := &flakyProvider{failures: 100}
	p := NewRetryingProvider(inner, 3, time.Hour, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, "hello", TaskDocument)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, inner.calls)
}

func TestNormalizeVector(t *testing.T) {
	normalized := normalizeVector([]float32{3, 4})
	assert.InDelta(t, 0.6, normalized[0], 1e-6)
	assert.InDelta(t, 0.8, normalized[1], 1e-6)

	zero := normalizeVector([]float32{0, 0})
	assert.Equal(t, []float32{0, 0}, zero)
}
