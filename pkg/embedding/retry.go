package embedding

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrUnavailable marks an embedding failure that survived every retry.
var ErrUnavailable = errors.New("embedding provider unavailable")

// RetryingProvider wraps another provider with exponential backoff. Delays
// double on each failed attempt, starting at baseDelay and capped at maxDelay.
type RetryingProvider struct {
	inner       EmbeddingProvider
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
}

func NewRetryingProvider(inner EmbeddingProvider, maxAttempts int, baseDelay, maxDelay time.Duration) *RetryingProvider {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if baseDelay <= 0 {
		baseDelay = 500 * time.Millisecond
	}
	if maxDelay < baseDelay {
		maxDelay = baseDelay
	}
	return &RetryingProvider{
		inner:       inner,
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		maxDelay:    maxDelay,
	}
}

func (p *RetryingProvider) Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error) {
	var res *EmbeddingResponse
	err := p.withRetry(ctx, func() error {
		var innerErr error
		res, innerErr = p.inner.Generate(ctx, text, taskType)
		return innerErr
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (p *RetryingProvider) GenerateBatch(ctx context.Context, texts []string, taskType string) ([]*EmbeddingResponse, error) {
	var res []*EmbeddingResponse
	err := p.withRetry(ctx, func() error {
		var innerErr error
		res, innerErr = p.inner.GenerateBatch(ctx, texts, taskType)
		return innerErr
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (p *RetryingProvider) withRetry(ctx context.Context, op func() error) error {
	delay := p.baseDelay

	var lastErr error
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if attempt == p.maxAttempts {
			break
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay *= 2
		if delay > p.maxDelay {
			delay = p.maxDelay
		}
	}

	return fmt.Errorf("%w after %d attempts: %v", ErrUnavailable, p.maxAttempts, lastErr)
}
