package memory

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGuestRegistryTouchAndContains(t *testing.T) {
	r := NewGuestRegistry(time.Minute)
	assert.False(t, r.Contains("tok"))

	r.Touch("tok")
	assert.True(t, r.Contains("tok"))
	assert.Equal(t, 1, r.Len())
}

func TestGuestRegistryRemoveFiresHook(t *testing.T) {
	r := NewGuestRegistry(time.Minute)

	var mu sync.Mutex
	var expired []string
	r.OnExpired(func(token string) {
		mu.Lock()
		defer mu.Unlock()
		expired = append(expired, token)
	})

	r.Touch("tok")
	r.Remove("tok")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"tok"}, expired)
	assert.False(t, r.Contains("tok"))
}

func TestGuestRegistryExpiry(t *testing.T) {
	r := NewGuestRegistry(20 * time.Millisecond)

	var mu sync.Mutex
	var expired []string
	r.OnExpired(func(token string) {
		mu.Lock()
		defer mu.Unlock()
		expired = append(expired, token)
	})

	r.Touch("tok")

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(expired) == 1
	}, time.Second, 10*time.Millisecond)
}
