package memory

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// GuestRegistry tracks active guest tokens with a sliding TTL. When a token
// expires (or is removed) the registered callback fires so the owning
// namespace can be cleaned up. The callback also runs on explicit removal,
// which is fine because namespace cleanup is idempotent.
type GuestRegistry struct {
	cache *gocache.Cache
}

func NewGuestRegistry(ttl time.Duration) *GuestRegistry {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &GuestRegistry{
		cache: gocache.New(ttl, ttl/2),
	}
}

// OnExpired registers the cleanup hook. Must be called before the first Touch.
func (r *GuestRegistry) OnExpired(fn func(token string)) {
	r.cache.OnEvicted(func(key string, _ interface{}) {
		fn(key)
	})
}

// Touch marks the guest as active, resetting its TTL.
func (r *GuestRegistry) Touch(token string) {
	r.cache.SetDefault(token, time.Now())
}

// Remove drops the guest immediately, firing the expiry hook.
func (r *GuestRegistry) Remove(token string) {
	r.cache.Delete(token)
}

// Contains reports whether the guest is currently tracked.
func (r *GuestRegistry) Contains(token string) bool {
	_, ok := r.cache.Get(token)
	return ok
}

// Len reports how many guests are tracked, mainly for logging.
func (r *GuestRegistry) Len() int {
	return r.cache.ItemCount()
}
