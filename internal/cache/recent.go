package cache

import (
	"context"
	"log/slog"
	"time"
)

// RecentSet remembers which record paths were produced from which PDF
// version, so a redelivered job for an unchanged document can be dropped.
type RecentSet struct {
	entries *LRUCache[time.Time]
}

func NewRecentSet(maxSize int, ttl time.Duration) *RecentSet {
	return &RecentSet{entries: NewLRUCache[time.Time](maxSize, ttl)}
}

// Seen reports whether key was marked with the same version within the TTL.
func (s *RecentSet) Seen(key string, version time.Time) bool {
	v, ok := s.entries.Get(key)
	return ok && v.Equal(version)
}

// Mark records key at version.
func (s *RecentSet) Mark(key string, version time.Time) {
	s.entries.Set(key, version)
}

// Forget drops key so the next job for it is processed.
func (s *RecentSet) Forget(key string) {
	s.entries.Delete(key)
}

func (s *RecentSet) Len() int {
	return s.entries.Size()
}

// CleanExpired implements Cleaner.
func (s *RecentSet) CleanExpired() int {
	return s.entries.CleanExpired()
}

// Cleaner is a cache that can drop expired entries.
type Cleaner interface {
	CleanExpired() int
}

// Sweep calls CleanExpired on every cache at interval until ctx is done.
func Sweep(ctx context.Context, interval time.Duration, caches ...Cleaner) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := 0
			for _, c := range caches {
				removed += c.CleanExpired()
			}
			if removed > 0 {
				slog.DebugContext(ctx, "Expired cache entries removed", "count", removed)
			}
		}
	}
}
