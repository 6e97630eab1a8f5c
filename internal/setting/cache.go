package setting

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/mahedy25/storefront-api/internal/domain"
)

// Cache is the process-wide settings cache. Unlike an ambient global it is an
// explicit object with a defined invalidation hook: Update writes through and
// refreshes, Invalidate forces the next Get back to the repository.
// Concurrent cold reads collapse into one repository call.
type Cache struct {
	repo Repository

	mu     sync.RWMutex
	cached *domain.Setting
	sfg    singleflight.Group
}

func NewCache(repo Repository) *Cache {
	return &Cache{repo: repo}
}

// Get returns the cached settings, loading them on first use. A missing
// settings document falls back to the compiled defaults.
func (c *Cache) Get(ctx context.Context) (domain.Setting, error) {
	c.mu.RLock()
	if c.cached != nil {
		s := *c.cached
		c.mu.RUnlock()
		return s, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.sfg.Do("setting", func() (interface{}, error) {
		s, err := c.repo.Get(ctx)
		if errors.Is(err, ErrSettingNotFound) {
			def := domain.DefaultSetting()
			s = &def
		} else if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.cached = s
		c.mu.Unlock()
		return s, nil
	})
	if err != nil {
		return domain.Setting{}, err
	}
	return *v.(*domain.Setting), nil
}

// Invalidate drops the cached copy; the next Get hits the repository.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.cached = nil
	c.mu.Unlock()
}

// Update persists the settings and replaces the cached copy with the stored
// document.
func (c *Cache) Update(ctx context.Context, s domain.Setting) (domain.Setting, error) {
	updated, err := c.repo.Upsert(ctx, &s)
	if err != nil {
		return domain.Setting{}, err
	}

	c.mu.Lock()
	c.cached = updated
	c.mu.Unlock()
	return *updated, nil
}
