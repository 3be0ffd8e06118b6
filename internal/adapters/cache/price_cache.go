package cache

import (
	"fmt"

	"coindesk/internal/domain"

	"github.com/dgraph-io/ristretto"
)

type RistrettoPriceCache struct {
	cache *ristretto.Cache
}

func NewPriceCache(maxItems int64) (*RistrettoPriceCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create price cache failed: %w", err)
	}
	return &RistrettoPriceCache{cache: c}, nil
}

func (c *RistrettoPriceCache) Get(id int64) (domain.Price, bool) {
	if v, ok := c.cache.Get(id); ok {
		price, ok := v.(domain.Price)
		return price, ok
	}
	return domain.Price{}, false
}

func (c *RistrettoPriceCache) Set(price domain.Price) {
	c.cache.Set(price.ID, price, 1)
}

func (c *RistrettoPriceCache) Invalidate(id int64) {
	c.cache.Del(id)
}

// Wait blocks until buffered writes are applied.
func (c *RistrettoPriceCache) Wait() { c.cache.Wait() }

func (c *RistrettoPriceCache) Close() { c.cache.Close() }

// Nop is used when caching is disabled.
type Nop struct{}

func (Nop) Get(int64) (domain.Price, bool) { return domain.Price{}, false }

func (Nop) Set(domain.Price) {}

func (Nop) Invalidate(int64) {}
