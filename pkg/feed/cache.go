package feed

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/umputun/wikifeedia/pkg/domain"
)

// DefaultCacheSize is the number of pages kept by the response cache
const DefaultCacheSize = 256

// Cache keeps the latest network response for each distinct request
type Cache struct {
	pages *lru.Cache[string, Page]
}

// NewCache makes a response cache bounded to size pages
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	pages, err := lru.New[string, Page](size)
	if err != nil {
		return nil, fmt.Errorf("make lru cache: %w", err)
	}
	return &Cache{pages: pages}, nil
}

// Get returns a copy of the cached page for params
func (c *Cache) Get(params Params) (Page, bool) {
	if c == nil {
		return Page{}, false
	}
	page, ok := c.pages.Get(params.key())
	if !ok {
		return Page{}, false
	}
	return Page{AsOf: page.AsOf, Articles: append([]domain.Article(nil), page.Articles...)}, true
}

// Put stores page as the response for params
func (c *Cache) Put(params Params, page Page) {
	if c == nil {
		return
	}
	c.pages.Add(params.key(), Page{AsOf: page.AsOf, Articles: append([]domain.Article(nil), page.Articles...)})
}

// Len returns number of cached pages
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.pages.Len()
}
