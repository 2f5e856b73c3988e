package indexer

import (
	"context"
	"io"

	"github.com/sp0x/torznab-client/indexer/cache"
	"github.com/sp0x/torznab-client/torznab"
)

// CachedIndexer remembers the results of recent queries.
type CachedIndexer struct {
	Indexer
	cache *cache.CacheWithTTL
}

func NewCachedIndexer(ixr Indexer, c *cache.CacheWithTTL) *CachedIndexer {
	return &CachedIndexer{Indexer: ixr, cache: c}
}

// Query answers from the cache when the same query ran within the cache ttl.
// Failed searches are never cached.
func (ci *CachedIndexer) Query(ctx context.Context, query *torznab.Query) (torznab.Results, error) {
	key := query.String()
	if cached, ok := ci.cache.Get(key); ok {
		return cached.(torznab.Results), nil
	}
	results, err := ci.Indexer.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	ci.cache.Add(key, results)
	return results, nil
}

// Download is never cached.
func (ci *CachedIndexer) Download(ctx context.Context, link string) (io.ReadCloser, error) {
	return Download(ctx, ci.Indexer, link)
}
