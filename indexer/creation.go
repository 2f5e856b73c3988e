package indexer

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/sp0x/torznab-client/config"
	"github.com/sp0x/torznab-client/indexer/cache"
	"github.com/sp0x/torznab-client/release"
	"github.com/sp0x/torznab-client/torznab"
)

// AggregateKey looks up an aggregate of every configured indexer.
const AggregateKey = "all"

type Scope interface {
	Lookup(cfg config.Config, key string) (Indexer, error)
	CreateAggregate(cfg config.Config) (*Aggregate, error)
}

// CachedScope keeps one indexer per key, so lookups share clients and search caches.
type CachedScope struct {
	lock     sync.Mutex
	indexers map[string]Indexer
}

// NewScope creates a new scope for indexers
func NewScope() *CachedScope {
	return &CachedScope{indexers: make(map[string]Indexer)}
}

// Lookup finds the matching Indexer.
func (c *CachedScope) Lookup(cfg config.Config, key string) (Indexer, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.lookup(cfg, key)
}

func (c *CachedScope) lookup(cfg config.Config, key string) (Indexer, error) {
	if ixr, ok := c.indexers[key]; ok {
		return ixr, nil
	}
	var ixr Indexer
	var err error
	if key == AggregateKey || key == "aggregate" {
		ixr, err = c.createAggregate(cfg)
	} else {
		ixr, err = CreateIndexer(cfg, key)
	}
	if err != nil {
		return nil, err
	}
	ixr, err = withCache(cfg, ixr)
	if err != nil {
		return nil, err
	}
	c.indexers[key] = ixr
	return ixr, nil
}

// CreateAggregate creates an aggregate of all the configured indexers.
func (c *CachedScope) CreateAggregate(cfg config.Config) (*Aggregate, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.createAggregate(cfg)
}

func (c *CachedScope) createAggregate(cfg config.Config) (*Aggregate, error) {
	result := &Aggregate{}
	for _, key := range cfg.GetSites() {
		ixr, err := c.lookup(cfg, key)
		if err != nil {
			return nil, err
		}
		result.Indexers = append(result.Indexers, ixr)
	}
	if len(result.Indexers) == 0 {
		return nil, fmt.Errorf("no indexers are configured")
	}
	return result, nil
}

func withCache(cfg config.Config, ixr Indexer) (Indexer, error) {
	ttl := cfg.GetDuration("cache_ttl")
	if ttl <= 0 {
		return ixr, nil
	}
	c, err := cache.NewTTL(1000, ttl)
	if err != nil {
		return nil, err
	}
	return NewCachedIndexer(ixr, c), nil
}

// NewMapperFromConfig builds the item mapper selected by the "names" and "name_parser" keys.
func NewMapperFromConfig(cfg config.Config) (*torznab.Mapper, error) {
	mode := cfg.GetString("names")
	switch mode {
	case config.NamesOff, "":
		return torznab.NewMapper(), nil
	case config.NamesParse, config.NamesRequire:
	default:
		return nil, fmt.Errorf("unknown names mode %q", mode)
	}
	parser, err := release.FromName(cfg.GetString("name_parser"))
	if err != nil {
		return nil, err
	}
	return torznab.NewMapper(torznab.WithNameParser(parser, mode == config.NamesRequire)), nil
}

// CreateIndexer creates a torznab client for a configured indexer.
func CreateIndexer(cfg config.Config, name string) (*torznab.Client, error) {
	url, ok, err := cfg.GetSiteOption(name, "url")
	if err != nil {
		return nil, err
	}
	if !ok || url == "" {
		return nil, fmt.Errorf("indexer %q has no url configured", name)
	}
	apiKey, _, err := cfg.GetSiteOption(name, "apikey")
	if err != nil {
		return nil, err
	}
	mapper, err := NewMapperFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	opts := []torznab.ClientOption{
		torznab.WithName(name),
		torznab.WithMapper(mapper),
	}
	if timeout := cfg.GetDuration("timeout"); timeout > 0 {
		opts = append(opts, torznab.WithTimeout(timeout))
	}
	client, err := torznab.NewClient(url, apiKey, opts...)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"indexer": name}).Debugf("Loaded indexer")
	return client, nil
}
