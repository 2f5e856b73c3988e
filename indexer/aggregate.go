package indexer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/sp0x/torznab-client/torznab"
)

// Aggregate searches several indexers at once.
type Aggregate struct {
	Indexers []Indexer
}

func NewAggregate(indexers ...Indexer) *Aggregate {
	return &Aggregate{Indexers: indexers}
}

func (ag *Aggregate) Name() string {
	var names []string
	for _, ixr := range ag.Indexers {
		names = append(names, ixr.Name())
	}
	return strings.Join(names, ",")
}

// Query fans the query out to every indexer. An indexer that fails is logged and skipped,
// the search only fails when every indexer did.
func (ag *Aggregate) Query(ctx context.Context, query *torznab.Query) (torznab.Results, error) {
	if len(ag.Indexers) == 0 {
		return nil, errors.New("aggregate has no indexers")
	}
	g, ctx := errgroup.WithContext(ctx)
	allResults := make([]torznab.Results, len(ag.Indexers))
	var lock sync.Mutex
	var failures []string
	for idx, ixr := range ag.Indexers {
		idx, ixr := idx, ixr
		g.Go(func() error {
			results, err := ixr.Query(ctx, query)
			if err != nil {
				log.WithFields(log.Fields{"indexer": ixr.Name()}).
					Warnf("Indexer failed: %s", err)
				lock.Lock()
				failures = append(failures, fmt.Sprintf("%s: %v", ixr.Name(), err))
				lock.Unlock()
				return nil
			}
			allResults[idx] = results
			return nil
		})
	}
	_ = g.Wait()
	if len(failures) == len(ag.Indexers) {
		return nil, fmt.Errorf("all indexers failed: %s", strings.Join(failures, "; "))
	}

	maxLength := 0
	for _, r := range allResults {
		if len(r) > maxLength {
			maxLength = len(r)
		}
	}
	// interleave search results to preserve ordering
	var results torznab.Results
	for i := 0; i < maxLength; i++ {
		for _, r := range allResults {
			if len(r) > i {
				results = append(results, r[i])
			}
		}
	}
	if query.Limit > 0 && len(results) > query.Limit {
		results = results[:query.Limit]
	}
	return results, nil
}

// Capabilities advertises the union of the categories of every reachable indexer.
func (ag *Aggregate) Capabilities(ctx context.Context) (*torznab.Capabilities, error) {
	caps := torznab.DefaultCapabilities("Aggregated Indexer")
	caps.Categories = nil
	seen := map[uint32]bool{}
	for _, ixr := range ag.Indexers {
		ixrCaps, err := ixr.Capabilities(ctx)
		if err != nil {
			log.WithFields(log.Fields{"indexer": ixr.Name()}).
				Warnf("Couldn't get capabilities: %s", err)
			continue
		}
		for _, cat := range ixrCaps.Categories {
			if seen[cat.ID] {
				continue
			}
			seen[cat.ID] = true
			caps.Categories = append(caps.Categories, cat)
		}
	}
	return caps, nil
}

// Check queries every indexer once and returns the names of the ones that failed.
func (ag *Aggregate) Check(ctx context.Context) []string {
	var lock sync.Mutex
	var failed []string
	g := errgroup.Group{}
	for _, ixr := range ag.Indexers {
		ixr := ixr
		g.Go(func() error {
			if _, err := ixr.Capabilities(ctx); err != nil {
				log.Warnf("Indexer %q failed: %s", ixr.Name(), err)
				lock.Lock()
				failed = append(failed, ixr.Name())
				lock.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return failed
}
