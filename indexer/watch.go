package indexer

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/sp0x/torznab-client/storage"
	"github.com/sp0x/torznab-client/torznab"
)

// Update is a search result that is worth reporting: a new or changed torrent, or a rejected item.
type Update struct {
	torznab.Result
	IsNew    bool
	IsUpdate bool
}

// Poll runs the query once and records every torrent in the store.
func Poll(ctx context.Context, ixr Indexer, query *torznab.Query, store storage.ItemStorage) ([]Update, error) {
	results, err := ixr.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	var updates []Update
	for _, result := range results {
		if result.Err != nil {
			log.WithFields(log.Fields{"indexer": result.Indexer}).
				Warnf("Rejected item: %s", result.Err)
			updates = append(updates, Update{Result: result})
			continue
		}
		indexerName := result.Indexer
		if indexerName == "" {
			indexerName = ixr.Name()
		}
		isNew, isUpdate, err := store.Add(indexerName, result.Torrent)
		if err != nil {
			return updates, err
		}
		fields := log.Fields{"indexer": indexerName, "name": result.Torrent.Name, "pub": result.Torrent.PublishDate}
		switch {
		case isNew:
			log.WithFields(fields).Info("Found new result")
		case isUpdate:
			log.WithFields(fields).Info("Updated result")
		default:
			continue
		}
		updates = append(updates, Update{Result: result, IsNew: isNew, IsUpdate: isUpdate})
	}
	return updates, nil
}

// Watch tracks an index for any new items and records them.
// The channel is closed once ctx is done.
func Watch(ctx context.Context, ixr Indexer, query *torznab.Query, interval time.Duration, store storage.ItemStorage) (<-chan Update, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("watch interval must be positive, got %s", interval)
	}
	outputChan := make(chan Update)
	go func() {
		defer close(outputChan)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			updates, err := Poll(ctx, ixr, query, store)
			if err != nil {
				log.WithFields(log.Fields{"indexer": ixr.Name()}).
					Warningf("Could not poll indexer: %s", err)
			}
			for _, u := range updates {
				select {
				case outputChan <- u:
				case <-ctx.Done():
					return
				}
			}
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()
	return outputChan, nil
}
