package indexer

import (
	"context"
	"errors"
	"io"

	"github.com/sp0x/torznab-client/indexer/categories"
	"github.com/sp0x/torznab-client/torznab"
)

//go:generate mockgen -destination=mocks/mock_indexer.go -package=mocks . Indexer
type Indexer interface {
	Name() string
	// Query runs a torznab query. Items that couldn't be mapped are part of the results,
	// only a failed request is an error.
	Query(ctx context.Context, query *torznab.Query) (torznab.Results, error)
	Capabilities(ctx context.Context) (*torznab.Capabilities, error)
}

// Downloader is an indexer that can fetch the files its results link to.
type Downloader interface {
	Download(ctx context.Context, link string) (io.ReadCloser, error)
}

var ErrNoDownloads = errors.New("indexer can't download files")

// Download fetches link through ixr, using the indexer's own client and credentials.
func Download(ctx context.Context, ixr Indexer, link string) (io.ReadCloser, error) {
	d, ok := ixr.(Downloader)
	if !ok {
		return nil, ErrNoDownloads
	}
	return d.Download(ctx, link)
}

// Search looks for q in a single category of the indexer.
func Search(ctx context.Context, ixr Indexer, cat categories.Category, q string) (torznab.Results, error) {
	return ixr.Query(ctx, torznab.NewQuery(q, cat))
}

var (
	_ Indexer    = (*torznab.Client)(nil)
	_ Downloader = (*torznab.Client)(nil)
	_ Downloader = (*CachedIndexer)(nil)
)
