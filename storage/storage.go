package storage

import (
	"errors"
	"time"

	"github.com/sp0x/torznab-client/torznab"
)

// ErrNotFound is returned by backings when no record matches.
var ErrNotFound = errors.New("record not found")

// Record is a torrent as it was last seen on an indexer.
type Record struct {
	ID              string
	Indexer         string
	Name            string
	Link            string
	GUID            string
	Size            uint64
	Categories      []uint32
	Seeders         *uint32
	Leechers        *uint32
	MinimumRatio    *float64
	MinimumSeedTime *time.Duration
	PublishDate     *time.Time
	FirstSeen       time.Time
	LastSeen        time.Time
}

// NewRecord snapshots a torrent found on the given indexer.
func NewRecord(indexer string, t *torznab.Torrent) *Record {
	return &Record{
		Indexer:         indexer,
		Name:            t.Name,
		Link:            t.Link,
		GUID:            t.GUID,
		Size:            t.Size,
		Categories:      append([]uint32(nil), t.Categories...),
		Seeders:         t.Seeders,
		Leechers:        t.Leechers,
		MinimumRatio:    t.MinimumRatio,
		MinimumSeedTime: t.MinimumSeedTime,
		PublishDate:     t.PublishDate,
	}
}

// Torrent turns the record back into a torrent.
func (r *Record) Torrent() *torznab.Torrent {
	return &torznab.Torrent{
		Name:            r.Name,
		Size:            r.Size,
		Categories:      r.Categories,
		Link:            r.Link,
		Seeders:         r.Seeders,
		Leechers:        r.Leechers,
		MinimumRatio:    r.MinimumRatio,
		MinimumSeedTime: r.MinimumSeedTime,
		GUID:            r.GUID,
		PublishDate:     r.PublishDate,
	}
}

// Changed reports whether the observable state of other differs from r.
func (r *Record) Changed(other *Record) bool {
	return r.Name != other.Name ||
		r.Size != other.Size ||
		!equalCount(r.Seeders, other.Seeders) ||
		!equalCount(r.Leechers, other.Leechers)
}

func equalCount(a, b *uint32) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// ItemStorage keeps the history of torrents seen on indexers.
type ItemStorage interface {
	// Add stores the torrent, keyed by its link. isNew is set for torrents never seen before,
	// isUpdate when a known torrent changed.
	Add(indexer string, t *torznab.Torrent) (isNew, isUpdate bool, err error)
	// Latest returns the n most recently stored records, newest first.
	Latest(n int) ([]*Record, error)
	Count() (int64, error)
	Close() error
}

// ItemStorageBacking is the database a storage persists records in.
type ItemStorageBacking interface {
	// Find looks up a record by its link, returning ErrNotFound if there's none.
	Find(link string) (*Record, error)
	Create(r *Record) error
	Update(r *Record) error
	Latest(n int) ([]*Record, error)
	Size() (int64, error)
	Close() error
}

// Truncater is implemented by backings that can drop every record.
type Truncater interface {
	Truncate() error
}
