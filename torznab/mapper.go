package torznab

import (
	"strconv"
	"time"

	"github.com/bcampbell/fuzzytime"
	"github.com/mmcdole/gofeed/rss"

	"github.com/sp0x/torznab-client/release"
)

// Mapper turns parsed feed items into torrents.
// It holds no mutable state and is safe to use from multiple goroutines.
type Mapper struct {
	names        release.Parser
	requireNames bool
}

type MapperOption func(*Mapper)

// WithNameParser makes the mapper parse every item title with p.
// When required is set, a rejected title rejects the item, otherwise the
// release info is only attached when parsing succeeds.
func WithNameParser(p release.Parser, required bool) MapperOption {
	return func(m *Mapper) {
		m.names = p
		m.requireNames = required
	}
}

func NewMapper(opts ...MapperOption) *Mapper {
	m := &Mapper{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var defaultMapper = NewMapper()

// FromItem maps an item without release name parsing.
func FromItem(item *rss.Item) (*Torrent, error) {
	return defaultMapper.Map(item)
}

// Map validates a single feed item and builds a torrent out of it.
func (m *Mapper) Map(item *rss.Item) (*Torrent, error) {
	if item == nil {
		return nil, ErrNilItem
	}
	if item.Title == "" {
		return nil, ErrMissingTitle
	}
	if item.Enclosure == nil {
		return nil, ErrMissingSize
	}
	size, err := strconv.ParseUint(item.Enclosure.Length, 10, 64)
	if err != nil {
		return nil, &ParseError{Field: "size", Value: item.Enclosure.Length, Err: err}
	}
	cats := make([]uint32, 0, len(item.Categories))
	for _, c := range item.Categories {
		if c == nil {
			continue
		}
		id, err := strconv.ParseUint(c.Value, 10, 32)
		if err != nil {
			return nil, &ParseError{Field: "category", Value: c.Value, Err: err}
		}
		cats = append(cats, uint32(id))
	}
	if item.Link == "" {
		return nil, ErrMissingLink
	}

	t := &Torrent{
		Name:        item.Title,
		Size:        size,
		Categories:  cats,
		Link:        item.Link,
		PublishDate: publishDate(item),
	}
	if item.GUID != nil {
		t.GUID = item.GUID.Value
	}
	if err := readAttributes(item, t); err != nil {
		return nil, err
	}
	if m.names != nil {
		info, err := m.names.Parse(t.Name)
		switch {
		case err != nil && m.requireNames:
			return nil, &NameError{Name: t.Name, Err: err}
		case err == nil:
			t.Release = info
		}
	}
	return t, nil
}

// MapAll maps every item independently, a rejected item doesn't affect the others.
func (m *Mapper) MapAll(items []*rss.Item) Results {
	results := make(Results, len(items))
	for i, item := range items {
		t, err := m.Map(item)
		results[i] = Result{Torrent: t, Err: err}
	}
	return results
}

func readAttributes(item *rss.Item, t *Torrent) error {
	attrs := torznabAttributes(item)
	if attrs == nil {
		return nil
	}
	seeders, err := attrs.uint32(AttrSeeders)
	if err != nil {
		return err
	}
	if seeders != nil {
		t.Seeders = seeders
		peers, err := attrs.uint32(AttrPeers)
		if err != nil {
			return err
		}
		if peers != nil {
			// Some indexers report fewer peers than seeders, there are no leechers then.
			leechers := uint32(0)
			if *peers > *seeders {
				leechers = *peers - *seeders
			}
			t.Leechers = &leechers
		}
	}
	if t.MinimumRatio, err = attrs.float(AttrMinimumRatio); err != nil {
		return err
	}
	if t.MinimumSeedTime, err = attrs.seconds(AttrMinimumSeedTime); err != nil {
		return err
	}
	return nil
}

// publishDate prefers the date the feed parser understood and falls back to a fuzzy parse.
func publishDate(item *rss.Item) *time.Time {
	if item.PubDateParsed != nil {
		return item.PubDateParsed
	}
	if item.PubDate == "" {
		return nil
	}
	dt, _, err := fuzzytime.USContext.Extract(item.PubDate)
	if err != nil {
		return nil
	}
	iso := dt.ISOFormat()
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"} {
		if ts, err := time.Parse(layout, iso); err == nil {
			return &ts
		}
	}
	return nil
}
