package torznab

import "fmt"

// Result is the outcome of mapping a single feed item.
// Exactly one of Torrent and Err is set.
type Result struct {
	Indexer string
	Torrent *Torrent
	Err     error
}

func (r Result) OK() bool {
	return r.Err == nil
}

// Results keeps the per-item outcomes of a search in feed order.
type Results []Result

// Torrents returns the successfully mapped torrents.
func (rs Results) Torrents() []*Torrent {
	var out []*Torrent
	for _, r := range rs {
		if r.Err == nil {
			out = append(out, r.Torrent)
		}
	}
	return out
}

// Failed returns the rejected items.
func (rs Results) Failed() Results {
	var out Results
	for _, r := range rs {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

// WithIndexer tags every result with the indexer it came from.
func (rs Results) WithIndexer(name string) Results {
	for i := range rs {
		rs[i].Indexer = name
	}
	return rs
}

// Summary reads like "9 of 11 parsed, 2 rejected".
func (rs Results) Summary() string {
	failed := len(rs.Failed())
	return fmt.Sprintf("%d of %d parsed, %d rejected", len(rs)-failed, len(rs), failed)
}
