package torznab

import (
	"math"
	"strconv"
	"time"

	"github.com/mmcdole/gofeed/rss"
)

// Namespace is the extension namespace torznab attributes are published under.
const Namespace = "torznab"

const attrElement = "attr"

const maxSeconds = uint64(math.MaxInt64 / int64(time.Second))

// Attribute names read from the torznab namespace.
// "minimumrato" is spelled the way indexers emit it.
const (
	AttrSeeders         = "seeders"
	AttrPeers           = "peers"
	AttrMinimumRatio    = "minimumrato"
	AttrMinimumSeedTime = "minimumseedtime"
)

// attributes is the name/value view of an item's torznab:attr records.
// The first record carrying a name wins.
type attributes struct {
	values map[string]string
}

// torznabAttributes returns nil when the item has no torznab namespace at all.
// A namespace without attr records yields an empty view, which fails every lookup.
func torznabAttributes(item *rss.Item) *attributes {
	ns, ok := item.Extensions[Namespace]
	if !ok {
		return nil
	}
	records := ns[attrElement]
	if len(records) == 0 {
		return &attributes{}
	}
	attrs := &attributes{values: make(map[string]string, len(records))}
	for _, record := range records {
		name, hasName := record.Attrs["name"]
		value, hasValue := record.Attrs["value"]
		if !hasName || !hasValue {
			continue
		}
		if _, seen := attrs.values[name]; !seen {
			attrs.values[name] = value
		}
	}
	return attrs
}

func (a *attributes) lookup(key string) (string, bool, error) {
	if a.values == nil {
		return "", false, &EmptyExtensionError{Key: key}
	}
	v, ok := a.values[key]
	return v, ok, nil
}

func (a *attributes) uint32(key string) (*uint32, error) {
	raw, ok, err := a.lookup(key)
	if err != nil || !ok {
		return nil, err
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, &ParseError{Field: key, Value: raw, Err: err}
	}
	v := uint32(n)
	return &v, nil
}

func (a *attributes) float(key string) (*float64, error) {
	raw, ok, err := a.lookup(key)
	if err != nil || !ok {
		return nil, err
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &ParseError{Field: key, Value: raw, Err: err}
	}
	return &f, nil
}

func (a *attributes) seconds(key string) (*time.Duration, error) {
	raw, ok, err := a.lookup(key)
	if err != nil || !ok {
		return nil, err
	}
	secs, err := strconv.ParseUint(raw, 10, 64)
	if err == nil && secs > maxSeconds {
		err = &strconv.NumError{Func: "ParseUint", Num: raw, Err: strconv.ErrRange}
	}
	if err != nil {
		return nil, &ParseError{Field: key, Value: raw, Err: err}
	}
	d := time.Duration(secs) * time.Second
	return &d, nil
}
