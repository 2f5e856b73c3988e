// Package release parses scene-style release names into structured metadata.
package release

import (
	"errors"
	"fmt"
	"strings"
)

// Info is the metadata extracted from a release name.
type Info struct {
	Title      string
	Year       int
	Season     int
	Episode    int
	Resolution string
	Group      string
}

// Parser turns a release name into Info, or rejects it.
type Parser interface {
	Parse(name string) (*Info, error)
}

// ErrNoTitle is returned when no title could be recognized in a release name.
var ErrNoTitle = errors.New("no title found in release name")

const (
	KindScene  = "scene"
	KindSeries = "series"
)

// FromName returns the parser registered under the given kind.
func FromName(kind string) (Parser, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindScene:
		return &SceneParser{}, nil
	case KindSeries:
		return &SeriesParser{}, nil
	}
	return nil, fmt.Errorf("unknown release parser %q", kind)
}
