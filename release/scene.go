package release

import (
	"strings"

	"github.com/moistari/rls"
)

// SceneParser parses movie, tv and music releases using rls.
type SceneParser struct{}

func (p *SceneParser) Parse(name string) (*Info, error) {
	r := rls.ParseString(name)
	if strings.TrimSpace(r.Title) == "" {
		return nil, ErrNoTitle
	}
	return &Info{
		Title:      r.Title,
		Year:       r.Year,
		Season:     r.Series,
		Episode:    r.Episode,
		Resolution: r.Resolution,
		Group:      r.Group,
	}, nil
}
