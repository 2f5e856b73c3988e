package release

import (
	"fmt"

	"github.com/sp0x/mediareleaseinfo"
)

// SeriesParser only accepts episode releases, as recognized by mediareleaseinfo.
type SeriesParser struct{}

func (p *SeriesParser) Parse(name string) (*Info, error) {
	info, err := releaseinfo.Parse(name)
	if err != nil {
		return nil, fmt.Errorf("couldn't parse series release %q: %w", name, err)
	}
	if info == nil || info.SeriesTitleInfo.TitleWithoutYear == "" {
		return nil, ErrNoTitle
	}
	return &Info{Title: info.SeriesTitleInfo.TitleWithoutYear}, nil
}
