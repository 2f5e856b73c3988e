package torznab

import (
	"encoding/xml"
	"io"
	"net/http"
	"strings"

	"github.com/sp0x/torznab-client/indexer/categories"
)

// Capabilities is the answer to a t=caps request.
type Capabilities struct {
	XMLName    xml.Name       `xml:"caps"`
	Server     CapsServer     `xml:"server"`
	Limits     CapsLimits     `xml:"limits"`
	Searching  []SearchMode   `xml:"-"`
	Categories []CapsCategory `xml:"categories>category"`
}

type CapsServer struct {
	Version   string `xml:"version,attr,omitempty"`
	Title     string `xml:"title,attr,omitempty"`
	Strapline string `xml:"strapline,attr,omitempty"`
	URL       string `xml:"url,attr,omitempty"`
}

type CapsLimits struct {
	Max     int `xml:"max,attr,omitempty"`
	Default int `xml:"default,attr,omitempty"`
}

// SearchMode is one of the search functions an indexer may support, e.g. tv-search.
type SearchMode struct {
	Key             string
	Available       bool
	SupportedParams []string
}

type CapsCategory struct {
	ID      uint32       `xml:"id,attr"`
	Name    string       `xml:"name,attr"`
	Subcats []CapsSubcat `xml:"subcat"`
}

type CapsSubcat struct {
	ID   uint32 `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

type searchModeView struct {
	XMLName         xml.Name
	Available       string `xml:"available,attr"`
	SupportedParams string `xml:"supportedParams,attr,omitempty"`
}

type capsView struct {
	XMLName    xml.Name         `xml:"caps"`
	Server     CapsServer       `xml:"server"`
	Limits     CapsLimits       `xml:"limits"`
	Searching  []searchModeView `xml:"searching>any"`
	Categories []CapsCategory   `xml:"categories>category"`
}

func (c Capabilities) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	view := capsView{
		Server:     c.Server,
		Limits:     c.Limits,
		Categories: c.Categories,
	}
	for _, mode := range c.Searching {
		available := "no"
		if mode.Available {
			available = "yes"
		}
		view.Searching = append(view.Searching, searchModeView{
			XMLName:         xml.Name{Local: mode.Key},
			Available:       available,
			SupportedParams: strings.Join(mode.SupportedParams, ","),
		})
	}
	return e.Encode(view)
}

func (c *Capabilities) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	view := struct {
		Server    CapsServer `xml:"server"`
		Limits    CapsLimits `xml:"limits"`
		Searching struct {
			Modes []searchModeView `xml:",any"`
		} `xml:"searching"`
		Categories []CapsCategory `xml:"categories>category"`
	}{}
	if err := d.DecodeElement(&view, &start); err != nil {
		return err
	}
	c.XMLName = start.Name
	c.Server = view.Server
	c.Limits = view.Limits
	c.Categories = view.Categories
	c.Searching = nil
	for _, m := range view.Searching.Modes {
		mode := SearchMode{
			Key:       m.XMLName.Local,
			Available: m.Available == "yes",
		}
		if m.SupportedParams != "" {
			mode.SupportedParams = strings.Split(m.SupportedParams, ",")
		}
		c.Searching = append(c.Searching, mode)
	}
	return nil
}

// ParseCapabilities decodes a caps document.
func ParseCapabilities(r io.Reader) (*Capabilities, error) {
	caps := &Capabilities{}
	if err := xml.NewDecoder(r).Decode(caps); err != nil {
		return nil, err
	}
	return caps, nil
}

// Mode returns the search mode with the given key, e.g. "tv-search".
func (c *Capabilities) Mode(key string) (SearchMode, bool) {
	for _, m := range c.Searching {
		if m.Key == key {
			return m, true
		}
	}
	return SearchMode{}, false
}

// HasCategory reports whether the code is advertised, either as a category or a subcategory.
func (c *Capabilities) HasCategory(code uint32) bool {
	for _, cat := range c.Categories {
		if cat.ID == code {
			return true
		}
		for _, sub := range cat.Subcats {
			if sub.ID == code {
				return true
			}
		}
	}
	return false
}

// DefaultCapabilities advertises every standard category and all search modes.
func DefaultCapabilities(title string) *Capabilities {
	caps := &Capabilities{
		Server: CapsServer{Version: "1.0", Title: title},
		Limits: CapsLimits{Max: 100, Default: 100},
		Searching: []SearchMode{
			{Key: "search", Available: true, SupportedParams: []string{"q"}},
			{Key: "tv-search", Available: true, SupportedParams: []string{"q", "season", "ep", "tvdbid", "rid"}},
			{Key: "movie-search", Available: true, SupportedParams: []string{"q", "imdbid"}},
			{Key: "music-search", Available: true, SupportedParams: []string{"q"}},
		},
	}
	for _, cat := range categories.All() {
		if cat.Family() != cat || cat.Code() == categories.Reserved.Code() {
			continue
		}
		cc := CapsCategory{ID: cat.Code(), Name: cat.Name}
		for _, sub := range categories.Subcategories(cat) {
			cc.Subcats = append(cc.Subcats, CapsSubcat{ID: sub.Code(), Name: sub.Name})
		}
		caps.Categories = append(caps.Categories, cc)
	}
	return caps
}

// ServeHTTP writes the capabilities as xml.
func (c *Capabilities) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	x, err := xml.MarshalIndent(c, "", "  ")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(x)
}
