package torznab

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"time"
)

const rfc822 = "Mon, 02 Jan 2006 15:04:05 -0700"

const (
	torznabNamespaceURL = "http://torznab.com/schemas/2015/feed"
	atomNamespaceURL    = "http://www.w3.org/2005/Atom"
)

// Info describes the channel of a republished feed.
type Info struct {
	ID          string
	Title       string
	Description string
	Link        string
	Language    string
	Category    string
}

type torznabAttrView struct {
	XMLName struct{} `xml:"torznab:attr"`
	Name    string   `xml:"name,attr"`
	Value   string   `xml:"value,attr"`
}

// ResultFeed renders torrents back into a torznab rss document.
type ResultFeed struct {
	Info     Info
	Torrents []*Torrent
}

type itemView struct {
	XMLName     struct{}      `xml:"item"`
	Title       string        `xml:"title"`
	GUID        string        `xml:"guid,omitempty"`
	Link        string        `xml:"link"`
	PublishDate string        `xml:"pubDate,omitempty"`
	Size        uint64        `xml:"size"`
	Categories  []uint32      `xml:"category"`
	Enclosure   enclosureView `xml:"enclosure"`
	Attributes  []torznabAttrView
}

type enclosureView struct {
	URL    string `xml:"url,attr"`
	Length uint64 `xml:"length,attr"`
	Type   string `xml:"type,attr"`
}

func newItemView(t *Torrent) itemView {
	view := itemView{
		Title:      t.Name,
		GUID:       t.GUID,
		Link:       t.Link,
		Size:       t.Size,
		Categories: t.Categories,
		Enclosure: enclosureView{
			URL:    t.Link,
			Length: t.Size,
			Type:   "application/x-bittorrent",
		},
	}
	if view.GUID == "" {
		view.GUID = t.Link
	}
	if t.PublishDate != nil {
		view.PublishDate = t.PublishDate.Format(rfc822)
	}
	attr := func(name, value string) {
		view.Attributes = append(view.Attributes, torznabAttrView{Name: name, Value: value})
	}
	for _, c := range t.Categories {
		attr("category", strconv.FormatUint(uint64(c), 10))
	}
	attr("size", strconv.FormatUint(t.Size, 10))
	if t.Seeders != nil {
		attr(AttrSeeders, strconv.FormatUint(uint64(*t.Seeders), 10))
		if t.Leechers != nil {
			attr(AttrPeers, strconv.FormatUint(uint64(*t.Seeders)+uint64(*t.Leechers), 10))
		}
	}
	if t.MinimumRatio != nil {
		attr(AttrMinimumRatio, strconv.FormatFloat(*t.MinimumRatio, 'f', -1, 64))
	}
	if t.MinimumSeedTime != nil {
		attr(AttrMinimumSeedTime, fmt.Sprint(int64(*t.MinimumSeedTime/time.Second)))
	}
	return view
}

func (rf ResultFeed) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	items := make([]itemView, 0, len(rf.Torrents))
	for _, t := range rf.Torrents {
		items = append(items, newItemView(t))
	}
	channelView := struct {
		XMLName     struct{} `xml:"channel"`
		Title       string   `xml:"title,omitempty"`
		Description string   `xml:"description,omitempty"`
		Link        string   `xml:"link,omitempty"`
		Language    string   `xml:"language,omitempty"`
		Category    string   `xml:"category,omitempty"`
		Items       []itemView
	}{
		Title:       rf.Info.Title,
		Description: rf.Info.Description,
		Link:        rf.Info.Link,
		Language:    rf.Info.Language,
		Category:    rf.Info.Category,
		Items:       items,
	}

	return e.Encode(struct {
		XMLName          struct{}    `xml:"rss"`
		TorznabNamespace string      `xml:"xmlns:torznab,attr"`
		AtomNamespace    string      `xml:"xmlns:atom,attr"`
		Version          string      `xml:"version,attr,omitempty"`
		Channel          interface{} `xml:"channel"`
	}{
		Version:          "2.0",
		Channel:          channelView,
		AtomNamespace:    atomNamespaceURL,
		TorznabNamespace: torznabNamespaceURL,
	})
}
