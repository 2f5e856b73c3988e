package server

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/feeds"

	"github.com/sp0x/torznab-client/torznab"
)

func xmlOutput(c *gin.Context, feed *torznab.ResultFeed) {
	x, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		torznab.Error(c, err.Error(), torznab.ErrUnknownError)
		return
	}
	c.Header("Content-Type", "application/rss+xml; charset=UTF-8")
	c.Status(http.StatusOK)
	_, _ = c.Writer.Write([]byte(xml.Header))
	_, _ = c.Writer.Write(x)
}

func newFeed(info torznab.Info, torrents []*torznab.Torrent) *feeds.Feed {
	feed := &feeds.Feed{
		Title:       info.Title,
		Link:        &feeds.Link{Href: info.Link},
		Description: info.Description,
		Created:     time.Now(),
	}
	feed.Items = make([]*feeds.Item, len(torrents))
	for i, torr := range torrents {
		item := &feeds.Item{
			Title:       torr.Name,
			Link:        &feeds.Link{Href: torr.Link},
			Id:          torr.GUID,
			Description: describe(torr),
			Enclosure: &feeds.Enclosure{
				Url:    torr.Link,
				Length: strconv.FormatUint(torr.Size, 10),
				Type:   "application/x-bittorrent",
			},
		}
		if torr.PublishDate != nil {
			item.Created = *torr.PublishDate
		}
		feed.Items[i] = item
	}
	return feed
}

func describe(t *torznab.Torrent) string {
	s := humanize.Bytes(t.Size)
	if t.Seeders != nil {
		s += fmt.Sprintf(", %d seeders", *t.Seeders)
	}
	if t.Leechers != nil {
		s += fmt.Sprintf(", %d leechers", *t.Leechers)
	}
	return s
}

func atomOutput(c *gin.Context, v *torznab.ResultFeed) {
	atom, err := newFeed(v.Info, v.Torrents).ToAtom()
	if err != nil {
		torznab.Error(c, err.Error(), torznab.ErrUnknownError)
		return
	}
	c.Header("Content-Type", "application/atom+xml; charset=UTF-8")
	c.String(http.StatusOK, atom)
}

func rssOutput(c *gin.Context, info torznab.Info, torrents []*torznab.Torrent) {
	rss, err := newFeed(info, torrents).ToRss()
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.Header("Content-Type", "application/rss+xml; charset=UTF-8")
	c.String(http.StatusOK, rss)
}

func jsonOutput(w http.ResponseWriter, v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	_, _ = w.Write(append(b, '\n'))
}
