package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/sp0x/torznab-client/indexer"
	"github.com/sp0x/torznab-client/indexer/categories"
	"github.com/sp0x/torznab-client/torznab"
)

const defaultFeedLength = 100

// rssHandler publishes an rss feed for an indexer. With a q parameter the indexer is searched,
// which needs the api key, otherwise the feed holds the torrents found on it most recently.
func (s *Server) rssHandler(c *gin.Context) {
	indexerID := c.Param("indexer")
	ixr, err := s.scope.Lookup(s.config, indexerID)
	if err != nil {
		c.String(http.StatusNotFound, err.Error())
		return
	}
	info := torznab.Info{ID: indexerID, Title: ixr.Name()}
	if link, err := s.baseURL(c.Request, c.Request.URL.Path); err == nil {
		info.Link = link.String()
	}

	if q, ok := c.GetQuery("q"); ok {
		if !s.checkAPIKey(c.Query("apikey")) {
			c.String(http.StatusUnauthorized, "invalid apikey parameter")
			return
		}
		s.searchAndServe(c, ixr, info, q)
		return
	}
	limit := defaultFeedLength
	if raw := c.Query("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil || limit <= 0 {
			c.String(http.StatusBadRequest, "invalid limit %q", raw)
			return
		}
	}
	if s.storage == nil {
		rssOutput(c, info, nil)
		return
	}
	records, err := s.storage.Latest(limit)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	var torrents []*torznab.Torrent
	for _, r := range records {
		if indexerID != indexer.AggregateKey && r.Indexer != indexerID {
			continue
		}
		if t := s.proxy(c.Request, r.Indexer, r.Torrent()); t != nil {
			torrents = append(torrents, t)
		}
	}
	rssOutput(c, info, torrents)
}

func (s *Server) searchAndServe(c *gin.Context, ixr indexer.Indexer, info torznab.Info, q string) {
	query := torznab.NewQuery(q)
	for _, raw := range c.QueryArray("cat") {
		cat, err := categories.Parse(raw)
		if err != nil {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
		query.AddCategory(cat)
	}
	results, err := ixr.Query(c.Request.Context(), query)
	if err != nil {
		log.WithFields(log.Fields{"indexer": info.ID}).Warningf("Error while searching for torrent: %s . %s", q, err)
		c.String(http.StatusBadGateway, err.Error())
		return
	}
	s.remember(results)
	info.Description = results.Summary()
	rssOutput(c, info, s.proxied(c, info.ID, results))
}
