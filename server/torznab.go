package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/sp0x/torznab-client/indexer"
	"github.com/sp0x/torznab-client/torznab"
)

func (s *Server) aggregatesStatus(c *gin.Context) {
	aggregate, err := s.scope.CreateAggregate(s.config)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	statusObj := struct {
		ActiveIndexers []string `json:"latest"`
	}{}
	for _, ixr := range aggregate.Indexers {
		statusObj.ActiveIndexers = append(statusObj.ActiveIndexers, ixr.Name())
	}
	c.JSON(http.StatusOK, statusObj)
}

// searchType maps the search functions clients use to the ones indexers answer.
var searchType = map[string]string{
	torznab.TypeSearch:      torznab.TypeSearch,
	torznab.TypeTVSearch:    torznab.TypeTVSearch,
	"tv-search":             torznab.TypeTVSearch,
	torznab.TypeMovieSearch: torznab.TypeMovieSearch,
	"movie-search":          torznab.TypeMovieSearch,
	"moviesearch":           torznab.TypeMovieSearch,
	torznab.TypeMusicSearch: torznab.TypeMusicSearch,
}

func (s *Server) torznabHandler(c *gin.Context) {
	indexerID := c.Param("indexer")
	if indexerID == "" {
		indexerID = indexer.AggregateKey
	}
	// Type of operation
	t := c.Query("t")
	ixr, err := s.scope.Lookup(s.config, indexerID)
	if err != nil {
		torznab.Error(c, err.Error(), torznab.ErrIncorrectParameter)
		return
	}
	if t == torznab.TypeCaps {
		s.capabilities(c, ixr)
		return
	}

	apiKey := c.Query("apikey")
	if !s.checkAPIKey(apiKey) {
		torznab.Error(c, "Invalid apikey parameter", torznab.ErrInsufficientPrivs)
		return
	}

	if t == "" {
		http.Redirect(c.Writer, c.Request, c.Request.URL.Path+"?t=caps", http.StatusTemporaryRedirect)
		return
	}

	if _, ok := searchType[t]; !ok {
		torznab.Error(c, "Unknown type parameter", torznab.ErrIncorrectParameter)
		return
	}
	query, err := torznab.ParseQuery(c.Request.URL.Query())
	if err != nil {
		torznab.Error(c, err.Error(), torznab.ErrIncorrectParameter)
		return
	}
	query.Type = searchType[t]
	// The key we were given is ours, never the indexer's.
	query.APIKey = ""

	feed, err := s.torznabSearch(c, ixr, indexerID, query)
	if err != nil {
		var ixrErr *torznab.IndexerError
		if errors.As(err, &ixrErr) {
			torznab.Error(c, ixrErr.Description, ixrErr)
			return
		}
		torznab.Error(c, err.Error(), torznab.ErrUnknownError)
		return
	}
	switch c.Query("format") {
	case "atom":
		atomOutput(c, feed)
	case "", "xml":
		xmlOutput(c, feed)
	case "json":
		jsonOutput(c.Writer, feed)
	default:
		torznab.Error(c, "Unknown format parameter", torznab.ErrIncorrectParameter)
	}
}

func (s *Server) capabilities(c *gin.Context, ixr indexer.Indexer) {
	caps, err := ixr.Capabilities(c.Request.Context())
	if err != nil {
		log.WithFields(log.Fields{"indexer": ixr.Name()}).Warnf("Couldn't get capabilities: %s", err)
		torznab.Error(c, err.Error(), torznab.ErrUnknownError)
		return
	}
	caps.ServeHTTP(c.Writer, c.Request)
}

func (s *Server) torznabSearch(c *gin.Context, ixr indexer.Indexer, indexerID string, query *torznab.Query) (*torznab.ResultFeed, error) {
	results, err := ixr.Query(c.Request.Context(), query)
	if err != nil {
		return nil, err
	}
	for _, failed := range results.Failed() {
		log.WithFields(log.Fields{"indexer": failed.Indexer}).Warnf("Skipping item: %s", failed.Err)
	}
	s.remember(results)

	link, err := s.baseURL(c.Request, c.Request.URL.Path)
	if err != nil {
		return nil, err
	}
	return &torznab.ResultFeed{
		Info: torznab.Info{
			ID:       indexerID,
			Title:    ixr.Name(),
			Link:     link.String(),
			Language: "en-us",
			Category: query.Type,
		},
		Torrents: s.proxied(c, indexerID, results),
	}, nil
}

// remember records every torrent that was found, so it shows up in rss feeds and status.
func (s *Server) remember(results torznab.Results) {
	if s.storage == nil {
		return
	}
	for _, r := range results {
		if !r.OK() {
			continue
		}
		if _, _, err := s.storage.Add(r.Indexer, r.Torrent); err != nil {
			log.WithFields(log.Fields{"indexer": r.Indexer}).Warnf("Couldn't store torrent: %s", err)
		}
	}
}
