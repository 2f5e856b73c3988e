package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sp0x/torznab-client/storage"
)

type latestResult struct {
	Indexer   string    `json:"indexer"`
	Name      string    `json:"name"`
	Link      string    `json:"link"`
	Size      uint64    `json:"size"`
	Seeders   *uint32   `json:"seeders,omitempty"`
	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
}

type statusResponse struct {
	Latest  []latestResult `json:"latest"`
	Stored  int64          `json:"stored"`
	Indexes []string       `json:"indexes"`
}

// newLatestResult reports a stored torrent, its link going through the download handler.
func (s *Server) newLatestResult(req *http.Request, r *storage.Record) latestResult {
	var link string
	if t := s.proxy(req, r.Indexer, r.Torrent()); t != nil {
		link = t.Link
	}
	return latestResult{
		Indexer:   r.Indexer,
		Name:      r.Name,
		Link:      link,
		Size:      r.Size,
		Seeders:   r.Seeders,
		FirstSeen: r.FirstSeen,
		LastSeen:  r.LastSeen,
	}
}

// Status shows the torrents found most recently and the configured indexers.
func (s *Server) Status(c *gin.Context) {
	var statusObj statusResponse
	// If we don't have it in the cache
	if cached, ok := s.statusCache.Get("status"); ok {
		statusObj = cached.(statusResponse)
	} else if s.storage != nil {
		records, err := s.storage.Latest(20)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		for _, r := range records {
			statusObj.Latest = append(statusObj.Latest, s.newLatestResult(c.Request, r))
		}
		if statusObj.Stored, err = s.storage.Count(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		s.statusCache.Add("status", statusObj)
	}
	statusObj.Indexes = s.config.GetSites()
	c.JSON(http.StatusOK, statusObj)
}
