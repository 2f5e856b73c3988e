package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/sp0x/torznab-client/indexer"
	"github.com/sp0x/torznab-client/torznab"
)

// downloadHandler streams the file a signed token points to, fetched with the indexer's own credentials.
func (s *Server) downloadHandler(c *gin.Context) {
	filename := c.Param("filename")
	t, err := decodeToken(c.Param("token"), s.sharedKey())
	if err != nil {
		c.String(http.StatusUnauthorized, "invalid download token")
		return
	}
	if t.Link == "" {
		c.String(http.StatusNotFound, "Indexer link not found")
		return
	}
	ixr, err := s.scope.Lookup(s.config, t.IndexName)
	if err != nil {
		c.String(http.StatusNotFound, err.Error())
		return
	}
	log.WithFields(log.Fields{"indexer": t.IndexName, "filename": filename}).Debugf("Processing download via handler")
	body, err := indexer.Download(c.Request.Context(), ixr, t.Link)
	if errors.Is(err, indexer.ErrNoDownloads) {
		c.String(http.StatusNotImplemented, err.Error())
		return
	}
	if err != nil {
		log.WithFields(log.Fields{"indexer": t.IndexName}).Warnf("Download failed: %s", err)
		c.String(http.StatusBadGateway, err.Error())
		return
	}
	defer body.Close()
	c.DataFromReader(http.StatusOK, -1, "application/x-bittorrent", body, map[string]string{
		"Content-Disposition":       fmt.Sprintf("attachment; filename=%q", filename),
		"Content-Transfer-Encoding": "binary",
	})
}

// proxied copies the torrents of results so their download links go through the download handler.
// Magnet links carry no credentials and are kept.
func (s *Server) proxied(c *gin.Context, fallbackIndexer string, results torznab.Results) []*torznab.Torrent {
	var out []*torznab.Torrent
	for _, r := range results {
		if !r.OK() {
			continue
		}
		name := r.Indexer
		if name == "" {
			name = fallbackIndexer
		}
		if t := s.proxy(c.Request, name, r.Torrent); t != nil {
			out = append(out, t)
		}
	}
	return out
}

func (s *Server) proxy(r *http.Request, indexerName string, t *torznab.Torrent) *torznab.Torrent {
	if !strings.HasPrefix(t.Link, "http://") && !strings.HasPrefix(t.Link, "https://") {
		return t
	}
	tkn := &token{IndexName: indexerName, Link: t.Link}
	signed, err := tkn.Encode(s.sharedKey())
	if err != nil {
		log.WithFields(log.Fields{"indexer": indexerName}).Warnf("Couldn't sign download link: %s", err)
		return nil
	}
	filename := strings.NewReplacer("/", "_", "\\", "_").Replace(t.Name) + ".torrent"
	link, err := s.baseURL(r, "d/"+signed+"/"+filename)
	if err != nil {
		return nil
	}
	out := *t
	out.Link = link.String()
	if out.GUID == t.Link {
		out.GUID = out.Link
	}
	return &out
}
