package server

import (
	"fmt"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/sp0x/torznab-client/config"
	"github.com/sp0x/torznab-client/indexer"
	"github.com/sp0x/torznab-client/indexer/cache"
	"github.com/sp0x/torznab-client/storage"
)

// Server republishes configured torznab indexers over http.
type Server struct {
	config  config.Config
	scope   indexer.Scope
	storage storage.ItemStorage
	Port    int
	Params  Params

	statusCache *cache.CacheWithTTL
}

type Params struct {
	PathPrefix string
	APIKey     []byte
	Passphrase string
	Version    string
}

// NewServer creates a server for the indexers in scope. Torrents found through it are
// recorded in store, which may be nil.
func NewServer(conf config.Config, scope indexer.Scope, store storage.ItemStorage) *Server {
	s := &Server{
		config:  conf,
		scope:   scope,
		storage: store,
		Port:    conf.GetInt("port"),
	}
	s.statusCache, _ = cache.NewTTL(10, 3*time.Minute)
	s.Params.APIKey = conf.GetBytes("api_key")
	s.Params.Passphrase = conf.GetString("passphrase")
	if len(s.Params.APIKey) == 0 && s.Params.Passphrase == "" {
		s.Params.APIKey = randomKey()
		log.Warnf("No api_key configured, using a generated one: %s", s.Params.APIKey)
	}
	return s
}

// Handler returns the router serving every endpoint.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	s.setupRoutes(r)
	return r
}

// Listen serves on the configured port until the listener fails.
func (s *Server) Listen() error {
	r := gin.Default()
	s.setupRoutes(r)
	log.Infof("Listening on :%d", s.Port)
	return r.Run(fmt.Sprintf(":%d", s.Port))
}

func (s *Server) setupRoutes(r *gin.Engine) {
	r.GET("/health", s.HealthCheck)
	r.GET("/status", s.Status)
	r.GET("/metrics", gin.WrapH(metricsHandler()))

	torznab := r.Group("torznab")
	{
		torznab.GET("/", s.torznabHandler)
		torznab.GET("/:indexer", s.torznabHandler)
		torznab.GET("/:indexer/api", s.torznabHandler)
	}
	r.GET("/rss/:indexer", s.rssHandler)
	r.GET("/d/:token/:filename", s.downloadHandler)
	r.GET("t/all/status", s.aggregatesStatus)
}

func (s *Server) baseURL(r *http.Request, appendPath string) (*url.URL, error) {
	proto := "http"
	if r.TLS != nil {
		proto = "https"
	}
	return &url.URL{
		Scheme: proto,
		Host:   r.Host,
		Path:   path.Join("/", s.Params.PathPrefix, appendPath),
	}, nil
}
