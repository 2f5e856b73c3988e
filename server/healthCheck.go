package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type indexHealthCheckResponse struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// HealthCheck asks every configured indexer for its capabilities.
func (s *Server) HealthCheck(c *gin.Context) {
	aggregate, err := s.scope.CreateAggregate(s.config)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	failed := map[string]bool{}
	for _, name := range aggregate.Check(c.Request.Context()) {
		failed[name] = true
	}
	output := make(map[string]indexHealthCheckResponse)
	status := http.StatusOK
	for _, ixr := range aggregate.Indexers {
		resp := indexHealthCheckResponse{Ok: !failed[ixr.Name()]}
		if !resp.Ok {
			resp.Error = "capabilities request failed"
			status = http.StatusServiceUnavailable
		}
		output[ixr.Name()] = resp
	}
	c.JSON(status, output)
}
