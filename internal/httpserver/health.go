package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"intent-pipeline/pkg/response"
)

// Health response constants (single source for version and service identity).
const (
	HealthMessage = "Intent pipeline is up"
	HealthVersion = "1.0.0"
	ServiceName   = "intent-pipeline"

	readyTimeout = 3 * time.Second
)

// healthCheck handles health check requests
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "healthy",
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	})
}

// readyCheck probes every configured dependency; any failure answers 503.
func (srv HTTPServer) readyCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()

	checks := gin.H{}
	ready := true
	for name, check := range srv.ready {
		if err := check(ctx); err != nil {
			srv.l.Warnf(ctx, "internal.httpserver.readyCheck: %s: %v", name, err)
			checks[name] = err.Error()
			ready = false
			continue
		}
		checks[name] = "ok"
	}

	body := gin.H{
		"status":  "ready",
		"checks":  checks,
		"version": HealthVersion,
		"service": ServiceName,
	}
	if !ready {
		body["status"] = "not_ready"
		c.JSON(http.StatusServiceUnavailable, response.Resp{
			ErrorCode: http.StatusServiceUnavailable,
			Message:   "not ready",
			Data:      body,
		})
		return
	}
	response.OK(c, body)
}

// liveCheck handles liveness check requests
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	})
}

// metrics serves the routing counters.
func (srv HTTPServer) metrics(c *gin.Context) {
	if srv.stats == nil {
		response.OK(c, gin.H{})
		return
	}
	response.OK(c, srv.stats.Snapshot())
}
