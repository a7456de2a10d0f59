package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	"intent-pipeline/internal/middleware"
	"intent-pipeline/internal/model"
	conversationHTTP "intent-pipeline/internal/pipeline/delivery/http"
)

func (srv HTTPServer) mapHandlers() {
	mw := middleware.New(srv.l)
	srv.registerMiddlewares(mw)
	srv.registerSystemRoutes()
	srv.registerDomainRoutes()
}

func (srv HTTPServer) registerMiddlewares(mw middleware.Middleware) {
	srv.gin.Use(gin.Recovery(), mw.RequestID(), mw.AccessLog())

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "HTTP mode: production")
	} else {
		srv.l.Infof(ctx, "HTTP mode: %s", srv.environment)
	}
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)
	srv.gin.GET("/metrics", srv.metrics)
}

// registerDomainRoutes registers all domain routes.
func (srv HTTPServer) registerDomainRoutes() {
	ctx := context.Background()

	if srv.conversationHandler == nil {
		srv.l.Infof(ctx, "Conversation handler not configured, skipping conversation routes")
		return
	}
	conversationHTTP.RegisterRoutes(srv.gin.Group("/api/v1"), srv.conversationHandler)
	srv.l.Infof(ctx, "Conversation routes registered at /api/v1/conversations")
}
