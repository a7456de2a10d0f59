package http

import "github.com/gin-gonic/gin"

// RegisterRoutes maps the conversation routes under rg.
func RegisterRoutes(rg *gin.RouterGroup, h Handler) {
	conversations := rg.Group("/conversations")
	{
		conversations.POST("", h.Create)
		conversations.POST("/:session_id/messages", h.Message)
		conversations.GET("/:session_id", h.Detail)
		conversations.GET("/:session_id/summary", h.Summary)
		conversations.GET("/:session_id/history", h.History)
		conversations.DELETE("/:session_id", h.End)
	}
}
