package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"intent-pipeline/internal/conversation"
	"intent-pipeline/internal/conversation/repository"
	"intent-pipeline/internal/pipeline"
	"intent-pipeline/pkg/log"
)

// Handler is the public interface for the conversation HTTP delivery layer.
type Handler interface {
	Create(c *gin.Context)
	Message(c *gin.Context)
	Detail(c *gin.Context)
	Summary(c *gin.Context)
	History(c *gin.Context)
	End(c *gin.Context)
}

// Sessions is the slice of the session registry the handlers use.
type Sessions interface {
	Create(ctx context.Context, sessionID string) string
	Handle(ctx context.Context, sessionID, text string) (pipeline.Output, error)
	Snapshot(sessionID string) (conversation.Snapshot, error)
	Summary(sessionID string) (conversation.Summary, error)
	History(sessionID string) ([]conversation.Turn, error)
	End(ctx context.Context, sessionID string) error
}

type handler struct {
	l        log.Logger
	sessions Sessions
	archive  repository.TurnRepository
}

// New creates the conversation handler. archive may be nil; history of ended
// sessions is then unavailable.
func New(l log.Logger, sessions Sessions, archive repository.TurnRepository) *handler {
	return &handler{
		l:        l,
		sessions: sessions,
		archive:  archive,
	}
}
