package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"intent-pipeline/internal/pipeline"
	"intent-pipeline/pkg/response"
)

var (
	errSessionIDRequired = errors.New("session_id is required")
	errInvalidBody       = errors.New("invalid request body")
)

// mapError translates registry errors into HTTP responses.
func (h *handler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pipeline.ErrSessionNotFound):
		response.NotFound(c, err)
	case errors.Is(err, pipeline.ErrRateLimited):
		response.TooManyRequests(c, err)
	case errors.Is(err, pipeline.ErrEmptyText):
		response.ErrorWithStatus(c, http.StatusBadRequest, err)
	default:
		h.l.Errorf(c.Request.Context(), "internal.pipeline.delivery.http.mapError: unexpected error: %v", err)
		response.InternalError(c, err)
	}
}
