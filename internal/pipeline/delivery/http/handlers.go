package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"intent-pipeline/internal/conversation/repository"
	"intent-pipeline/internal/pipeline"
	"intent-pipeline/pkg/response"
)

// Create starts a conversation, reusing the given session_id when it is live.
func (h *handler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processCreateReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	id := h.sessions.Create(ctx, req.SessionID)
	response.OK(c, createResp{SessionID: id})
}

// Message runs one utterance through the session pipeline.
func (h *handler) Message(c *gin.Context) {
	ctx := c.Request.Context()

	id, req, err := h.processMessageReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	out, err := h.sessions.Handle(ctx, id, req.Text)
	if err != nil {
		h.l.Warnf(ctx, "internal.pipeline.delivery.http.Message: sessions.Handle: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, newMessageResp(out))
}

// Detail returns the context snapshot of a live session.
func (h *handler) Detail(c *gin.Context) {
	id := c.Param("session_id")
	if id == "" {
		response.Error(c, errSessionIDRequired, nil)
		return
	}

	snap, err := h.sessions.Snapshot(id)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.OK(c, detailResp{SessionID: id, Context: snap})
}

// Summary returns the aggregate of a live session.
func (h *handler) Summary(c *gin.Context) {
	id := c.Param("session_id")
	if id == "" {
		response.Error(c, errSessionIDRequired, nil)
		return
	}

	sum, err := h.sessions.Summary(id)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.OK(c, sum)
}

// History pages the turns of a session. Live sessions answer from memory,
// ended ones from the archive when it is configured.
func (h *handler) History(c *gin.Context) {
	ctx := c.Request.Context()

	id, req, err := h.processHistoryReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	turns, err := h.sessions.History(id)
	if err == nil {
		response.OK(c, newHistoryResp(id, historySourceLive, page(turns, req), req))
		return
	}
	if !errors.Is(err, pipeline.ErrSessionNotFound) || h.archive == nil {
		h.mapError(c, err)
		return
	}

	turns, err = h.archive.ListTurns(ctx, repository.ListTurnsOptions{
		SessionID: id,
		Limit:     req.Limit,
		Offset:    req.Offset,
	})
	if err != nil {
		h.l.Errorf(ctx, "internal.pipeline.delivery.http.History: archive.ListTurns: %v", err)
		response.InternalError(c, err)
		return
	}
	if len(turns) == 0 && req.Offset == 0 {
		h.mapError(c, pipeline.ErrSessionNotFound)
		return
	}

	response.OK(c, newHistoryResp(id, historySourceArchive, turns, req))
}

// End closes a session and hands its final context to the archive.
func (h *handler) End(c *gin.Context) {
	ctx := c.Request.Context()

	id := c.Param("session_id")
	if id == "" {
		response.Error(c, errSessionIDRequired, nil)
		return
	}

	if err := h.sessions.End(ctx, id); err != nil {
		h.mapError(c, err)
		return
	}

	response.OK(c, nil)
}
