package http

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
)

// processCreateReq binds the optional create body. An empty body asks for a fresh id.
func (h *handler) processCreateReq(c *gin.Context) (createReq, error) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		return req, errInvalidBody
	}
	return req, nil
}

// processMessageReq binds the message body and the session_id URI param.
func (h *handler) processMessageReq(c *gin.Context) (string, messageReq, error) {
	var req messageReq
	id := c.Param("session_id")
	if id == "" {
		return id, req, errSessionIDRequired
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return id, req, errInvalidBody
	}
	return id, req, nil
}

// processHistoryReq binds the paging query of the history route.
func (h *handler) processHistoryReq(c *gin.Context) (string, historyReq, error) {
	var req historyReq
	id := c.Param("session_id")
	if id == "" {
		return id, req, errSessionIDRequired
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		return id, req, errInvalidBody
	}
	return id, req.normalize(), nil
}
