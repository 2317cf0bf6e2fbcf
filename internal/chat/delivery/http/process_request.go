package http

import (
	"errors"

	"github.com/gin-gonic/gin"
)

var errInvalidBody = errors.New("invalid request body")

func (h *handler) processChatReq(c *gin.Context) (chatReq, error) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "processChatReq: bind: %v", err)
		return req, errInvalidBody
	}
	return req, req.validate()
}

func (h *handler) processClearReq(c *gin.Context) (clearReq, error) {
	var req clearReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "processClearReq: bind: %v", err)
		return req, errInvalidBody
	}
	return req, req.validate()
}

func (h *handler) processHistoryReq(c *gin.Context) (historyReq, error) {
	var req historyReq
	if err := c.ShouldBindQuery(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "processHistoryReq: bind: %v", err)
		return req, errInvalidBody
	}
	return req, req.validate()
}
