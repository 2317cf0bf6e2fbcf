package http

import (
	"github.com/gin-gonic/gin"

	"memory-agent/internal/chat"
	"memory-agent/internal/model"
	"memory-agent/pkg/response"
)

// Chat godoc
// @Summary     Send a message
// @Description Answers one user message, retrieving long-term memories when they help.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       body body chatReq true "Message"
// @Success     200  {object} chatResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     429  {object} response.Resp "Too Many Requests"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /chat [POST]
func (h *handler) Chat(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processChatReq(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	output, err := h.uc.HandleTurn(ctx, model.Scope{UserID: req.UserID}, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.HandleTurn: %v", err)
		h.writeError(c, err)
		return
	}

	response.OK(c, h.newChatResp(output))
}

// ClearMemories godoc
// @Summary     Clear a user's memories
// @Description Permanently deletes every stored turn of the user.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       body body clearReq true "User"
// @Success     200  {object} clearResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /clear_memories [POST]
func (h *handler) ClearMemories(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processClearReq(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if err := h.uc.ClearUserMemory(ctx, model.Scope{UserID: req.UserID}); err != nil {
		h.l.Errorf(ctx, "uc.ClearUserMemory: %v", err)
		h.writeError(c, err)
		return
	}

	response.OK(c, clearResp{Success: true})
}

// History godoc
// @Summary     Browse conversation history
// @Description Returns the user's most recent turns, oldest first.
// @Tags        Chat
// @Produce     json
// @Param       user_id query string true  "User ID"
// @Param       limit   query int    false "Window size (default: agent.history_limit)"
// @Success     200 {object} historyResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /history [GET]
func (h *handler) History(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processHistoryReq(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	output, err := h.uc.History(ctx, model.Scope{UserID: req.UserID}, chat.HistoryInput{Limit: req.Limit})
	if err != nil {
		h.l.Errorf(ctx, "uc.History: %v", err)
		h.writeError(c, err)
		return
	}

	response.OK(c, h.newHistoryResp(req.UserID, output))
}
