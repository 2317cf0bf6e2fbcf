package http

import (
	"github.com/gin-gonic/gin"

	"memory-agent/internal/chat"
	"memory-agent/pkg/log"
)

// Handler is the HTTP delivery of the chat domain.
type Handler interface {
	Chat(c *gin.Context)
	ClearMemories(c *gin.Context)
	History(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc chat.UseCase
}

// New creates a new HTTP handler for the chat domain.
func New(l log.Logger, uc chat.UseCase) Handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
