package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"memory-agent/internal/chat"
	"memory-agent/internal/memory"
	"memory-agent/pkg/response"
)

// writeError maps domain errors to 400 and everything else to 500.
func (h *handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errInvalidBody),
		errors.Is(err, chat.ErrEmptyUserID),
		errors.Is(err, chat.ErrEmptyMessage),
		errors.Is(err, chat.ErrInvalidLimit),
		errors.Is(err, memory.ErrInvalidNamespace):
		response.Error(c, err, nil)
	default:
		response.InternalError(c, err)
	}
}
