package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"memory-agent/pkg/log"
)

const HeaderRequestID = "X-Request-ID"

// RequestID propagates X-Request-ID, or a new UUID, as the run id of the request.
func (m Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}

		c.Request = c.Request.WithContext(log.WithRunID(c.Request.Context(), id))
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}
