package http

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the chat endpoints on r.
func RegisterRoutes(r gin.IRoutes, h Handler) {
	r.POST("/chat", h.Chat)
	r.POST("/clear_memories", h.ClearMemories)
	r.GET("/history", h.History)
}
