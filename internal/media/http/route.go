package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	// === Public Routes ===
	photos := g.Group("/photos")
	photos.GET("/:id", h.ServePhoto)
	photos.GET("/:id/thumbnail", h.ServeThumbnail)

	g.GET("/resources/:id/photos", h.ListByOffice)

	// === Admin Routes ===
	g.POST("/resources/:id/photos", authMiddleware, adminMiddleware, h.Upload)
	photos.DELETE("/:id", authMiddleware, adminMiddleware, h.Delete)
}
