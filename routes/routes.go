package routes

import (
	"concierge/handlers"

	"github.com/gin-gonic/gin"
)

// HandlerBundle collects the handlers the router needs.
type HandlerBundle struct {
	Chat      *handlers.ChatHandler
	Documents *handlers.DocumentHandler
	Bookings  *handlers.BookingLogHandler
	Health    *handlers.HealthHandler
}

// RegisterRoutes wires every endpoint onto the router.
func RegisterRoutes(r *gin.Engine, h *HandlerBundle) {
	api := r.Group("/api")
	{
		api.POST("/chat", h.Chat.Chat)
		api.POST("/chat/:conversationID/cancel", h.Chat.CancelBooking)

		api.POST("/documents", h.Documents.Upload)
		api.GET("/documents", h.Documents.List)

		api.GET("/bookings", h.Bookings.List)
		api.GET("/health", h.Health.Health)
	}
}
