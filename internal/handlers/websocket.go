package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/frete99/frete99-backend/internal/services"
)

// WebSocketHandler attaches the authenticated user to the notification hub.
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		role := c.GetString("userRole")

		services.HandleWebSocket(hub, c.Writer, c.Request, userID, role)
	}
}
