package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/frete99/frete99-backend/internal/store"
)

// GetProfile returns the authenticated user's public profile.
func GetProfile(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		user, err := st.GetUser(userID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(200, user.Public())
	}
}
