package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/frete99/frete99-backend/internal/store"
)

// respondError translates a store error kind into its HTTP status. Unknown
// errors become a generic 500 so internals never reach the client.
func respondError(c *gin.Context, err error) {
	kind, ok := store.KindOf(err)
	if !ok {
		c.JSON(500, gin.H{"error": "Erro interno"})
		return
	}

	status := 400
	switch kind {
	case store.KindConflict:
		status = 409
	case store.KindAuthentication:
		status = 401
	case store.KindPermission:
		status = 403
	case store.KindNotFound:
		status = 404
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
