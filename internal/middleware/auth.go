package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/frete99/frete99-backend/internal/models"
	"github.com/frete99/frete99-backend/pkg/utils"
)

// AuthMiddleware validates the bearer token and sets userId/userRole in the
// request context. WebSocket clients may pass the token as a query parameter
// instead of a header.
func AuthMiddleware(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			c.JSON(401, gin.H{"error": "Token de autenticação obrigatório"})
			c.Abort()
			return
		}

		claims, err := tokens.Validate(tokenString)
		if err != nil {
			c.JSON(401, gin.H{"error": "Token inválido ou expirado"})
			c.Abort()
			return
		}

		c.Set("userId", claims.UserID)
		c.Set("userRole", claims.Role)
		c.Next()
	}
}

// RequireRole rejects requests whose authenticated role differs from the one
// the route demands.
func RequireRole(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("userRole") != string(role) {
			c.JSON(403, gin.H{"error": "Acesso não permitido para este perfil"})
			c.Abort()
			return
		}
		c.Next()
	}
}
