package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/frete99/frete99-backend/internal/store"
	"github.com/frete99/frete99-backend/pkg/utils"
)

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates an account and returns it with a fresh session token.
func Register(st *store.Store, tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input store.RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": "Dados inválidos"})
			return
		}

		user, err := st.Register(input)
		if err != nil {
			respondError(c, err)
			return
		}

		token, err := tokens.Generate(user.ID, user.Email, string(user.Role))
		if err != nil {
			c.JSON(500, gin.H{"error": "Falha ao gerar token"})
			return
		}

		c.JSON(201, gin.H{
			"token": token,
			"user":  user.Public(),
		})
	}
}

// Login authenticates by email and password.
func Login(st *store.Store, tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": "Dados inválidos"})
			return
		}

		user, err := st.Authenticate(input.Email, input.Password)
		if err != nil {
			respondError(c, err)
			return
		}

		token, err := tokens.Generate(user.ID, user.Email, string(user.Role))
		if err != nil {
			c.JSON(500, gin.H{"error": "Falha ao gerar token"})
			return
		}

		c.JSON(200, gin.H{
			"token": token,
			"user":  user.Public(),
		})
	}
}
