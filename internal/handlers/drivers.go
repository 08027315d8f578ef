package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/frete99/frete99-backend/internal/models"
	"github.com/frete99/frete99-backend/internal/services"
	"github.com/frete99/frete99-backend/internal/store"
)

// ListDrivers returns available drivers, VIP plans first then rating,
// optionally filtered by vehicle type.
func ListDrivers(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		vehicleType := models.VehicleType(c.Query("vehicleType"))
		c.JSON(200, st.ListAvailableDrivers(vehicleType))
	}
}

// UpdateDriverAvailability toggles whether the driver shows up in listings.
func UpdateDriverAvailability(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		driverID := c.GetUint("userId")

		var input struct {
			IsAvailable *bool `json:"isAvailable" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": "Dados inválidos"})
			return
		}

		user, err := st.SetAvailability(driverID, *input.IsAvailable)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(200, user.Public())
	}
}

// UploadDriverPhoto stores a profile photo and records its URL.
func UploadDriverPhoto(st *store.Store, storage *services.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		driverID := c.GetUint("userId")

		file, err := c.FormFile("photo")
		if err != nil {
			c.JSON(400, gin.H{"error": "Arquivo de foto obrigatório"})
			return
		}

		url, err := storage.UploadPhoto(file, driverID)
		if err != nil {
			c.JSON(500, gin.H{"error": "Falha ao enviar foto"})
			return
		}

		user, err := st.SetPhoto(driverID, url)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(200, user.Public())
	}
}
