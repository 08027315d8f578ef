package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/frete99/frete99-backend/internal/models"
	"github.com/frete99/frete99-backend/internal/services"
	"github.com/frete99/frete99-backend/internal/store"
)

func rideIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "ID de frete inválido"})
		return 0, false
	}
	return uint(id), true
}

// CreateRide opens a freight request for the authenticated client.
func CreateRide(st *store.Store, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := c.GetUint("userId")

		var input store.CreateRideInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": "Dados inválidos"})
			return
		}

		ride, err := st.CreateRide(clientID, input)
		if err != nil {
			respondError(c, err)
			return
		}

		// A ride born ACCEPTED goes straight to the chosen driver's queue.
		if ride.DriverID != nil {
			hub.NotifyRideEvent(services.RideEvent{
				Type:   "ride_assigned",
				RideID: ride.ID,
				Status: string(ride.Status),
			}, *ride.DriverID)
		} else {
			hub.SendToRole(string(models.RoleDriver), rideEventJSON("ride_opened", ride.ID, ride.Status))
		}

		c.JSON(201, ride)
	}
}

// GetOpenRides lists every unclaimed ride for browsing drivers.
func GetOpenRides(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, st.ListOpen())
	}
}

// GetMyRides lists the rides the authenticated user participates in.
func GetMyRides(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		role := models.UserRole(c.GetString("userRole"))
		c.JSON(200, st.ListForUser(userID, role))
	}
}

// ClaimRide assigns an open ride to the requesting driver.
func ClaimRide(st *store.Store, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		rideID, ok := rideIDParam(c)
		if !ok {
			return
		}
		driverID := c.GetUint("userId")

		ride, err := st.Claim(rideID, driverID)
		if err != nil {
			respondError(c, err)
			return
		}

		hub.NotifyRideEvent(services.RideEvent{
			Type:   "ride_claimed",
			RideID: ride.ID,
			Status: string(ride.Status),
		}, ride.ClientID)

		c.JSON(200, ride)
	}
}

// UpdateRideStatus advances an assigned ride along its lifecycle.
func UpdateRideStatus(st *store.Store, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		rideID, ok := rideIDParam(c)
		if !ok {
			return
		}
		driverID := c.GetUint("userId")

		var input struct {
			Status models.RideStatus `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": "Dados inválidos"})
			return
		}

		ride, err := st.AdvanceStatus(rideID, driverID, input.Status)
		if err != nil {
			respondError(c, err)
			return
		}

		hub.NotifyRideEvent(services.RideEvent{
			Type:   "ride_status_update",
			RideID: ride.ID,
			Status: string(ride.Status),
		}, ride.ClientID, driverID)

		c.JSON(200, ride)
	}
}

// RateRide records a post-completion score from either participant.
func RateRide(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		rideID, ok := rideIDParam(c)
		if !ok {
			return
		}
		userID := c.GetUint("userId")
		role := models.UserRole(c.GetString("userRole"))

		var input struct {
			Score int `json:"score" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": "Dados inválidos"})
			return
		}

		ride, err := st.Rate(rideID, userID, role, input.Score)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(200, ride)
	}
}

func rideEventJSON(eventType string, rideID uint, status models.RideStatus) []byte {
	// RideEvent marshaling cannot fail for these field types.
	data, _ := services.MarshalRideEvent(services.RideEvent{
		Type:   eventType,
		RideID: rideID,
		Status: string(status),
	})
	return data
}
