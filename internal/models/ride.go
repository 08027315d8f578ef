package models

import "time"

type RideStatus string

const (
	RideStatusOpen      RideStatus = "OPEN"
	RideStatusAccepted  RideStatus = "ACCEPTED"
	RideStatusOnRoute   RideStatus = "ON_ROUTE"
	RideStatusCompleted RideStatus = "COMPLETED"
	RideStatusCanceled  RideStatus = "CANCELED"
)

type DistanceBucket string

const (
	DistancePerto DistanceBucket = "PERTO"
	DistanceMedio DistanceBucket = "MEDIO"
	DistanceLonge DistanceBucket = "LONGE"
)

// Ride is a freight request. DriverID stays nil while the ride is OPEN;
// ReceiptCode is written exactly once, on the transition to COMPLETED.
type Ride struct {
	ID            uint           `json:"id"`
	ClientID      uint           `json:"clientId"`
	DriverID      *uint          `json:"driverId"`
	From          string         `json:"from"`
	To            string         `json:"to"`
	Distance      DistanceBucket `json:"distance"`
	VehicleType   VehicleType    `json:"vehicleType"`
	SelectedItems []string       `json:"selectedItems"`
	NeedHelper    bool           `json:"needHelper"`
	Estimate      string         `json:"estimate"`
	Status        RideStatus     `json:"status"`
	ReceiptCode   string         `json:"receiptCode,omitempty"`
	ClientRating  *int           `json:"clientRating"`
	DriverRating  *int           `json:"driverRating"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// RideView is a ride enriched with the counterpart profiles for listings.
type RideView struct {
	Ride
	Client *PublicProfile `json:"client,omitempty"`
	Driver *PublicProfile `json:"driver,omitempty"`
}
