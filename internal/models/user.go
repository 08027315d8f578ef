package models

import "time"

type UserRole string

const (
	RoleClient UserRole = "CLIENT"
	RoleDriver UserRole = "DRIVER"
)

type VehicleType string

const (
	VehicleMoto     VehicleType = "MOTO"
	VehicleCarro    VehicleType = "CARRO"
	VehicleCaminhao VehicleType = "CAMINHAO"
)

type DriverPlan string

const (
	PlanFree DriverPlan = "FREE"
	PlanVIP  DriverPlan = "VIP"
)

// User is a marketplace account. Drivers carry the vehicle, rating and plan
// fields; clients leave them zeroed.
type User struct {
	ID           uint        `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Role         UserRole    `json:"role"`
	Phone        string      `json:"phone"`
	VehicleType  VehicleType `json:"vehicleType,omitempty"`
	CarModel     string      `json:"carModel,omitempty"`
	Rating       float64     `json:"rating"`
	TotalRatings int         `json:"totalRatings"`
	Trips        int         `json:"trips"`
	IsAvailable  bool        `json:"isAvailable"`
	IsVerified   bool        `json:"isVerified"`
	Plan         DriverPlan  `json:"plan,omitempty"`
	Photo        string      `json:"photo,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// PublicProfile is the projection of a user returned to API clients. The
// password hash never leaves the store.
type PublicProfile struct {
	ID           uint        `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Role         UserRole    `json:"role"`
	Phone        string      `json:"phone"`
	VehicleType  VehicleType `json:"vehicleType,omitempty"`
	CarModel     string      `json:"carModel,omitempty"`
	Rating       float64     `json:"rating"`
	TotalRatings int         `json:"totalRatings"`
	Trips        int         `json:"trips"`
	IsAvailable  bool        `json:"isAvailable"`
	IsVerified   bool        `json:"isVerified"`
	Plan         DriverPlan  `json:"plan,omitempty"`
	Photo        string      `json:"photo,omitempty"`
}

func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		Phone:        u.Phone,
		VehicleType:  u.VehicleType,
		CarModel:     u.CarModel,
		Rating:       u.Rating,
		TotalRatings: u.TotalRatings,
		Trips:        u.Trips,
		IsAvailable:  u.IsAvailable,
		IsVerified:   u.IsVerified,
		Plan:         u.Plan,
		Photo:        u.Photo,
	}
}

func ValidRole(r UserRole) bool {
	return r == RoleClient || r == RoleDriver
}

func ValidVehicleType(v VehicleType) bool {
	return v == VehicleMoto || v == VehicleCarro || v == VehicleCaminhao
}
