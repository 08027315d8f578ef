package utils

import (
	"fmt"
	"math"

	"github.com/frete99/frete99-backend/internal/models"
)

// EstimateResult contains the calculated freight estimate and its breakdown.
type EstimateResult struct {
	Subtotal   float64 `json:"subtotal"`
	Helper     float64 `json:"helper"`
	Fee        float64 `json:"fee"`
	Total      float64 `json:"total"`
	TotalRange string  `json:"totalRange"`
}

const (
	// Base rates in BRL per vehicle type.
	MotoBaseRate     = 18.0
	CarroBaseRate    = 40.0
	CaminhaoBaseRate = 120.0

	HelperSurcharge    = 30.0
	OperationalFeeRate = 0.08

	// Upper bound of the quoted range relative to the computed total.
	RangeSpread = 1.2
)

func baseRate(vehicleType models.VehicleType) float64 {
	switch vehicleType {
	case models.VehicleMoto:
		return MotoBaseRate
	case models.VehicleCaminhao:
		return CaminhaoBaseRate
	default:
		return CarroBaseRate
	}
}

func distanceFactor(distance models.DistanceBucket) float64 {
	switch distance {
	case models.DistanceMedio:
		return 1.5
	case models.DistanceLonge:
		return 2.5
	default:
		return 1.0
	}
}

// CalculateEstimate computes the freight quote: base rate scaled by the
// distance bucket, optional helper surcharge (motorcycles never carry a
// helper) and an 8% operational fee. The displayed range runs from the
// computed total to 20% above it.
func CalculateEstimate(vehicleType models.VehicleType, distance models.DistanceBucket, needHelper bool) EstimateResult {
	subtotal := baseRate(vehicleType) * distanceFactor(distance)

	helper := 0.0
	if needHelper && vehicleType != models.VehicleMoto {
		helper = HelperSurcharge
	}

	fee := math.Round(subtotal * OperationalFeeRate)
	total := math.Round(subtotal + helper + fee)

	return EstimateResult{
		Subtotal:   math.Round(subtotal),
		Helper:     helper,
		Fee:        fee,
		Total:      total,
		TotalRange: fmt.Sprintf("R$ %.0f - R$ %.0f", total, math.Round(total*RangeSpread)),
	}
}
