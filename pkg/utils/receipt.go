package utils

import "fmt"

// ReceiptCode builds the deterministic completion receipt for a ride. The
// same ride completed in the same year always yields the same code.
func ReceiptCode(rideID uint, year int) string {
	return fmt.Sprintf("99F-%d-%06d", year, rideID)
}
