package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// GenerateTransactionRef builds the unique reference for one payment attempt.
// The UUID suffix makes collisions negligible without a storage round trip.
func GenerateTransactionRef(bookingID uint) string {
	return fmt.Sprintf("booking-%d-%s", bookingID, uuid.New().String())
}
