package jobs

import (
	"log"
	"time"

	"github.com/abdellah799/travel_booking/database"
	"github.com/abdellah799/travel_booking/models"
)

// CancelExpiredBookings marks pending bookings whose stay has already started
// as canceled. Payments for them stay untouched; only the payment orchestrator
// moves payment state.
func CancelExpiredBookings() {
	log.Println("Running job: CancelExpiredBookings...")

	today := time.Now().Truncate(24 * time.Hour)

	result := database.DB.
		Model(&models.Booking{}).
		Where("status = ? AND start_date < ?", models.BookingStatusPending, today).
		Update("status", models.BookingStatusCanceled)

	if result.Error != nil {
		log.Printf("Error canceling expired bookings: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("Canceled %d expired booking(s).", result.RowsAffected)
	}
}
