package handlers

import (
	"time"

	"github.com/abdellah799/travel_booking/database"
	"github.com/abdellah799/travel_booking/jobs"
	"github.com/abdellah799/travel_booking/models"
	"github.com/gofiber/fiber/v2"
)

type CreateBookingRequest struct {
	ListingID uint   `json:"listing_id" validate:"required"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

func CreateBooking(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	if !endDate.After(startDate) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "End date must be after start date"})
	}
	today := time.Now().Truncate(24 * time.Hour)
	if startDate.Before(today) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Start date cannot be in the past"})
	}

	var listing models.Listing
	if err := database.DB.First(&listing, "id = ?", req.ListingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Listing not found"})
	}
	if !listing.IsAvailable {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Listing is not available"})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	nights := int(endDate.Sub(startDate).Hours() / 24)

	booking := models.Booking{
		ListingID:  listing.ID,
		UserID:     &user.ID,
		StartDate:  startDate,
		EndDate:    endDate,
		TotalPrice: float64(nights) * listing.PricePerNight,
		Status:     models.BookingStatusPending,
	}
	if err := database.DB.Create(&booking).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create booking"})
	}

	jobs.Submit(&jobs.BookingConfirmationJob{
		BookingID:    booking.ID,
		UserName:     user.Username,
		UserEmail:    user.Email,
		ListingTitle: listing.Name,
		CheckInDate:  startDate.Format("2006-01-02"),
		CheckOutDate: endDate.Format("2006-01-02"),
	})

	return c.Status(fiber.StatusCreated).JSON(booking)
}

func GetMyBookings(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var bookings []models.Booking
	if err := database.DB.
		Preload("Listing").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch bookings"})
	}

	return c.JSON(bookings)
}

func GetBooking(c *fiber.Ctx) error {
	bookingID, err := c.ParamsInt("bookingId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID"})
	}

	var booking models.Booking
	if err := database.DB.Preload("Listing").Preload("User").First(&booking, "id = ?", bookingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}

	if (booking.UserID == nil || *booking.UserID != currentUserID(c)) && currentRole(c) != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your booking"})
	}

	return c.JSON(booking)
}

func CancelBooking(c *fiber.Ctx) error {
	bookingID, err := c.ParamsInt("bookingId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID"})
	}

	var booking models.Booking
	if err := database.DB.First(&booking, "id = ?", bookingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}
	if (booking.UserID == nil || *booking.UserID != currentUserID(c)) && currentRole(c) != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your booking"})
	}
	if booking.Status != models.BookingStatusPending {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only pending bookings can be canceled"})
	}

	booking.Status = models.BookingStatusCanceled
	if err := database.DB.Save(&booking).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to cancel booking"})
	}

	return c.JSON(fiber.Map{"message": "Booking canceled successfully"})
}
