package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/abdellah799/travel_booking/database"
	"github.com/abdellah799/travel_booking/middleware"
	"github.com/abdellah799/travel_booking/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newBookingTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", "booking-test-secret")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Listing{},
		&models.Booking{},
		&models.Review{},
		&models.Payment{},
	))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })

	app := fiber.New()
	api := app.Group("/api/v1/bookings", middleware.Protected())
	api.Get("/me", GetMyBookings)
	api.Post("", CreateBooking)
	api.Get("/:bookingId", GetBooking)
	api.Post("/:bookingId/cancel", CancelBooking)
	return app, db
}

func signToken(t *testing.T, userID uint, role string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("booking-test-secret"))
	require.NoError(t, err)
	return signed
}

func createGuestAndListing(t *testing.T, db *gorm.DB) (*models.User, *models.Listing) {
	t.Helper()

	user := models.User{Username: "guest1", Email: "guest1@example.com", Password: "x", Role: models.RoleGuest}
	require.NoError(t, db.Create(&user).Error)

	listing := models.Listing{HostID: user.ID, Name: "Luxury Villa with Pool", Location: "Seaside", PricePerNight: 350, IsAvailable: true}
	require.NoError(t, db.Create(&listing).Error)
	return &user, &listing
}

func postBooking(t *testing.T, app *fiber.App, token string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestCreateBooking_OK(t *testing.T) {
	app, db := newBookingTestApp(t)
	user, listing := createGuestAndListing(t, db)
	token := signToken(t, user.ID, user.Role)

	start := time.Now().AddDate(0, 0, 10)
	resp := postBooking(t, app, token, fiber.Map{
		"listing_id": listing.ID,
		"start_date": start.Format("2006-01-02"),
		"end_date":   start.AddDate(0, 0, 3).Format("2006-01-02"),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var booking models.Booking
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&booking))
	assert.Equal(t, listing.ID, booking.ListingID)
	require.NotNil(t, booking.UserID)
	assert.Equal(t, user.ID, *booking.UserID)
	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.Equal(t, 3*listing.PricePerNight, booking.TotalPrice)
}

func TestCreateBooking_RequiresAuth(t *testing.T) {
	app, _ := newBookingTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateBooking_EndBeforeStart(t *testing.T) {
	app, db := newBookingTestApp(t)
	user, listing := createGuestAndListing(t, db)
	token := signToken(t, user.ID, user.Role)

	start := time.Now().AddDate(0, 0, 10)
	resp := postBooking(t, app, token, fiber.Map{
		"listing_id": listing.ID,
		"start_date": start.Format("2006-01-02"),
		"end_date":   start.AddDate(0, 0, -2).Format("2006-01-02"),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateBooking_StartInPast(t *testing.T) {
	app, db := newBookingTestApp(t)
	user, listing := createGuestAndListing(t, db)
	token := signToken(t, user.ID, user.Role)

	start := time.Now().AddDate(0, 0, -5)
	resp := postBooking(t, app, token, fiber.Map{
		"listing_id": listing.ID,
		"start_date": start.Format("2006-01-02"),
		"end_date":   start.AddDate(0, 0, 2).Format("2006-01-02"),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateBooking_ListingUnavailable(t *testing.T) {
	app, db := newBookingTestApp(t)
	user, listing := createGuestAndListing(t, db)
	require.NoError(t, db.Model(listing).Update("is_available", false).Error)
	token := signToken(t, user.ID, user.Role)

	start := time.Now().AddDate(0, 0, 10)
	resp := postBooking(t, app, token, fiber.Map{
		"listing_id": listing.ID,
		"start_date": start.Format("2006-01-02"),
		"end_date":   start.AddDate(0, 0, 2).Format("2006-01-02"),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCancelBooking_OnlyPending(t *testing.T) {
	app, db := newBookingTestApp(t)
	user, listing := createGuestAndListing(t, db)
	token := signToken(t, user.ID, user.Role)

	booking := models.Booking{
		ListingID:  listing.ID,
		UserID:     &user.ID,
		StartDate:  time.Now().AddDate(0, 0, 5),
		EndDate:    time.Now().AddDate(0, 0, 7),
		TotalPrice: 700,
		Status:     models.BookingStatusConfirmed,
	}
	require.NoError(t, db.Create(&booking).Error)

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/bookings/%d/cancel", booking.ID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCancelBooking_OtherUsersBookingForbidden(t *testing.T) {
	app, db := newBookingTestApp(t)
	user, listing := createGuestAndListing(t, db)

	other := models.User{Username: "guest2", Email: "guest2@example.com", Password: "x", Role: models.RoleGuest}
	require.NoError(t, db.Create(&other).Error)

	booking := models.Booking{
		ListingID:  listing.ID,
		UserID:     &user.ID,
		StartDate:  time.Now().AddDate(0, 0, 5),
		EndDate:    time.Now().AddDate(0, 0, 7),
		TotalPrice: 700,
		Status:     models.BookingStatusPending,
	}
	require.NoError(t, db.Create(&booking).Error)

	token := signToken(t, other.ID, other.Role)
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/bookings/%d/cancel", booking.ID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestGetMyBookings_ReturnsOwnOnly(t *testing.T) {
	app, db := newBookingTestApp(t)
	user, listing := createGuestAndListing(t, db)

	other := models.User{Username: "guest2", Email: "guest2@example.com", Password: "x", Role: models.RoleGuest}
	require.NoError(t, db.Create(&other).Error)

	for _, uid := range []uint{user.ID, user.ID, other.ID} {
		id := uid
		booking := models.Booking{
			ListingID:  listing.ID,
			UserID:     &id,
			StartDate:  time.Now().AddDate(0, 0, 5),
			EndDate:    time.Now().AddDate(0, 0, 7),
			TotalPrice: 700,
			Status:     models.BookingStatusPending,
		}
		require.NoError(t, db.Create(&booking).Error)
	}

	token := signToken(t, user.ID, user.Role)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var bookings []models.Booking
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&bookings))
	assert.Len(t, bookings, 2)
}
