package database

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/abdellah799/travel_booking/models"
	"golang.org/x/crypto/bcrypt"
)

// SeedDemoData loads a small set of demo users, listings, bookings and reviews.
// Safe to call repeatedly; it bails out once listings exist.
func SeedDemoData() {
	var listingCount int64
	if err := DB.Model(&models.Listing{}).Count(&listingCount).Error; err != nil {
		log.Printf("🔥 Failed to check for existing listings: %v", err)
		return
	}
	if listingCount > 0 {
		log.Println("Demo data already seeded.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("🔥 Failed to hash demo password: %v", err)
		return
	}

	host := models.User{Username: "hostuser", Email: "host@example.com", Password: string(hashed), Role: models.RoleHost}
	guest := models.User{Username: "guestuser", Email: "guest@example.com", Password: string(hashed), Role: models.RoleGuest}
	if err := DB.FirstOrCreate(&host, models.User{Email: host.Email}).Error; err != nil {
		log.Printf("🔥 Failed to seed demo host: %v", err)
		return
	}
	if err := DB.FirstOrCreate(&guest, models.User{Email: guest.Email}).Error; err != nil {
		log.Printf("🔥 Failed to seed demo guest: %v", err)
		return
	}

	sampleListings := []models.Listing{
		{
			HostID:        host.ID,
			Name:          "Cozy Apartment in City Center",
			Description:   "A lovely apartment near restaurants and shops.",
			Location:      "Downtown",
			PricePerNight: 75.00,
			IsAvailable:   true,
		},
		{
			HostID:        host.ID,
			Name:          "Luxury Villa with Pool",
			Description:   "Spacious villa with private swimming pool and garden.",
			Location:      "Beverly Hills",
			PricePerNight: 350.00,
			IsAvailable:   true,
		},
		{
			HostID:        host.ID,
			Name:          "Mountain Cabin Retreat",
			Description:   "Peaceful cabin with stunning mountain views.",
			Location:      "Rocky Mountains",
			PricePerNight: 120.00,
			IsAvailable:   true,
		},
	}

	statuses := []string{models.BookingStatusConfirmed, models.BookingStatusPending}

	for i := range sampleListings {
		listing := &sampleListings[i]
		if err := DB.Create(listing).Error; err != nil {
			log.Printf("🔥 Failed to seed listing %q: %v", listing.Name, err)
			continue
		}

		startDate := time.Now().AddDate(0, 0, rand.Intn(10)+1).Truncate(24 * time.Hour)
		endDate := startDate.AddDate(0, 0, rand.Intn(4)+2)
		nights := int(endDate.Sub(startDate).Hours() / 24)

		booking := models.Booking{
			ListingID:  listing.ID,
			UserID:     &guest.ID,
			StartDate:  startDate,
			EndDate:    endDate,
			TotalPrice: float64(nights) * listing.PricePerNight,
			Status:     statuses[rand.Intn(len(statuses))],
		}
		if err := DB.Create(&booking).Error; err != nil {
			log.Printf("🔥 Failed to seed booking for %q: %v", listing.Name, err)
		}

		review := models.Review{
			ListingID: listing.ID,
			UserID:    guest.ID,
			Rating:    rand.Intn(3) + 3,
			Comment:   fmt.Sprintf("Great place! Loved staying at %s.", listing.Name),
		}
		if err := DB.Create(&review).Error; err != nil {
			log.Printf("🔥 Failed to seed review for %q: %v", listing.Name, err)
		}
	}

	log.Println("✅ Demo data seeded successfully")
}
