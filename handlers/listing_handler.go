package handlers

import (
	"github.com/abdellah799/travel_booking/database"
	"github.com/abdellah799/travel_booking/models"
	"github.com/gofiber/fiber/v2"
)

type ListingRequest struct {
	Name          string  `json:"name" validate:"required,max=200"`
	Description   string  `json:"description"`
	Location      string  `json:"location" validate:"required,max=255"`
	PricePerNight float64 `json:"price_per_night" validate:"required,gt=0"`
	IsAvailable   *bool   `json:"is_available,omitempty"`
}

func GetListings(c *fiber.Ctx) error {
	var listings []models.Listing
	query := database.DB.Preload("Host")

	if location := c.Query("location"); location != "" {
		query = query.Where("location = ?", location)
	}

	if err := query.Order("created_at desc").Find(&listings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch listings"})
	}
	return c.JSON(listings)
}

func GetListing(c *fiber.Ctx) error {
	listingID, err := c.ParamsInt("listingId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid listing ID"})
	}

	var listing models.Listing
	if err := database.DB.Preload("Host").First(&listing, "id = ?", listingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Listing not found"})
	}
	return c.JSON(listing)
}

func CreateListing(c *fiber.Ctx) error {
	hostID := currentUserID(c)

	var req ListingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	listing := models.Listing{
		HostID:        hostID,
		Name:          req.Name,
		Description:   req.Description,
		Location:      req.Location,
		PricePerNight: req.PricePerNight,
		IsAvailable:   true,
	}
	if req.IsAvailable != nil {
		listing.IsAvailable = *req.IsAvailable
	}

	if err := database.DB.Create(&listing).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create listing"})
	}
	return c.Status(fiber.StatusCreated).JSON(listing)
}

func UpdateListing(c *fiber.Ctx) error {
	listingID, err := c.ParamsInt("listingId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid listing ID"})
	}

	var listing models.Listing
	if err := database.DB.First(&listing, "id = ?", listingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Listing not found"})
	}
	if listing.HostID != currentUserID(c) && currentRole(c) != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not the host of this listing"})
	}

	var req ListingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	listing.Name = req.Name
	listing.Description = req.Description
	listing.Location = req.Location
	listing.PricePerNight = req.PricePerNight
	if req.IsAvailable != nil {
		listing.IsAvailable = *req.IsAvailable
	}

	if err := database.DB.Save(&listing).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update listing"})
	}
	return c.JSON(listing)
}

func DeleteListing(c *fiber.Ctx) error {
	listingID, err := c.ParamsInt("listingId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid listing ID"})
	}

	var listing models.Listing
	if err := database.DB.First(&listing, "id = ?", listingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Listing not found"})
	}
	if listing.HostID != currentUserID(c) && currentRole(c) != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not the host of this listing"})
	}

	if err := database.DB.Delete(&listing).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete listing"})
	}
	return c.JSON(fiber.Map{"message": "Listing deleted successfully"})
}
