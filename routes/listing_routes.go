package routes

import (
	"github.com/abdellah799/travel_booking/handlers"
	"github.com/abdellah799/travel_booking/middleware"
	"github.com/gofiber/fiber/v2"
)

func ListingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/listings", handlers.GetListings)
	api.Get("/listings/:listingId", handlers.GetListing)
	api.Get("/listings/:listingId/reviews", handlers.GetListingReviews)

	hosting := api.Group("/listings", middleware.Protected(), middleware.HostRequired())
	hosting.Post("", handlers.CreateListing)
	hosting.Put("/:listingId", handlers.UpdateListing)
	hosting.Delete("/:listingId", handlers.DeleteListing)
}
