package routes

import (
	"github.com/abdellah799/travel_booking/handlers"
	"github.com/abdellah799/travel_booking/middleware"
	"github.com/gofiber/fiber/v2"
)

func ReviewRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	reviews := api.Group("/listings/:listingId/reviews", middleware.Protected())
	reviews.Post("", handlers.CreateReview)

	api.Delete("/reviews/:reviewId", middleware.Protected(), handlers.DeleteReview)
}
