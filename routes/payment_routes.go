package routes

import (
	"github.com/abdellah799/travel_booking/handlers"
	ws "github.com/abdellah799/travel_booking/websocket"
	"github.com/gofiber/fiber/v2"
)

func PaymentRoutes(app *fiber.App, h *handlers.PaymentHandler) {
	api := app.Group("/api/v1")

	api.Post("/bookings/:bookingId/initiate-payment", h.InitiatePayment)
	api.Post("/payments/:transactionId/verify", h.VerifyPayment)

	app.Use("/ws", ws.Upgrade)
	app.Get("/ws/payments/:transactionId", ws.PaymentSocket())
}
