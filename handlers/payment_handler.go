package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/abdellah799/travel_booking/services"
	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	svc *services.PaymentService
}

func NewPaymentHandler(svc *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

func (h *PaymentHandler) InitiatePayment(c *fiber.Ctx) error {
	bookingID, err := c.ParamsInt("bookingId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID"})
	}

	callbackURL := c.BaseURL() + "/api/v1/payments/callback"
	returnURL := fmt.Sprintf("%s/bookings/%d/payment-status", c.BaseURL(), bookingID)

	result, err := h.svc.Initiate(uint(bookingID), callbackURL, returnURL)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookingNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
		case errors.Is(err, services.ErrDuplicatePayment):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A payment already exists for this booking."})
		case errors.Is(err, services.ErrGatewayUnavailable):
			response := fiber.Map{"error": "Failed to initialize payment"}
			var gwErr *services.GatewayError
			if errors.As(err, &gwErr) {
				response["details"] = gwErr.Details
			}
			return c.Status(fiber.StatusBadGateway).JSON(response)
		}
		log.Printf("🔥 InitiatePayment failed for booking %d: %v", bookingID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to initiate payment"})
	}

	return c.JSON(fiber.Map{
		"message":        "Payment initialized successfully.",
		"payment_url":    result.PaymentURL,
		"transaction_id": result.TransactionRef,
	})
}

func (h *PaymentHandler) VerifyPayment(c *fiber.Ctx) error {
	txRef := c.Params("transactionId")

	result, err := h.svc.Verify(txRef)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPaymentNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
		case errors.Is(err, services.ErrVerificationFailed):
			response := fiber.Map{"error": "Payment verification failed."}
			var verErr *services.VerificationError
			if errors.As(err, &verErr) {
				response["details"] = verErr.Details
			}
			return c.Status(fiber.StatusBadRequest).JSON(response)
		case errors.Is(err, services.ErrGatewayUnavailable):
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to verify payment."})
		}
		log.Printf("🔥 VerifyPayment failed for %s: %v", txRef, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to verify payment"})
	}

	return c.JSON(fiber.Map{
		"status":  result.Status,
		"message": result.Message,
		"details": result.Details,
	})
}
