package main

import (
	"log"
	"time"

	config "github.com/abdellah799/travel_booking/configs"
	"github.com/abdellah799/travel_booking/database"
	"github.com/abdellah799/travel_booking/handlers"
	"github.com/abdellah799/travel_booking/jobs"
	"github.com/abdellah799/travel_booking/notifications"
	"github.com/abdellah799/travel_booking/payments"
	"github.com/abdellah799/travel_booking/routes"
	"github.com/abdellah799/travel_booking/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()
	if config.Config("SEED_DEMO_DATA") == "true" {
		database.SeedDemoData()
	}

	notifications.InitEmailService(
		config.Config("BREVO_API_KEY"),
		config.Config("EMAIL_SENDER"),
		config.Config("EMAIL_SENDER_NAME"),
	)
	jobs.Init(4, 256)

	chapa := payments.NewChapaService(
		config.Config("CHAPA_BASE_URL"),
		config.Config("CHAPA_SECRET_KEY"),
	)
	paymentService := services.NewPaymentService(database.DB, chapa, jobs.Default())
	paymentHandler := handlers.NewPaymentHandler(paymentService)

	c := cron.New()
	c.AddFunc("0 * * * *", jobs.CancelExpiredBookings)
	go c.Start()
	log.Println("✅ Cron job for booking cleanup scheduled successfully.")

	app := fiber.New(fiber.Config{
		Prefork:           false,
		AppName:           "Travel Booking",
		CaseSensitive:     true,
		StrictRouting:     true,
		EnablePrintRoutes: true,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to the Travel Booking API",
		})
	})

	routes.AuthRoutes(app)
	routes.ListingRoutes(app)
	routes.BookingRoutes(app)
	routes.ReviewRoutes(app)
	routes.PaymentRoutes(app, paymentHandler)
	routes.UploadRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	port := config.Config("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("✅ Server is running on port %s", port)
	err := app.Listen(":" + port)
	if err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
