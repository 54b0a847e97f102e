package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/KhuramMirza/e-commerce-backend-api/internal/config"
	"github.com/KhuramMirza/e-commerce-backend-api/internal/handlers"
	"github.com/KhuramMirza/e-commerce-backend-api/internal/middleware"
	"github.com/KhuramMirza/e-commerce-backend-api/internal/models"
	"github.com/KhuramMirza/e-commerce-backend-api/internal/repositories"
	"github.com/KhuramMirza/e-commerce-backend-api/internal/services"
	"github.com/KhuramMirza/e-commerce-backend-api/pkg/checkout"
	"github.com/KhuramMirza/e-commerce-backend-api/pkg/mailer"
	"github.com/KhuramMirza/e-commerce-backend-api/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg := config.Load()

	// --- Database ---
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- RabbitMQ ---
	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
	}
	defer mqClient.Close() // Ensure the connection is closed on exit

	// --- Outbound clients ---
	mail := mailer.New(mailer.Config{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUser,
		Password:  cfg.SMTPPass,
		FromEmail: cfg.FromEmail,
	})
	gateway := checkout.NewClient(checkout.Config{
		APIURL:        cfg.CheckoutAPIURL,
		APIKey:        cfg.CheckoutAPIKey,
		WebhookSecret: cfg.CheckoutWebhookSecret,
		SuccessURL:    cfg.CheckoutSuccessURL,
		CancelURL:     cfg.CheckoutCancelURL,
	})

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, mail, cfg.JWTSecret, cfg.AdminSecret, cfg.ClientURL, cfg.TokenDuration)
	productService := services.NewProductService(productRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, cartRepo, productRepo, userRepo, mqClient)
	paymentService := services.NewPaymentService(gateway, orderRepo, userRepo, cfg.CheckoutWebhookSecret)
	reviewService := services.NewReviewService(reviewRepo, orderRepo, productRepo)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService, paymentService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	webhookHandler := handlers.NewWebhookHandler(paymentService)

	// --- Fiber App ---
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.NewErrorHandler(cfg.IsDevelopment()),
	})

	// --- Middleware ---
	app.Use(logger.New()) // Request logger
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.ClientURL,
		AllowCredentials: true,
	}))

	authRequired := middleware.AuthRequired(authService)
	adminOnly := middleware.AdminOnly()

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1, authRequired)
	productHandler.RegisterRoutes(apiV1, authRequired, adminOnly)
	cartHandler.RegisterRoutes(apiV1, authRequired)
	orderHandler.RegisterRoutes(apiV1, authRequired, adminOnly)
	reviewHandler.RegisterRoutes(apiV1, authRequired)
	webhookHandler.RegisterRoutes(apiV1)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Order Events Consumer ---
	// Sends confirmation emails for newly created orders. Failures nack the
	// message for redelivery.
	go func() {
		log.Println("Starting RabbitMQ consumer for order events...")
		if consumerErr := mqClient.ConsumeOrderEvents(orderEventHandler(mail)); consumerErr != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
		}
	}()

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	// Closing the RabbitMQ connection is handled by defer in main
	log.Println("Server gracefully stopped")
}

// orderEventHandler turns order lifecycle events into customer emails.
func orderEventHandler(mail mailer.Sender) func(msg amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		var event rabbitmq.OrderEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			log.Printf("Discarding malformed order event (tag %d): %v", msg.DeliveryTag, err)
			return nil // Ack: redelivery cannot fix a malformed payload
		}

		if event.Event != rabbitmq.RoutingKeyOrderCreated || event.UserEmail == "" {
			return nil
		}

		body := fmt.Sprintf("Thank you for your order!\n\nOrder ID: %s\nTotal: %.2f\n\nWe will let you know when it ships.", event.OrderID, event.TotalPrice)
		if err := mail.Send(event.UserEmail, "Order confirmation", body); err != nil {
			return fmt.Errorf("failed to send confirmation for order %s: %w", event.OrderID, err)
		}
		log.Printf("Sent order confirmation for order %s", event.OrderID)
		return nil
	}
}
