package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"github.com/dentacare/dental-center-api/cron"
	"github.com/dentacare/dental-center-api/routes"
	"github.com/dentacare/dental-center-api/storage"
	"github.com/dentacare/dental-center-api/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}

	kv, err := storage.Open()
	if err != nil {
		log.Fatal("Failed to open storage: ", err)
	}
	defer kv.Close()

	st := store.New(kv)
	if err := st.Load(context.Background()); err != nil {
		log.Fatal("Failed to load collections: ", err)
	}
	log.Println("✅ Collections loaded")

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "solid_secret_key" // Replace with secure key in production
	}

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Dental Center Management API")
	})
	routes.SetupAuthRoutes(app, st, []byte(secret))
	routes.SetupPatientRoutes(app, st, []byte(secret))
	routes.SetupIncidentRoutes(app, st, []byte(secret))
	routes.SetupDashboardRoutes(app, st, []byte(secret))

	cron.StartCronJobs(st)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	if err := app.Listen(":" + port); err != nil {
		log.Printf("Server stopped: %v", err)
	}
	if err := st.Flush(context.Background()); err != nil {
		log.Printf("Failed to flush collections on shutdown: %v", err)
	}
}
