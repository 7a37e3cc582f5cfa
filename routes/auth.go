package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dentacare/dental-center-api/controllers"
	"github.com/dentacare/dental-center-api/middleware"
	"github.com/dentacare/dental-center-api/store"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App, st *store.Store, secret []byte) {
	auth := app.Group("/auth")

	// Public routes
	auth.Post("/register", controllers.Register(st))
	auth.Post("/login", controllers.Login(st, secret))

	// Protected routes
	auth.Get("/me", middleware.Protected(secret), controllers.Me(st))
	auth.Post("/refresh", middleware.Protected(secret), controllers.RefreshToken(st, secret))
}
