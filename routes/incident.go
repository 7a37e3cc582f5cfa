package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dentacare/dental-center-api/controllers"
	"github.com/dentacare/dental-center-api/middleware"
	"github.com/dentacare/dental-center-api/store"
)

// SetupIncidentRoutes configures all incident related routes
func SetupIncidentRoutes(app *fiber.App, st *store.Store, secret []byte) {
	incident := app.Group("/incidents", middleware.Protected(secret))
	incident.Get("/", controllers.GetAllIncidents(st))
	incident.Get("/:id", controllers.GetIncident(st))
	incident.Post("/", middleware.RequireAdmin(), controllers.CreateIncident(st))
	incident.Patch("/:id", middleware.RequireAdmin(), controllers.UpdateIncident(st))
	incident.Delete("/:id", middleware.RequireAdmin(), controllers.DeleteIncident(st))
	incident.Post("/:id/files", middleware.RequireAdmin(), controllers.AddIncidentFile(st))
	incident.Delete("/:id/files/:name", middleware.RequireAdmin(), controllers.RemoveIncidentFile(st))
}
