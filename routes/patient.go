package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dentacare/dental-center-api/controllers"
	"github.com/dentacare/dental-center-api/middleware"
	"github.com/dentacare/dental-center-api/store"
)

// SetupPatientRoutes configures all patient related routes
func SetupPatientRoutes(app *fiber.App, st *store.Store, secret []byte) {
	patient := app.Group("/patients", middleware.Protected(secret))
	patient.Get("/", middleware.RequireAdmin(), controllers.GetAllPatients(st))
	patient.Get("/:id", controllers.GetPatient(st))
	patient.Get("/:id/incidents", controllers.GetPatientIncidents(st))
	patient.Post("/", middleware.RequireAdmin(), controllers.CreatePatient(st))
	patient.Patch("/:id", middleware.RequireAdmin(), controllers.UpdatePatient(st))
	patient.Delete("/:id", middleware.RequireAdmin(), controllers.DeletePatient(st))
}
