package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dentacare/dental-center-api/controllers"
	"github.com/dentacare/dental-center-api/middleware"
	"github.com/dentacare/dental-center-api/store"
)

// SetupDashboardRoutes configures the dashboard, analytics and calendar
// read-only views.
func SetupDashboardRoutes(app *fiber.App, st *store.Store, secret []byte) {
	app.Get("/dashboard", middleware.Protected(secret), controllers.GetDashboardOverview(st))
	app.Get("/analytics", middleware.Protected(secret), middleware.RequireAdmin(), controllers.GetAnalytics(st))

	calendar := app.Group("/calendar", middleware.Protected(secret), middleware.RequireAdmin())
	calendar.Get("/day/:date", controllers.GetCalendarDay(st))
	calendar.Get("/:year/:month", controllers.GetCalendarMonth(st))
}
