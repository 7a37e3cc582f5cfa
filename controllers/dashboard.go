package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dentacare/dental-center-api/analytics"
	"github.com/dentacare/dental-center-api/store"
)

// GetDashboardOverview returns the dashboard aggregates. Admins see the
// whole clinic; Patient-role callers get stats over their own records.
func GetDashboardOverview(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if isAdmin(c) {
			return c.JSON(st.Stats())
		}
		patientID, ok := c.Locals("patientID").(string)
		if !ok || patientID == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "No patient record linked to this account",
			})
		}
		return c.JSON(st.StatsForPatient(patientID))
	}
}

// GetAnalytics returns the full chart bundle for the analytics page.
func GetAnalytics(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		report := analytics.BuildReport(st.Patients(), st.Incidents(), time.Now())
		return c.JSON(report)
	}
}
