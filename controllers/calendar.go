package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dentacare/dental-center-api/models"
	"github.com/dentacare/dental-center-api/store"
)

type calendarDay struct {
	Date      string            `json:"date"`
	Incidents []models.Incident `json:"incidents"`
}

// GetCalendarMonth buckets a month's incidents into calendar days.
// Matching is by date component only, independent of time-of-day.
func GetCalendarMonth(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		year, err := c.ParamsInt("year")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid year",
			})
		}
		month, err := c.ParamsInt("month")
		if err != nil || month < 1 || month > 12 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid month",
			})
		}

		incidents := st.IncidentsInMonth(year, time.Month(month))
		first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
		daysInMonth := first.AddDate(0, 1, -1).Day()

		days := make([]calendarDay, daysInMonth)
		for i := range days {
			day := first.AddDate(0, 0, i)
			days[i] = calendarDay{
				Date:      day.Format("2006-01-02"),
				Incidents: []models.Incident{},
			}
		}
		for _, inc := range incidents {
			days[inc.AppointmentDate.Day()-1].Incidents = append(
				days[inc.AppointmentDate.Day()-1].Incidents, inc)
		}
		return c.JSON(days)
	}
}

// GetCalendarDay returns the incidents scheduled on one calendar date.
func GetCalendarDay(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		day, err := time.ParseInLocation("2006-01-02", c.Params("date"), time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid date, expected YYYY-MM-DD",
			})
		}
		incidents := st.IncidentsOn(day)
		if incidents == nil {
			incidents = []models.Incident{}
		}
		return c.JSON(calendarDay{
			Date:      day.Format("2006-01-02"),
			Incidents: incidents,
		})
	}
}
