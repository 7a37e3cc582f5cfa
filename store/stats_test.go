package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dentacare/dental-center-api/models"
)

func costOf(v float64) *float64 { return &v }

func incidentAt(id, patientID string, status models.IncidentStatus, at time.Time, cost float64) models.Incident {
	return models.Incident{
		ID:              id,
		PatientID:       patientID,
		Title:           "Treatment " + id,
		AppointmentDate: models.NewTime(at),
		Status:          status,
		Cost:            costOf(cost),
	}
}

func TestTotalRevenueCountsCompletedOnly(t *testing.T) {
	now := time.Date(2025, 7, 15, 12, 0, 0, 0, time.Local)
	incidents := []models.Incident{
		incidentAt("a", "p1", models.StatusCompleted, now.AddDate(0, -2, 0), 80),
		incidentAt("b", "p1", models.StatusScheduled, now, 500),
		incidentAt("c", "p1", models.StatusCompleted, now.AddDate(0, -3, 0), 120),
	}

	stats := computeStats(nil, incidents, now)
	assert.Equal(t, 200.0, stats.TotalRevenue)
}

func TestMonthlyRevenueRestrictedToCurrentMonth(t *testing.T) {
	now := time.Date(2025, 7, 15, 12, 0, 0, 0, time.Local)
	incidents := []models.Incident{
		incidentAt("in-month", "p1", models.StatusCompleted, time.Date(2025, 7, 1, 9, 0, 0, 0, time.Local), 100),
		incidentAt("out-month", "p1", models.StatusCompleted, time.Date(2025, 6, 30, 9, 0, 0, 0, time.Local), 900),
		incidentAt("in-month-open", "p1", models.StatusScheduled, time.Date(2025, 7, 20, 9, 0, 0, 0, time.Local), 50),
	}

	stats := computeStats(nil, incidents, now)
	assert.Equal(t, 100.0, stats.MonthlyRevenue)
	assert.Equal(t, 2, stats.ThisMonthIncidents)
}

func TestStatusPartition(t *testing.T) {
	now := time.Date(2025, 7, 15, 12, 0, 0, 0, time.Local)
	incidents := []models.Incident{
		incidentAt("a", "p1", models.StatusCompleted, now, 0),
		incidentAt("b", "p1", models.StatusScheduled, now, 0),
		incidentAt("c", "p1", models.StatusScheduled, now, 0),
		incidentAt("d", "p1", models.StatusInProgress, now, 0),
		incidentAt("e", "p1", models.StatusCancelled, now, 0),
	}

	stats := computeStats(nil, incidents, now)
	assert.Equal(t, 1, stats.CompletedTreatments)
	assert.Equal(t, 2, stats.PendingAppointments)
	assert.Equal(t, 1, stats.InProgressTreatments)
	assert.Equal(t, 5, stats.TotalIncidents)
}

func TestUpcomingAppointmentsSortedAndCapped(t *testing.T) {
	now := time.Date(2025, 7, 15, 12, 0, 0, 0, time.Local)
	var incidents []models.Incident
	for i := 0; i < 12; i++ {
		incidents = append(incidents, incidentAt(
			string(rune('a'+i)), "p1", models.StatusScheduled,
			now.AddDate(0, 0, 12-i), 0))
	}
	// Completed incidents never count as upcoming.
	incidents = append(incidents, incidentAt("done", "p1", models.StatusCompleted, now.AddDate(0, 0, 1), 0))

	stats := computeStats(nil, incidents, now)
	assert.Len(t, stats.UpcomingAppointments, 10)
	for i := 1; i < len(stats.UpcomingAppointments); i++ {
		assert.False(t, stats.UpcomingAppointments[i].AppointmentDate.Before(
			stats.UpcomingAppointments[i-1].AppointmentDate.Time))
	}
	for _, inc := range stats.UpcomingAppointments {
		assert.NotEqual(t, "done", inc.ID)
	}
}

func TestTopPatientsRankedBySpendStableOnTies(t *testing.T) {
	now := time.Date(2025, 7, 15, 12, 0, 0, 0, time.Local)
	patients := []models.Patient{
		{ID: "p1", Name: "First"},
		{ID: "p2", Name: "Second"},
		{ID: "p3", Name: "Third"},
	}
	incidents := []models.Incident{
		incidentAt("a", "p2", models.StatusCompleted, now, 300),
		incidentAt("b", "p1", models.StatusCompleted, now, 100),
		incidentAt("c", "p3", models.StatusCompleted, now, 100),
		// Non-completed spend is ignored.
		incidentAt("d", "p1", models.StatusScheduled, now, 9999),
	}

	stats := computeStats(patients, incidents, now)
	assert.Equal(t, "p2", stats.TopPatients[0].ID)
	// p1 and p3 tie at 100; collection order breaks the tie.
	assert.Equal(t, "p1", stats.TopPatients[1].ID)
	assert.Equal(t, "p3", stats.TopPatients[2].ID)
	assert.Equal(t, 2, stats.TopPatients[1].IncidentCount)
}

func TestStatsForPatientScopesToOwnRecords(t *testing.T) {
	st, _ := newTestStore(t)

	stats := st.StatsForPatient("p1")
	assert.Equal(t, 1, stats.TotalPatients)
	assert.Equal(t, 2, stats.TotalIncidents)
	// Only i1 (120, Completed) belongs to p1's completed history.
	assert.Equal(t, 120.0, stats.TotalRevenue)
}
