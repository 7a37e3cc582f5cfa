package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentacare/dental-center-api/models"
	"github.com/dentacare/dental-center-api/storage"
	"github.com/dentacare/dental-center-api/store"
)

func incidentAt(status models.IncidentStatus, when time.Time) models.Incident {
	return models.Incident{
		ID:              "i-test",
		PatientID:       "p1",
		Title:           "Checkup",
		Status:          status,
		AppointmentDate: models.NewTime(when),
	}
}

func TestNeedsReminderWindow(t *testing.T) {
	now := time.Date(2025, 7, 15, 9, 0, 0, 0, time.Local)

	cases := []struct {
		name   string
		offset time.Duration
		want   bool
	}{
		{"just before window", 54 * time.Minute, false},
		{"window start", 55 * time.Minute, true},
		{"one hour out", 60 * time.Minute, true},
		{"window end", 65 * time.Minute, true},
		{"just after window", 66 * time.Minute, false},
		{"already started", -5 * time.Minute, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inc := incidentAt(models.StatusScheduled, now.Add(tc.offset))
			assert.Equal(t, tc.want, needsReminder(inc, now))
		})
	}
}

func TestNeedsReminderStatusFilter(t *testing.T) {
	now := time.Date(2025, 7, 15, 9, 0, 0, 0, time.Local)
	when := now.Add(60 * time.Minute)

	assert.True(t, needsReminder(incidentAt(models.StatusScheduled, when), now))
	assert.True(t, needsReminder(incidentAt(models.StatusRescheduled, when), now))
	assert.False(t, needsReminder(incidentAt(models.StatusCompleted, when), now))
	assert.False(t, needsReminder(incidentAt(models.StatusCancelled, when), now))
	assert.False(t, needsReminder(incidentAt(models.StatusInProgress, when), now))
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2025, 7, 15, 9, 0, 0, 0, time.Local)

	assert.True(t, isOverdue(incidentAt(models.StatusScheduled, now.Add(-time.Minute)), now))
	assert.True(t, isOverdue(incidentAt(models.StatusRescheduled, now.Add(-time.Hour)), now))
	assert.False(t, isOverdue(incidentAt(models.StatusScheduled, now.Add(time.Minute)), now))
	assert.False(t, isOverdue(incidentAt(models.StatusScheduled, now), now))
	assert.False(t, isOverdue(incidentAt(models.StatusCompleted, now.Add(-time.Hour)), now))
	assert.False(t, isOverdue(incidentAt(models.StatusCancelled, now.Add(-time.Hour)), now))
}

func TestNewlyOverdueFlagsEachIncidentOnce(t *testing.T) {
	ctx := context.Background()
	st := store.New(storage.NewMemory())
	require.NoError(t, st.Load(ctx))

	s := &scheduler{st: st, reported: map[string]bool{}}

	// Far past the whole seeded calendar: every still-open appointment
	// has come and gone.
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.Local)

	first := s.newlyOverdue(now)
	var ids []string
	for _, inc := range first {
		ids = append(ids, inc.ID)
	}
	assert.Equal(t, []string{"i2", "i5"}, ids)

	// A second sweep stays quiet about the same incidents.
	assert.Empty(t, s.newlyOverdue(now))

	// A fresh open appointment that slips past gets flagged on the next
	// sweep, and only once.
	created, err := st.CreateIncident(ctx, models.Incident{
		PatientID:       "p1",
		Title:           "Missed cleaning",
		AppointmentDate: models.NewTime(now.Add(-2 * time.Hour)),
	})
	require.NoError(t, err)

	next := s.newlyOverdue(now)
	require.Len(t, next, 1)
	assert.Equal(t, created.ID, next[0].ID)
	assert.Empty(t, s.newlyOverdue(now))
}
