package store

import (
	"sort"
	"time"

	"github.com/dentacare/dental-center-api/models"
	"github.com/dentacare/dental-center-api/utils"
)

// DashboardStats is the aggregate block behind the dashboard landing
// page. Everything is re-derived from the live collections on each call.
type DashboardStats struct {
	TotalPatients        int               `json:"totalPatients"`
	TotalIncidents       int               `json:"totalIncidents"`
	CompletedTreatments  int               `json:"completedTreatments"`
	PendingAppointments  int               `json:"pendingAppointments"`
	InProgressTreatments int               `json:"inProgressTreatments"`
	TotalRevenue         float64           `json:"totalRevenue"`
	MonthlyRevenue       float64           `json:"monthlyRevenue"`
	UpcomingAppointments []models.Incident `json:"upcomingAppointments"`
	TopPatients          []TopPatient      `json:"topPatients"`
	ThisMonthIncidents   int               `json:"thisMonthIncidents"`
	LastUpdated          time.Time         `json:"lastUpdated"`
}

// TopPatient ranks a patient by spend across completed treatments.
type TopPatient struct {
	models.Patient
	IncidentCount int     `json:"incidentCount"`
	TotalSpent    float64 `json:"totalSpent"`
}

// Stats aggregates across the whole clinic.
func (s *Store) Stats() DashboardStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return computeStats(s.patients, s.incidents, time.Now())
}

// StatsForPatient restricts the aggregates to one patient's own records,
// for the patient-role dashboard.
func (s *Store) StatsForPatient(patientID string) DashboardStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var patients []models.Patient
	for _, p := range s.patients {
		if p.ID == patientID {
			patients = append(patients, p)
		}
	}
	var incidents []models.Incident
	for _, inc := range s.incidents {
		if inc.PatientID == patientID {
			incidents = append(incidents, inc)
		}
	}
	return computeStats(patients, incidents, time.Now())
}

func computeStats(patients []models.Patient, incidents []models.Incident, now time.Time) DashboardStats {
	monthStart, monthEnd := utils.MonthBounds(now)

	stats := DashboardStats{
		TotalPatients:        len(patients),
		TotalIncidents:       len(incidents),
		UpcomingAppointments: []models.Incident{},
		LastUpdated:          now,
	}

	for _, inc := range incidents {
		d := inc.AppointmentDate.Time
		inMonth := !d.Before(monthStart) && !d.After(monthEnd)
		if inMonth {
			stats.ThisMonthIncidents++
		}
		switch inc.Status {
		case models.StatusCompleted:
			stats.CompletedTreatments++
			stats.TotalRevenue += inc.CostValue()
			if inMonth {
				stats.MonthlyRevenue += inc.CostValue()
			}
		case models.StatusScheduled:
			stats.PendingAppointments++
		case models.StatusInProgress:
			stats.InProgressTreatments++
		}
		if d.After(now) && inc.Status != models.StatusCompleted {
			stats.UpcomingAppointments = append(stats.UpcomingAppointments, inc)
		}
	}

	sort.SliceStable(stats.UpcomingAppointments, func(i, j int) bool {
		return stats.UpcomingAppointments[i].AppointmentDate.Before(
			stats.UpcomingAppointments[j].AppointmentDate.Time)
	})
	if len(stats.UpcomingAppointments) > 10 {
		stats.UpcomingAppointments = stats.UpcomingAppointments[:10]
	}

	top := make([]TopPatient, 0, len(patients))
	for _, p := range patients {
		entry := TopPatient{Patient: p}
		for _, inc := range incidents {
			if inc.PatientID != p.ID {
				continue
			}
			entry.IncidentCount++
			if inc.Status == models.StatusCompleted {
				entry.TotalSpent += inc.CostValue()
			}
		}
		top = append(top, entry)
	}
	// Stable sort keeps collection order on equal spend.
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].TotalSpent > top[j].TotalSpent
	})
	if len(top) > 5 {
		top = top[:5]
	}
	stats.TopPatients = top

	return stats
}
