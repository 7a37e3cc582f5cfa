package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dentacare/dental-center-api/models"
	"github.com/dentacare/dental-center-api/store"
	"github.com/dentacare/dental-center-api/utils"
)

// scheduler holds the per-process state of the minute sweep. reported
// remembers which overdue incidents were already flagged so each one is
// logged once, not every minute.
type scheduler struct {
	st       *store.Store
	reported map[string]bool
}

// StartCronJobs initializes and starts the cron scheduler for appointment
// reminders and overdue flagging
func StartCronJobs(st *store.Store) *cron.Cron {
	c := cron.New()
	s := &scheduler{st: st, reported: map[string]bool{}}
	// Run every minute to check for appointments in the next hour
	_, err := c.AddFunc("* * * * *", func() { s.sweep(time.Now()) })
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for appointment reminders")
	return c
}

func (s *scheduler) sweep(now time.Time) {
	s.sendAppointmentReminders(now)
	s.flagOverdueIncidents(now)
}

// open reports whether the incident is still waiting to happen.
func open(incident models.Incident) bool {
	return incident.Status == models.StatusScheduled || incident.Status == models.StatusRescheduled
}

// needsReminder reports whether an open incident starts inside the
// reminder window, 55 to 65 minutes from now.
func needsReminder(incident models.Incident, now time.Time) bool {
	if !open(incident) {
		return false
	}
	when := incident.AppointmentDate.Time
	return !when.Before(now.Add(55*time.Minute)) && !when.After(now.Add(65*time.Minute))
}

// isOverdue reports whether an open incident's start time has already
// passed.
func isOverdue(incident models.Incident, now time.Time) bool {
	return open(incident) && incident.AppointmentDate.Time.Before(now)
}

// sendAppointmentReminders checks for upcoming appointments and sends reminders
func (s *scheduler) sendAppointmentReminders(now time.Time) {
	for _, incident := range s.st.Incidents() {
		if !needsReminder(incident, now) {
			continue
		}
		patient, err := s.st.GetPatientByID(incident.PatientID)
		if err != nil {
			log.Printf("Skipping reminder for incident %s: %v", incident.ID, err)
			continue
		}
		if err := sendReminderEmail(&incident, &patient); err != nil {
			log.Printf("Failed to send reminder for incident %s: %v", incident.ID, err)
			continue
		}
		log.Printf("Sent reminder for incident %s to %s", incident.ID, patient.Email)
	}
}

// newlyOverdue returns the open incidents whose start time has passed and
// that were not flagged on an earlier sweep, marking them as reported.
func (s *scheduler) newlyOverdue(now time.Time) []models.Incident {
	var out []models.Incident
	for _, incident := range s.st.Incidents() {
		if !isOverdue(incident, now) || s.reported[incident.ID] {
			continue
		}
		s.reported[incident.ID] = true
		out = append(out, incident)
	}
	return out
}

// flagOverdueIncidents surfaces appointments that came and went without a
// status change. The status itself is left alone: transitions stay with
// the staff who know what actually happened at the chair.
func (s *scheduler) flagOverdueIncidents(now time.Time) {
	for _, incident := range s.newlyOverdue(now) {
		log.Printf("Incident %s (%s) for patient %s is overdue: scheduled %s, still %s",
			incident.ID, incident.Title, incident.PatientID,
			utils.ToIST(incident.AppointmentDate.Time).Format("2006-01-02 15:04:05"),
			incident.Status)
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(incident *models.Incident, patient *models.Patient) error {
	subject := fmt.Sprintf("Reminder: Upcoming Appointment - %s", incident.Title)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your upcoming dental appointment scheduled in one hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Treatment:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
			<li><strong>Status:</strong> %s</li>
		</ul>
		<p>Please arrive on time. If you need to reschedule or cancel, contact us as soon as possible.</p>
		<p>Best regards,</p>
		<p>Your Dental Center Team</p>
	`, patient.Name, incident.Title,
		utils.ToIST(incident.AppointmentDate.Time).Format("2006-01-02 15:04:05"),
		incident.Status)

	return utils.SendEmail(patient.Email, subject, body)
}
