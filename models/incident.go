package models

import (
	"encoding/json"
	"fmt"
)

type IncidentStatus string

const (
	StatusScheduled   IncidentStatus = "Scheduled"
	StatusInProgress  IncidentStatus = "In Progress"
	StatusCompleted   IncidentStatus = "Completed"
	StatusCancelled   IncidentStatus = "Cancelled"
	StatusRescheduled IncidentStatus = "Rescheduled"
)

// Statuses lists every valid incident status. Transitions are not
// constrained: the edit form may move an incident between any two states.
var Statuses = []IncidentStatus{
	StatusScheduled,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusRescheduled,
}

func (s IncidentStatus) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// FileAttachment is owned by its parent incident. URL holds either the
// file content itself as a data URI or, for offloaded uploads, an
// external content-store URL.
type FileAttachment struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Size       int64  `json:"size"`
	URL        string `json:"url"`
	UploadedAt Time   `json:"uploadedAt,omitempty"`
}

// Incident is an appointment/treatment record, the central transactional
// entity of the clinic.
type Incident struct {
	ID              string           `json:"id"`
	PatientID       string           `json:"patientId"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Comments        string           `json:"comments"`
	AppointmentDate Time             `json:"appointmentDate"`
	Cost            *float64         `json:"cost"`
	Treatment       string           `json:"treatment"`
	Status          IncidentStatus   `json:"status"`
	NextDate        *Time            `json:"nextAppointmentDate"`
	Files           []FileAttachment `json:"files"`
	CreatedAt       Time             `json:"createdAt"`
	UpdatedAt       Time             `json:"updatedAt,omitempty"`
}

// UnmarshalJSON migrates records still using the legacy date field
// aliases ("date", "scheduledDate") onto appointmentDate.
func (i *Incident) UnmarshalJSON(data []byte) error {
	type alias Incident
	aux := struct {
		*alias
		LegacyDate      *Time `json:"date"`
		LegacyScheduled *Time `json:"scheduledDate"`
	}{alias: (*alias)(i)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if i.AppointmentDate.IsZero() {
		switch {
		case aux.LegacyDate != nil && !aux.LegacyDate.IsZero():
			i.AppointmentDate = *aux.LegacyDate
		case aux.LegacyScheduled != nil && !aux.LegacyScheduled.IsZero():
			i.AppointmentDate = *aux.LegacyScheduled
		}
	}
	return nil
}

// Validate checks the invariants that hold for every stored incident.
// Referential integrity of PatientID is the store's responsibility.
func (i *Incident) Validate() error {
	if i.PatientID == "" {
		return fmt.Errorf("incident requires a patientId")
	}
	if i.Title == "" {
		return fmt.Errorf("incident requires a title")
	}
	if i.AppointmentDate.IsZero() {
		return fmt.Errorf("incident requires an appointmentDate")
	}
	if i.Status != "" && !i.Status.Valid() {
		return fmt.Errorf("unknown incident status %q", i.Status)
	}
	if i.Cost != nil && *i.Cost < 0 {
		return fmt.Errorf("incident cost must be non-negative")
	}
	if i.NextDate != nil && !i.NextDate.IsZero() && !i.NextDate.After(i.AppointmentDate.Time) {
		return fmt.Errorf("nextAppointmentDate must be after appointmentDate")
	}
	return nil
}

// CostValue treats a missing cost as zero for aggregation.
func (i *Incident) CostValue() float64 {
	if i.Cost == nil {
		return 0
	}
	return *i.Cost
}
