package store

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dentacare/dental-center-api/models"
)

// Built-in dataset written on first run: one admin, three patient
// accounts paired with their patient records, and five incidents covering
// the common statuses. Also the reference fixture for round-trip tests.

func hashPassword(plain string) string {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Warning: failed to hash seed password: %v", err)
		return ""
	}
	return string(hashed)
}

func mustTime(value string) models.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return models.NewTime(t)
		}
	}
	log.Printf("Warning: bad seed timestamp %q", value)
	return models.Time{}
}

func timePtr(value string) *models.Time {
	t := mustTime(value)
	return &t
}

func costPtr(v float64) *float64 { return &v }

func seedUsers() []models.User {
	return []models.User{
		{
			ID:        "1",
			Role:      models.RoleAdmin,
			Email:     "admin@dentacare.in",
			Password:  hashPassword("admin123"),
			Name:      "Dr. Anika Sharma",
			Avatar:    "https://images.unsplash.com/photo-1559839734-2b71ea197ec2?w=100&h=100&fit=crop&crop=face",
			CreatedAt: mustTime("2024-01-01T09:00:00Z"),
		},
		{
			ID:        "2",
			Role:      models.RolePatient,
			Email:     "shyam@dentacare.in",
			Password:  hashPassword("patient123"),
			PatientID: "p1",
			Name:      "Shyam Kalyan",
			CreatedAt: mustTime("2024-01-15T10:00:00Z"),
		},
		{
			ID:        "3",
			Role:      models.RolePatient,
			Email:     "jaspreet@dentacare.in",
			Password:  hashPassword("patient123"),
			PatientID: "p2",
			Name:      "Jaspreet Bhati",
			CreatedAt: mustTime("2024-02-10T14:30:00Z"),
		},
		{
			ID:        "4",
			Role:      models.RolePatient,
			Email:     "gaurav@dentacare.in",
			Password:  hashPassword("patient123"),
			PatientID: "p3",
			Name:      "Gaurav Kumar",
			CreatedAt: mustTime("2024-03-05T09:15:00Z"),
		},
	}
}

func seedPatients() []models.Patient {
	return []models.Patient{
		{
			ID:               "p1",
			Name:             "Shyam Kalyan",
			DOB:              mustTime("1990-05-10"),
			Contact:          "1234567890",
			Email:            "shyam@dentacare.in",
			Address:          "123 Main St, Delhi, India",
			HealthInfo:       "No allergies, previous root canal treatment",
			EmergencyContact: "9876543210",
			BloodGroup:       "O+",
			UserID:           "2",
			CreatedAt:        mustTime("2024-01-15T10:00:00Z"),
		},
		{
			ID:               "p2",
			Name:             "Jaspreet Bhati",
			DOB:              mustTime("1985-08-22"),
			Contact:          "2345678901",
			Email:            "jaspreet@dentacare.in",
			Address:          "456 Prem Nagar, Delhi, India",
			HealthInfo:       "Allergic to penicillin, diabetes type 2",
			EmergencyContact: "8765432109",
			BloodGroup:       "A+",
			UserID:           "3",
			CreatedAt:        mustTime("2024-02-10T14:30:00Z"),
		},
		{
			ID:               "p3",
			Name:             "Gaurav Kumar",
			DOB:              mustTime("1992-12-03"),
			Contact:          "3456789012",
			Email:            "gaurav@dentacare.in",
			Address:          "789 Dwarka Expressway, Delhi, India",
			HealthInfo:       "No known allergies, regular smoker",
			EmergencyContact: "7654321098",
			BloodGroup:       "B+",
			UserID:           "4",
			CreatedAt:        mustTime("2024-03-05T09:15:00Z"),
		},
		{
			ID:               "p4",
			Name:             "Ruhani Arora",
			DOB:              mustTime("1988-07-14"),
			Contact:          "4567890123",
			Email:            "ruhani@dentacare.in",
			Address:          "3 Shahdara, Delhi, India",
			HealthInfo:       "Hypertension, no drug allergies",
			EmergencyContact: "6543210987",
			BloodGroup:       "AB+",
			CreatedAt:        mustTime("2024-04-12T16:45:00Z"),
		},
	}
}

func seedIncidents() []models.Incident {
	return []models.Incident{
		{
			ID:              "i1",
			PatientID:       "p1",
			Title:           "Routine Cleaning",
			Description:     "Regular dental cleaning and check-up",
			Comments:        "Good oral hygiene, minor plaque buildup",
			AppointmentDate: mustTime("2025-07-15T10:00:00"),
			Cost:            costPtr(120),
			Treatment:       "Professional cleaning, fluoride treatment",
			Status:          models.StatusCompleted,
			NextDate:        timePtr("2025-10-15T10:00:00"),
			CreatedAt:       mustTime("2025-06-20T10:00:00Z"),
			Files: []models.FileAttachment{
				{
					Name: "cleaning_report.pdf",
					Type: "application/pdf",
					Size: 1024,
					URL:  "data:application/pdf;base64,JVBERi0xLjQKJcOkw6o=",
				},
			},
		},
		{
			ID:              "i2",
			PatientID:       "p1",
			Title:           "Toothache Treatment",
			Description:     "Upper molar pain and sensitivity",
			Comments:        "Sensitive to cold, possible cavity",
			AppointmentDate: mustTime("2025-07-22T14:30:00"),
			Cost:            costPtr(280),
			Treatment:       "Cavity filling, pain relief medication",
			Status:          models.StatusScheduled,
			CreatedAt:       mustTime("2025-06-25T14:30:00Z"),
			Files:           []models.FileAttachment{},
		},
		{
			ID:              "i3",
			PatientID:       "p2",
			Title:           "Crown Installation",
			Description:     "Installing ceramic crown on damaged tooth",
			Comments:        "Previous root canal, ready for crown",
			AppointmentDate: mustTime("2025-07-08T11:00:00"),
			Cost:            costPtr(850),
			Treatment:       "Ceramic crown installation",
			Status:          models.StatusInProgress,
			NextDate:        timePtr("2025-07-20T11:00:00"),
			CreatedAt:       mustTime("2025-06-15T11:00:00Z"),
			Files: []models.FileAttachment{
				{
					Name: "xray_crown.png",
					Type: "image/png",
					Size: 2048,
					URL:  "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8/5+hHgAHggJ/PchI7wAAAABJRU5ErkJggg==",
				},
			},
		},
		{
			ID:              "i4",
			PatientID:       "p3",
			Title:           "Wisdom Tooth Extraction",
			Description:     "Removal of impacted wisdom tooth",
			Comments:        "Impacted lower right wisdom tooth causing pain",
			AppointmentDate: mustTime("2025-07-05T09:00:00"),
			Cost:            costPtr(450),
			Treatment:       "Surgical extraction, post-op care",
			Status:          models.StatusCompleted,
			NextDate:        timePtr("2025-07-12T09:00:00"),
			CreatedAt:       mustTime("2025-06-10T09:00:00Z"),
			Files: []models.FileAttachment{
				{
					Name: "post_extraction.jpg",
					Type: "image/jpeg",
					Size: 3072,
					URL:  "data:image/jpeg;base64,/9j/4AAQSkZJRgABAQAAAQABAAD/2wBDAAYEBQYFBAYGBQYHBwYIChAKCgkJChQODwwQFxQYGBcUFhYaHSUfGhsjHBYWICwgIyYnKSopGR8tMC0oMCUoKSj/wAARCAABAAEDASIAAhEBAxEB/8QAFQABAQAAAAAAAAAAAAAAAAAAAAv/xAAUEAEAAAAAAAAAAAAAAAAAAAAA/8QAFQEBAQAAAAAAAAAAAAAAAAAAAAX/xAAUEQEAAAAAAAAAAAAAAAAAAAAA/9oADAMBAAIRAxEAPwCdABmX/9k=",
				},
			},
		},
		{
			ID:              "i5",
			PatientID:       "p4",
			Title:           "Dental Implant Consultation",
			Description:     "Initial consultation for dental implant",
			Comments:        "Missing upper incisor, good bone density",
			AppointmentDate: mustTime("2025-07-30T15:00:00"),
			Cost:            costPtr(200),
			Treatment:       "Consultation and treatment planning",
			Status:          models.StatusScheduled,
			NextDate:        timePtr("2025-08-15T15:00:00"),
			CreatedAt:       mustTime("2025-06-28T15:00:00Z"),
			Files:           []models.FileAttachment{},
		},
	}
}
