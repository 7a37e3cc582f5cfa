package controllers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dentacare/dental-center-api/models"
	"github.com/dentacare/dental-center-api/store"
	"github.com/dentacare/dental-center-api/utils"
)

func incidentStoreError(c *fiber.Ctx, err error, action string) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Incident not found",
			Error:   err.Error(),
		})
	case errors.Is(err, store.ErrPatientNotFound):
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Referenced patient does not exist",
			Error:   err.Error(),
		})
	default:
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to " + action + " incident",
			Error:   err.Error(),
		})
	}
}

// GetAllIncidents godoc
// @Summary Get all incidents
// @Description Get all incidents; Patient-role callers only see their own
// @Tags incidents
// @Produce json
// @Success 200 {array} models.Incident
// @Router /incidents [get]
func GetAllIncidents(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if isAdmin(c) {
			return c.JSON(st.Incidents())
		}
		patientID, _ := c.Locals("patientID").(string)
		return c.JSON(st.GetIncidentsByPatient(patientID))
	}
}

// GetIncident godoc
// @Summary Get an incident by ID
// @Description Get an incident by ID
// @Tags incidents
// @Produce json
// @Param id path string true "Incident ID"
// @Success 200 {object} models.Incident
// @Failure 404 {object} utils.ErrorResponse
// @Router /incidents/{id} [get]
func GetIncident(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		incident, err := st.GetIncidentByID(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
				Message: "Incident not found",
				Error:   err.Error(),
			})
		}
		if !isAdmin(c) && !ownPatientRecord(c, incident.PatientID) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Access denied",
			})
		}
		return c.JSON(incident)
	}
}

// CreateIncident godoc
// @Summary Create a new incident
// @Description Create an appointment/treatment record for a patient
// @Tags incidents
// @Accept json
// @Produce json
// @Param incident body models.Incident true "Incident"
// @Success 201 {object} models.Incident
// @Failure 400 {object} utils.ErrorResponse
// @Router /incidents [post]
func CreateIncident(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var incident models.Incident
		if err := c.BodyParser(&incident); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Failed to parse request body",
				Error:   err.Error(),
			})
		}
		created, err := st.CreateIncident(c.Context(), incident)
		if err != nil {
			return incidentStoreError(c, err, "create")
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	}
}

// UpdateIncident godoc
// @Summary Update an incident by ID
// @Description Update an incident by ID
// @Tags incidents
// @Accept json
// @Produce json
// @Param id path string true "Incident ID"
// @Param incident body models.Incident true "Incident"
// @Success 200 {object} models.Incident
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /incidents/{id} [patch]
func UpdateIncident(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var incident models.Incident
		if err := c.BodyParser(&incident); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Failed to parse request body",
				Error:   err.Error(),
			})
		}
		incident.ID = c.Params("id")
		updated, err := st.UpdateIncident(c.Context(), incident)
		if err != nil {
			return incidentStoreError(c, err, "update")
		}
		return c.JSON(updated)
	}
}

// DeleteIncident godoc
// @Summary Delete an incident by ID
// @Description Delete an incident by ID
// @Tags incidents
// @Param id path string true "Incident ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /incidents/{id} [delete]
func DeleteIncident(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := st.DeleteIncident(c.Context(), c.Params("id"))
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
				Message: "Incident not found",
				Error:   err.Error(),
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to delete incident",
				Error:   err.Error(),
			})
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// AddIncidentFile attaches a file to an incident. Content arrives as a
// data URI; oversized files are offloaded to Cloudinary when an account
// is configured, keeping only the URL on the record.
func AddIncidentFile(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		incident, err := st.GetIncidentByID(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
				Message: "Incident not found",
				Error:   err.Error(),
			})
		}

		var file models.FileAttachment
		if err := c.BodyParser(&file); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Failed to parse request body",
				Error:   err.Error(),
			})
		}
		if err := utils.ValidateAttachment(file); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Invalid attachment",
				Error:   err.Error(),
			})
		}
		file.UploadedAt = models.NewTime(time.Now())

		if file.Size > utils.OffloadThreshold && utils.CloudinaryEnabled() {
			url, err := utils.UploadAttachment(file.URL, incident.ID+"-"+file.Name)
			if err != nil {
				log.Printf("Cloudinary upload failed, keeping inline content: %v", err)
			} else {
				file.URL = url
			}
		}

		files := make([]models.FileAttachment, len(incident.Files), len(incident.Files)+1)
		copy(files, incident.Files)
		incident.Files = append(files, file)
		updated, err := st.UpdateIncident(c.Context(), incident)
		if err != nil {
			return incidentStoreError(c, err, "update")
		}
		return c.Status(fiber.StatusCreated).JSON(updated)
	}
}

// RemoveIncidentFile detaches the named file from an incident.
func RemoveIncidentFile(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		incident, err := st.GetIncidentByID(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
				Message: "Incident not found",
				Error:   err.Error(),
			})
		}

		name := c.Params("name")
		// Files shares its backing array with the stored record, so build
		// a fresh slice rather than filtering in place.
		kept := make([]models.FileAttachment, 0, len(incident.Files))
		removed := false
		for _, f := range incident.Files {
			if f.Name == name && !removed {
				removed = true
				continue
			}
			kept = append(kept, f)
		}
		if !removed {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Attachment not found",
			})
		}
		incident.Files = kept

		updated, err := st.UpdateIncident(c.Context(), incident)
		if err != nil {
			return incidentStoreError(c, err, "update")
		}
		return c.JSON(updated)
	}
}
