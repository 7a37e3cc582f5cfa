package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dentacare/dental-center-api/models"
	"github.com/dentacare/dental-center-api/store"
	"github.com/dentacare/dental-center-api/utils"
)

// ownPatientRecord reports whether the caller is a Patient-role user
// looking at its own record.
func ownPatientRecord(c *fiber.Ctx, patientID string) bool {
	callerPatient, _ := c.Locals("patientID").(string)
	return callerPatient != "" && callerPatient == patientID
}

func isAdmin(c *fiber.Ctx) bool {
	role, _ := c.Locals("role").(string)
	return role == string(models.RoleAdmin)
}

// GetAllPatients godoc
// @Summary Get all patients
// @Description Get all patients
// @Tags patients
// @Produce json
// @Success 200 {array} models.Patient
// @Router /patients [get]
func GetAllPatients(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(st.Patients())
	}
}

// GetPatient godoc
// @Summary Get a patient by ID
// @Description Get a patient by ID
// @Tags patients
// @Produce json
// @Param id path string true "Patient ID"
// @Success 200 {object} models.Patient
// @Failure 404 {object} utils.ErrorResponse
// @Router /patients/{id} [get]
func GetPatient(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if !isAdmin(c) && !ownPatientRecord(c, id) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Access denied",
			})
		}
		patient, err := st.GetPatientByID(id)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
				Message: "Patient not found",
				Error:   err.Error(),
			})
		}
		return c.JSON(patient)
	}
}

// GetPatientIncidents returns the patient's appointment history.
func GetPatientIncidents(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if !isAdmin(c) && !ownPatientRecord(c, id) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Access denied",
			})
		}
		if _, err := st.GetPatientByID(id); err != nil {
			return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
				Message: "Patient not found",
				Error:   err.Error(),
			})
		}
		return c.JSON(st.GetIncidentsByPatient(id))
	}
}

// CreatePatient godoc
// @Summary Create a new patient
// @Description Create a new patient
// @Tags patients
// @Accept json
// @Produce json
// @Param patient body models.Patient true "Patient"
// @Success 201 {object} models.Patient
// @Failure 400 {object} utils.ErrorResponse
// @Router /patients [post]
func CreatePatient(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var patient models.Patient
		if err := c.BodyParser(&patient); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Failed to parse request body",
				Error:   err.Error(),
			})
		}
		if patient.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Patient name is required",
			})
		}
		created, err := st.CreatePatient(c.Context(), patient)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to create patient",
				Error:   err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	}
}

// UpdatePatient godoc
// @Summary Update a patient by ID
// @Description Update a patient by ID
// @Tags patients
// @Accept json
// @Produce json
// @Param id path string true "Patient ID"
// @Param patient body models.Patient true "Patient"
// @Success 200 {object} models.Patient
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /patients/{id} [patch]
func UpdatePatient(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var patient models.Patient
		if err := c.BodyParser(&patient); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Failed to parse request body",
				Error:   err.Error(),
			})
		}
		patient.ID = c.Params("id")
		updated, err := st.UpdatePatient(c.Context(), patient)
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
				Message: "Patient not found",
				Error:   err.Error(),
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to update patient",
				Error:   err.Error(),
			})
		}
		return c.JSON(updated)
	}
}

// DeletePatient godoc
// @Summary Delete a patient by ID
// @Description Delete a patient and all of its incidents
// @Tags patients
// @Param id path string true "Patient ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /patients/{id} [delete]
func DeletePatient(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := st.DeletePatient(c.Context(), c.Params("id"))
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
				Message: "Patient not found",
				Error:   err.Error(),
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to delete patient",
				Error:   err.Error(),
			})
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
