package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentacare/dental-center-api/routes"
	"github.com/dentacare/dental-center-api/storage"
	"github.com/dentacare/dental-center-api/store"
)

const testSecret = "test_secret_key"

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	st := store.New(storage.NewMemory())
	require.NoError(t, st.Load(context.Background()))

	app := fiber.New()
	secret := []byte(testSecret)
	routes.SetupAuthRoutes(app, st, secret)
	routes.SetupPatientRoutes(app, st, secret)
	routes.SetupIncidentRoutes(app, st, secret)
	routes.SetupDashboardRoutes(app, st, secret)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		blob, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(blob)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	resp, body := doJSON(t, app, "POST", "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app := setupApp(t)
	resp, _ := doJSON(t, app, "POST", "/auth/login", "", map[string]string{
		"email":    "admin@dentacare.in",
		"password": "wrong",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := setupApp(t)
	req := httptest.NewRequest("GET", "/patients/", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminPatientCRUD(t *testing.T) {
	app := setupApp(t)
	token := login(t, app, "admin@dentacare.in", "admin123")

	resp, _ := doJSON(t, app, "GET", "/patients/", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, created := doJSON(t, app, "POST", "/patients/", token, map[string]any{
		"name":       "Walk-in Patient",
		"dob":        "1995-01-20",
		"contact":    "5551234567",
		"bloodGroup": "B-",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	patientID, _ := created["id"].(string)
	require.NotEmpty(t, patientID)

	resp, _ = doJSON(t, app, "PATCH", "/patients/"+patientID, token, map[string]any{
		"name":    "Walk-in Patient",
		"contact": "5559999999",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, "PATCH", "/patients/p-missing", token, map[string]any{"name": "Ghost"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, "DELETE", "/patients/"+patientID, token, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestIncidentCreationValidatesPatient(t *testing.T) {
	app := setupApp(t)
	token := login(t, app, "admin@dentacare.in", "admin123")

	resp, _ := doJSON(t, app, "POST", "/incidents/", token, map[string]any{
		"patientId":       "p-ghost",
		"title":           "Phantom Cleaning",
		"appointmentDate": "2025-09-01T10:00:00",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, created := doJSON(t, app, "POST", "/incidents/", token, map[string]any{
		"patientId":       "p1",
		"title":           "Follow-up Cleaning",
		"appointmentDate": "2025-09-01T10:00:00",
		"cost":            90,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Scheduled", created["status"])
	files, ok := created["files"].([]any)
	require.True(t, ok)
	assert.Empty(t, files)
}

func TestRegisterCreatesPairedPatient(t *testing.T) {
	app := setupApp(t)

	resp, body := doJSON(t, app, "POST", "/auth/register", "", map[string]any{
		"name":     "Nikhil Verma",
		"email":    "nikhil@example.com",
		"password": "newpatient1",
		"dob":      "1998-04-02",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	user, _ := body["user"].(map[string]any)
	patient, _ := body["patient"].(map[string]any)
	require.NotNil(t, user)
	require.NotNil(t, patient)
	assert.Equal(t, "Patient", user["role"])
	assert.Equal(t, patient["id"], user["patientId"])
	assert.Equal(t, user["id"], patient["userId"])
	assert.Empty(t, user["password"])

	// Duplicate registration must conflict.
	resp, _ = doJSON(t, app, "POST", "/auth/register", "", map[string]any{
		"name":     "Nikhil Again",
		"email":    "nikhil@example.com",
		"password": "whatever",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestPatientRoleScoping(t *testing.T) {
	app := setupApp(t)
	token := login(t, app, "shyam@dentacare.in", "patient123")

	// No patient listing for Patient-role callers.
	resp, _ := doJSON(t, app, "GET", "/patients/", token, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Own record is readable, someone else's is not.
	resp, _ = doJSON(t, app, "GET", "/patients/p1", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, app, "GET", "/patients/p2", token, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Mutation is admin-only.
	resp, _ = doJSON(t, app, "POST", "/incidents/", token, map[string]any{
		"patientId":       "p1",
		"title":           "Self Booking",
		"appointmentDate": "2025-09-01T10:00:00",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Dashboard is scoped to own records: p1 owns 2 of the 5 incidents.
	resp, stats := doJSON(t, app, "GET", "/dashboard", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), stats["totalIncidents"])

	// Analytics stays admin-only.
	resp, _ = doJSON(t, app, "GET", "/analytics", token, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAdminDashboardAndCalendar(t *testing.T) {
	app := setupApp(t)
	token := login(t, app, "admin@dentacare.in", "admin123")

	resp, stats := doJSON(t, app, "GET", "/dashboard", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(4), stats["totalPatients"])
	assert.Equal(t, float64(5), stats["totalIncidents"])
	// Seed has i1 (120) and i4 (450) completed.
	assert.Equal(t, float64(570), stats["totalRevenue"])

	resp, day := doJSON(t, app, "GET", "/calendar/day/2025-07-15", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	incidents, ok := day["incidents"].([]any)
	require.True(t, ok)
	assert.Len(t, incidents, 1)

	resp, _ = doJSON(t, app, "GET", "/calendar/day/not-a-date", token, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestIncidentFileLifecycle(t *testing.T) {
	app := setupApp(t)
	token := login(t, app, "admin@dentacare.in", "admin123")

	resp, updated := doJSON(t, app, "POST", "/incidents/i2/files", token, map[string]any{
		"name": "invoice.pdf",
		"type": "application/pdf",
		"size": 1024,
		"url":  "data:application/pdf;base64,JVBERi0xLjQ=",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	files, _ := updated["files"].([]any)
	require.Len(t, files, 1)

	// Disallowed MIME type is rejected.
	resp, _ = doJSON(t, app, "POST", "/incidents/i2/files", token, map[string]any{
		"name": "virus.exe",
		"type": "application/x-msdownload",
		"size": 10,
		"url":  "data:application/x-msdownload;base64,AAAA",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, updated = doJSON(t, app, "DELETE", "/incidents/i2/files/invoice.pdf", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	files, _ = updated["files"].([]any)
	assert.Empty(t, files)

	resp, _ = doJSON(t, app, "DELETE", "/incidents/i2/files/missing.pdf", token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
