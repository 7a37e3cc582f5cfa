package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeUnmarshalFormats(t *testing.T) {
	cases := map[string]string{
		"rfc3339":   `"2024-01-15T10:00:00Z"`,
		"zoneless":  `"2025-07-15T10:00:00"`,
		"shortform": `"2025-07-15T10:00"`,
		"dateonly":  `"1990-05-10"`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			var parsed Time
			require.NoError(t, json.Unmarshal([]byte(raw), &parsed))
			assert.False(t, parsed.IsZero())
		})
	}

	var nullTime Time
	require.NoError(t, json.Unmarshal([]byte("null"), &nullTime))
	assert.True(t, nullTime.IsZero())
}

func TestIncidentLegacyDateAliases(t *testing.T) {
	for _, alias := range []string{"date", "scheduledDate"} {
		raw := `{"id":"i9","patientId":"p1","title":"Old Record","` + alias + `":"2025-07-01T09:00:00"}`
		var inc Incident
		require.NoError(t, json.Unmarshal([]byte(raw), &inc))
		assert.False(t, inc.AppointmentDate.IsZero(), alias)
		assert.Equal(t, 2025, inc.AppointmentDate.Year())
	}

	// appointmentDate wins when both are present.
	raw := `{"id":"i9","patientId":"p1","title":"Both","appointmentDate":"2025-08-01T09:00:00","date":"2020-01-01T09:00:00"}`
	var inc Incident
	require.NoError(t, json.Unmarshal([]byte(raw), &inc))
	assert.Equal(t, 2025, inc.AppointmentDate.Year())
}

func TestIncidentValidate(t *testing.T) {
	base := func() Incident {
		return Incident{
			PatientID:       "p1",
			Title:           "Cleaning",
			AppointmentDate: NewTime(time.Date(2025, 7, 15, 10, 0, 0, 0, time.Local)),
		}
	}

	valid := base()
	assert.NoError(t, valid.Validate())

	missingPatient := base()
	missingPatient.PatientID = ""
	assert.Error(t, missingPatient.Validate())

	negativeCost := base()
	bad := -1.0
	negativeCost.Cost = &bad
	assert.Error(t, negativeCost.Validate())

	badStatus := base()
	badStatus.Status = "Imagined"
	assert.Error(t, badStatus.Validate())

	backwardsNext := base()
	next := NewTime(backwardsNext.AppointmentDate.Add(-time.Hour))
	backwardsNext.NextDate = &next
	assert.Error(t, backwardsNext.Validate())

	forwardNext := base()
	after := NewTime(forwardNext.AppointmentDate.Add(time.Hour))
	forwardNext.NextDate = &after
	assert.NoError(t, forwardNext.Validate())
}

func TestCostValueTreatsNilAsZero(t *testing.T) {
	var inc Incident
	assert.Equal(t, 0.0, inc.CostValue())
	v := 120.0
	inc.Cost = &v
	assert.Equal(t, 120.0, inc.CostValue())
}
