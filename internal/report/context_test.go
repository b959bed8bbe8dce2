package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgvops/night-check-reporter/internal/drive"
	"github.com/sgvops/night-check-reporter/internal/models"
)

var allKeys = []string{
	KeyZone, KeyUnitCode, KeySiteName, KeyDate, KeyTime,
	KeyAttendanceRegister, KeyHandlingRegister, KeyMaterialRegister,
	KeyGrooming, KeyAlertness, KeyPostDiscipline, KeyOverallRating,
	KeyObservation, KeyInspectedBy,
}

func TestBuildContext(t *testing.T) {
	rec := models.InspectionRecord{
		Date:               "2024-05-01",
		Time:               "23:30",
		Zone:               "4",
		UnitCode:           "361",
		SiteName:           "Candid Manesar",
		AttendanceRegister: "Yes",
		HandlingRegister:   "Yes",
		VisitorLogRegister: "No",
		Grooming:           "Good",
		Alertness:          "Good",
		PostDiscipline:     "Fair",
		OverallRating:      "4",
		Observation:        "All quiet",
		InspectedBy:        "R. Sharma",
	}
	images := []drive.Image{{FileID: "a", Data: []byte("x")}}

	rc := BuildContext(rec, images)

	assert.Equal(t, "4", rc.Fields[KeyZone])
	assert.Equal(t, "361", rc.Fields[KeyUnitCode])
	assert.Equal(t, "Candid Manesar", rc.Fields[KeySiteName])
	// The visitor log column feeds the template's material_register slot
	assert.Equal(t, "No", rc.Fields[KeyMaterialRegister])
	assert.Equal(t, "4", rc.Fields[KeyOverallRating])
	require.Len(t, rc.Images, 1)
}

func TestBuildContext_EmptyRecord(t *testing.T) {
	// Every declared key must be present and non-nil even for a blank row.
	rc := BuildContext(models.InspectionRecord{}, nil)

	assert.Len(t, rc.Fields, len(allKeys))
	for _, key := range allKeys {
		v, ok := rc.Fields[key]
		assert.True(t, ok, "missing key %q", key)
		assert.Equal(t, "", v)
	}
	assert.Empty(t, rc.Images)
}
