// Package report renders per-record inspection documents and exports
// date-filtered batches as ZIP-bundled PDFs.
package report

import (
	"github.com/sgvops/night-check-reporter/internal/drive"
	"github.com/sgvops/night-check-reporter/internal/models"
)

// Template placeholder keys. The template must carry a {{key}} placeholder
// for every scalar key; images are appended after the body.
const (
	KeyZone               = "zone"
	KeyUnitCode           = "unit_code"
	KeySiteName           = "site_name"
	KeyDate               = "date"
	KeyTime               = "time"
	KeyAttendanceRegister = "attendance_register"
	KeyHandlingRegister   = "handling_register"
	KeyMaterialRegister   = "material_register"
	KeyGrooming           = "grooming"
	KeyAlertness          = "alertness"
	KeyPostDiscipline     = "post_discipline"
	KeyOverallRating      = "overall_rating"
	KeyObservation        = "observation"
	KeyInspectedBy        = "inspected_by"
)

// RenderContext is the flat field mapping handed to the renderer for one
// record. No value is ever a null marker; absent cells arrive as "".
type RenderContext struct {
	Fields map[string]string
	Images []drive.Image
}

// BuildContext assembles the render context for one record. The record is
// already null-normalized at load time, so this is a straight mapping plus
// the resolved image sequence (possibly empty).
func BuildContext(rec models.InspectionRecord, images []drive.Image) RenderContext {
	return RenderContext{
		Fields: map[string]string{
			KeyZone:               rec.Zone,
			KeyUnitCode:           rec.UnitCode,
			KeySiteName:           rec.SiteName,
			KeyDate:               rec.Date,
			KeyTime:               rec.Time,
			KeyAttendanceRegister: rec.AttendanceRegister,
			KeyHandlingRegister:   rec.HandlingRegister,
			KeyMaterialRegister:   rec.VisitorLogRegister,
			KeyGrooming:           rec.Grooming,
			KeyAlertness:          rec.Alertness,
			KeyPostDiscipline:     rec.PostDiscipline,
			KeyOverallRating:      rec.OverallRating,
			KeyObservation:        rec.Observation,
			KeyInspectedBy:        rec.InspectedBy,
		},
		Images: images,
	}
}
