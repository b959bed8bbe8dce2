package models

import (
	"strings"
	"time"
)

// Column names as they appear in the sheet header. The bracket-qualified
// check columns are part of the external form contract and must match
// exactly.
const (
	ColDate               = "Date"
	ColTime               = "Time"
	ColSiteName           = "Site Name"
	ColImages             = "Images"
	ColObservation        = "Observation"
	ColInspectedBy        = "Inspected By"
	ColAttendanceRegister = "Documentation Check [Attendance Register]"
	ColHandlingRegister   = "Documentation Check [Handling / Taking Over Register]"
	ColVisitorLogRegister = "Documentation Check [Visitor Log Register]"
	ColGrooming           = "Performance Check [Grooming]"
	ColAlertness          = "Performance Check [Alertness]"
	ColPostDiscipline     = "Performance Check [Post Discipline]"
	ColOverallRating      = "Performance Check [Overall Rating]"
)

// InspectionRecord is the typed projection of one sheet row. All fields are
// defaulted and null-normalized at load time so downstream code never deals
// with missing cells.
type InspectionRecord struct {
	RowIndex int // position in the source table, 0-based, excludes header

	Date       string     // raw cell text
	ParsedDate *time.Time // nil when the raw text matched no known layout
	Time       string

	SiteLabel string // raw composite label, e.g. "4-361-Candid Manesar"
	Zone      string
	UnitCode  string
	SiteName  string

	Images string // comma-separated share links, raw

	AttendanceRegister string
	HandlingRegister   string
	VisitorLogRegister string
	Grooming           string
	Alertness          string
	PostDiscipline     string
	OverallRating      string

	Observation string
	InspectedBy string
}

// nullMarkers are cell values treated as absent by the spreadsheet export.
var nullMarkers = map[string]bool{
	"":      true,
	"nan":   true,
	"null":  true,
	"none":  true,
	"#n/a":  true,
	"#ref!": true,
}

// NormalizeCell trims a raw cell value and collapses null markers to "".
func NormalizeCell(raw string) string {
	v := strings.TrimSpace(raw)
	if nullMarkers[strings.ToLower(v)] {
		return ""
	}
	return v
}

// ParseSiteLabel decodes a composite site label of the form
// "<zone>-<unitcode>-<site name>" into its three attributes.
//
// The split is bounded so free-text site names may contain the separator:
// "4-361-Candid Manesar" -> ("4", "361", "Candid Manesar"). Inputs with
// fewer than two separators keep the whole trimmed string as the site name.
// Never fails.
func ParseSiteLabel(raw string) (zone, unitCode, siteName string) {
	if raw == "" {
		return "", "", ""
	}

	parts := strings.SplitN(raw, "-", 3)
	if len(parts) < 3 {
		return "", "", strings.TrimSpace(raw)
	}

	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), strings.TrimSpace(parts[2])
}

// RecordFromCells projects one raw row (column name -> cell text) into a
// typed InspectionRecord. Every known column is read with an empty-string
// default; unknown columns are ignored.
func RecordFromCells(rowIndex int, cells map[string]string) InspectionRecord {
	get := func(col string) string {
		return NormalizeCell(cells[col])
	}

	rec := InspectionRecord{
		RowIndex:           rowIndex,
		Date:               get(ColDate),
		Time:               get(ColTime),
		SiteLabel:          get(ColSiteName),
		Images:             get(ColImages),
		AttendanceRegister: get(ColAttendanceRegister),
		HandlingRegister:   get(ColHandlingRegister),
		VisitorLogRegister: get(ColVisitorLogRegister),
		Grooming:           get(ColGrooming),
		Alertness:          get(ColAlertness),
		PostDiscipline:     get(ColPostDiscipline),
		OverallRating:      get(ColOverallRating),
		Observation:        get(ColObservation),
		InspectedBy:        get(ColInspectedBy),
	}

	rec.Zone, rec.UnitCode, rec.SiteName = ParseSiteLabel(rec.SiteLabel)
	return rec
}
