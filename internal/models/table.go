package models

import (
	"sort"
	"time"
)

// SheetTable holds one loaded spreadsheet in row order. Immutable once
// built; a reload replaces the whole table.
type SheetTable struct {
	SheetID  string
	Columns  []string
	Records  []InspectionRecord
	LoadedAt time.Time
}

// Dates returns the sorted distinct calendar dates of all rows whose Date
// cell parsed. Rows with unparseable dates stay in the table but contribute
// nothing here.
func (t *SheetTable) Dates() []time.Time {
	seen := make(map[time.Time]bool)
	var dates []time.Time
	for _, rec := range t.Records {
		if rec.ParsedDate == nil {
			continue
		}
		day := rec.ParsedDate.Truncate(24 * time.Hour)
		if !seen[day] {
			seen[day] = true
			dates = append(dates, day)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// RecordsForDate returns the rows whose parsed date falls on the given
// calendar day, preserving table order.
func (t *SheetTable) RecordsForDate(day time.Time) []InspectionRecord {
	day = day.Truncate(24 * time.Hour)
	var matched []InspectionRecord
	for _, rec := range t.Records {
		if rec.ParsedDate == nil {
			continue
		}
		if rec.ParsedDate.Truncate(24 * time.Hour).Equal(day) {
			matched = append(matched, rec)
		}
	}
	return matched
}
