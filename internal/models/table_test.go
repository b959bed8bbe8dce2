package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	t = t.UTC()
	return &t
}

func TestSheetTable_Dates(t *testing.T) {
	table := &SheetTable{
		Records: []InspectionRecord{
			{RowIndex: 0, ParsedDate: day("2024-05-02")},
			{RowIndex: 1, ParsedDate: day("2024-05-01")},
			{RowIndex: 2, ParsedDate: day("2024-05-01")},
			{RowIndex: 3, ParsedDate: nil}, // unparseable date row
		},
	}

	dates := table.Dates()
	assert.Len(t, dates, 2)
	assert.Equal(t, "2024-05-01", dates[0].Format("2006-01-02"))
	assert.Equal(t, "2024-05-02", dates[1].Format("2006-01-02"))
}

func TestSheetTable_RecordsForDate_Partition(t *testing.T) {
	table := &SheetTable{
		Records: []InspectionRecord{
			{RowIndex: 0, ParsedDate: day("2024-05-01")},
			{RowIndex: 1, ParsedDate: day("2024-05-02")},
			{RowIndex: 2, ParsedDate: day("2024-05-01")},
			{RowIndex: 3, ParsedDate: nil},
		},
	}

	selected := *day("2024-05-01")
	matched := table.RecordsForDate(selected)

	// Every row is in exactly one of: matched, other date, unparseable.
	assert.Len(t, matched, 2)
	assert.Equal(t, 0, matched[0].RowIndex)
	assert.Equal(t, 2, matched[1].RowIndex, "table order preserved")

	other := table.RecordsForDate(*day("2024-05-02"))
	assert.Len(t, other, 1)

	unparseable := 0
	for _, rec := range table.Records {
		if rec.ParsedDate == nil {
			unparseable++
		}
	}
	assert.Equal(t, len(table.Records), len(matched)+len(other)+unparseable)
}

func TestSheetTable_RecordsForDate_NoMatch(t *testing.T) {
	table := &SheetTable{
		Records: []InspectionRecord{
			{RowIndex: 0, ParsedDate: day("2024-05-01")},
		},
	}
	assert.Empty(t, table.RecordsForDate(*day("2024-06-01")))
}
