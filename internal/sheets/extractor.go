// Package sheets loads the night-check table from a Google Sheets CSV
// export or an uploaded workbook and projects it into typed records.
package sheets

import (
	"regexp"
	"strings"
)

var sheetIDPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)

// ExtractSheetID returns the canonical sheet ID from either a full Sheets
// URL or a bare ID. A bare ID passes through trimmed; extraction never
// fails.
func ExtractSheetID(input string) string {
	if m := sheetIDPattern.FindStringSubmatch(input); m != nil {
		return m[1]
	}
	return strings.TrimSpace(input)
}
