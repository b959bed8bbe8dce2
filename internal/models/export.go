package models

import "time"

// RowResult is the outcome of rendering and converting a single record. A
// failed row carries its reason instead of aborting the batch.
type RowResult struct {
	RowIndex int    `json:"row_index"`
	SiteName string `json:"site_name"`
	Filename string `json:"filename,omitempty"`
	Err      error  `json:"-"`
	Reason   string `json:"reason,omitempty"`
}

// Succeeded reports whether the row produced a PDF.
func (r RowResult) Succeeded() bool {
	return r.Err == nil
}

// ExportResult is the outcome of one batch export.
type ExportResult struct {
	Date        time.Time
	ArchiveName string
	Archive     []byte
	Matched     int
	Rows        []RowResult
}

// Failures returns the per-row failures in batch order.
func (r *ExportResult) Failures() []RowResult {
	var failed []RowResult
	for _, row := range r.Rows {
		if !row.Succeeded() {
			failed = append(failed, row)
		}
	}
	return failed
}

// Succeeded returns the number of rows that produced archive entries.
func (r *ExportResult) Succeeded() int {
	n := 0
	for _, row := range r.Rows {
		if row.Succeeded() {
			n++
		}
	}
	return n
}

// ExportRun is the persisted audit record of one export invocation.
type ExportRun struct {
	ID            int64     `json:"id"`
	ReportDate    string    `json:"report_date"`
	ArchiveName   string    `json:"archive_name"`
	MatchedRows   int       `json:"matched_rows"`
	SucceededRows int       `json:"succeeded_rows"`
	FailedRows    int       `json:"failed_rows"`
	CreatedAt     time.Time `json:"created_at"`
}
