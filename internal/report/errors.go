package report

import "errors"

var (
	// ErrEmptyBatch is returned when no row matches the selected date.
	ErrEmptyBatch = errors.New("no records match the selected date")

	// ErrAllRowsFailed is returned when the batch was non-empty but every
	// row failed to render or convert, so no archive was produced.
	ErrAllRowsFailed = errors.New("every record in the batch failed")
)
