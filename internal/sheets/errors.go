package sheets

import "errors"

var (
	// ErrMissingSheetRef is returned when no sheet URL or ID was provided.
	ErrMissingSheetRef = errors.New("sheet URL or ID is required")

	// ErrMissingDateColumn is returned when the loaded table has no "Date"
	// column.
	ErrMissingDateColumn = errors.New("column \"Date\" not found in sheet")

	// ErrNoParseableDates is returned when no row's Date cell matched any
	// known layout.
	ErrNoParseableDates = errors.New("no valid dates found in \"Date\" column")

	// ErrEmptyTable is returned when the sheet has a header but no data rows.
	ErrEmptyTable = errors.New("sheet contains no data rows")
)
