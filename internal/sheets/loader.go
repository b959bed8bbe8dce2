package sheets

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/sgvops/night-check-reporter/internal/models"
)

// HTTPClient interface for testability
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds loader configuration
type Config struct {
	ExportBaseURL string
	FetchTimeout  time.Duration
	DateLayouts   []string
}

// Loader fetches a sheet's CSV export and projects it into a SheetTable.
type Loader struct {
	cfg        Config
	httpClient HTTPClient
	logger     *zap.Logger
}

// NewLoader creates a new sheet loader
func NewLoader(cfg Config, logger *zap.Logger) *Loader {
	return &Loader{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.FetchTimeout},
		logger:     logger,
	}
}

// Load fetches the sheet identified by sheetInput (URL or bare ID) via the
// public CSV export endpoint. gid optionally selects a worksheet. The sheet
// must be shared link-viewable.
func (l *Loader) Load(ctx context.Context, sheetInput, gid string) (*models.SheetTable, error) {
	if strings.TrimSpace(sheetInput) == "" {
		return nil, ErrMissingSheetRef
	}

	sheetID := ExtractSheetID(sheetInput)
	exportURL := fmt.Sprintf("%s/%s/export?format=csv", l.cfg.ExportBaseURL, url.PathEscape(sheetID))
	if gid != "" {
		exportURL += "&gid=" + url.QueryEscape(gid)
	}

	l.logger.Info("Fetching sheet CSV export",
		zap.String("sheet_id", sheetID),
		zap.String("gid", gid))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, exportURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheet export returned status %d", resp.StatusCode)
	}

	table, err := l.parseCSV(resp.Body)
	if err != nil {
		return nil, err
	}
	table.SheetID = sheetID

	l.logger.Info("Sheet loaded",
		zap.String("sheet_id", sheetID),
		zap.Int("rows", len(table.Records)),
		zap.Int("columns", len(table.Columns)),
		zap.Int("dates", len(table.Dates())))

	return table, nil
}

// LoadWorkbook ingests an uploaded .xlsx workbook instead of the CSV export.
// The first sheet's first row is taken as the header.
func (l *Loader) LoadWorkbook(r io.Reader) (*models.SheetTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheetList[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetList[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyTable
	}

	table, err := l.buildTable(rows[0], rows[1:])
	if err != nil {
		return nil, err
	}

	l.logger.Info("Workbook loaded",
		zap.String("sheet", sheetList[0]),
		zap.Int("rows", len(table.Records)))

	return table, nil
}

// parseCSV reads a header-first CSV document into a SheetTable.
func (l *Loader) parseCSV(r io.Reader) (*models.SheetTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // export pads short rows inconsistently

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyTable
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		rows = append(rows, row)
	}

	return l.buildTable(header, rows)
}

// buildTable projects raw header+rows into typed records, parsing each Date
// cell once. Rows whose date does not parse stay in the table with a nil
// ParsedDate.
func (l *Loader) buildTable(header []string, rows [][]string) (*models.SheetTable, error) {
	columns := make([]string, len(header))
	hasDate := false
	for i, col := range header {
		columns[i] = strings.TrimSpace(col)
		if columns[i] == models.ColDate {
			hasDate = true
		}
	}
	if !hasDate {
		return nil, ErrMissingDateColumn
	}
	if len(rows) == 0 {
		return nil, ErrEmptyTable
	}

	records := make([]models.InspectionRecord, 0, len(rows))
	parseable := 0
	for i, row := range rows {
		cells := make(map[string]string, len(columns))
		for j, col := range columns {
			if j < len(row) {
				cells[col] = row[j]
			}
		}

		rec := models.RecordFromCells(i, cells)
		rec.ParsedDate = l.parseDate(rec.Date)
		if rec.ParsedDate != nil {
			parseable++
		}
		records = append(records, rec)
	}

	if parseable == 0 {
		return nil, ErrNoParseableDates
	}

	return &models.SheetTable{
		Columns:  columns,
		Records:  records,
		LoadedAt: time.Now(),
	}, nil
}

// parseDate tries the configured layouts in order. Returns nil when none
// match, which excludes the row from date selection without dropping it.
func (l *Loader) parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range l.cfg.DateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			day := t.UTC().Truncate(24 * time.Hour)
			return &day
		}
	}
	return nil
}
