package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sgvops/night-check-reporter/internal/models"
	"github.com/sgvops/night-check-reporter/internal/report"
	"github.com/sgvops/night-check-reporter/internal/session"
	"github.com/sgvops/night-check-reporter/internal/sheets"
	"github.com/sgvops/night-check-reporter/internal/storage"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	loader     *sheets.Loader
	store      *session.Store
	exporter   *report.Exporter
	exportRepo ExportHistory
	archives   *storage.ArchiveStore // optional; nil disables archive copies
	logger     *zap.Logger
}

// ExportHistory records and lists export runs.
type ExportHistory interface {
	Create(run *models.ExportRun) error
	ListRecent(limit int) ([]*models.ExportRun, error)
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	loader *sheets.Loader,
	store *session.Store,
	exporter *report.Exporter,
	exportRepo ExportHistory,
	archives *storage.ArchiveStore,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		loader:     loader,
		store:      store,
		exporter:   exporter,
		exportRepo: exportRepo,
		archives:   archives,
		logger:     logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// TableSummary describes the currently loaded table.
type TableSummary struct {
	SheetID  string   `json:"sheet_id,omitempty"`
	Rows     int      `json:"rows"`
	Columns  []string `json:"columns"`
	Dates    []string `json:"dates"`
	LoadedAt string   `json:"loaded_at"`
}

// LoadSheetRequest is the body of POST /api/sheets.
type LoadSheetRequest struct {
	SheetURL string `json:"sheet_url" binding:"required"`
	GID      string `json:"gid"`
}

// ExportRequest is the body of POST /api/exports.
type ExportRequest struct {
	Date string `json:"date" binding:"required"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
	})
}

// LoadSheet handles POST /api/sheets
func (h *Handlers) LoadSheet(c *gin.Context) {
	var req LoadSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "sheet_url is required"})
		return
	}

	table, err := h.loader.Load(c.Request.Context(), req.SheetURL, req.GID)
	if err != nil {
		status := http.StatusBadGateway
		if isInputError(err) {
			status = http.StatusUnprocessableEntity
		}
		h.logger.Warn("Sheet load failed", zap.Error(err))
		c.JSON(status, Response{Success: false, Error: fmt.Sprintf("failed fetching sheet: %v", err)})
		return
	}

	h.store.Replace(table)
	c.JSON(http.StatusOK, Response{Success: true, Data: summarize(table)})
}

// UploadWorkbook handles POST /api/sheets/upload
func (h *Handlers) UploadWorkbook(c *gin.Context) {
	file, err := c.FormFile("workbook")
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "workbook file is required"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "failed to open uploaded file"})
		return
	}
	defer f.Close()

	table, err := h.loader.LoadWorkbook(f)
	if err != nil {
		status := http.StatusUnprocessableEntity
		h.logger.Warn("Workbook load failed", zap.Error(err))
		c.JSON(status, Response{Success: false, Error: fmt.Sprintf("failed loading workbook: %v", err)})
		return
	}

	h.store.Replace(table)
	c.JSON(http.StatusOK, Response{Success: true, Data: summarize(table)})
}

// CurrentSheet handles GET /api/sheets/current
func (h *Handlers) CurrentSheet(c *gin.Context) {
	table, err := h.store.Current()
	if err != nil {
		c.JSON(http.StatusNotFound, Response{Success: false, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: summarize(table)})
}

// ClearSheet handles DELETE /api/sheets/current
func (h *Handlers) ClearSheet(c *gin.Context) {
	h.store.Clear()
	c.JSON(http.StatusOK, Response{Success: true})
}

// ListDates handles GET /api/sheets/dates
func (h *Handlers) ListDates(c *gin.Context) {
	table, err := h.store.Current()
	if err != nil {
		c.JSON(http.StatusNotFound, Response{Success: false, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: formatDates(table.Dates())})
}

// ListRows handles GET /api/sheets/rows?date=YYYY-MM-DD
func (h *Handlers) ListRows(c *gin.Context) {
	table, err := h.store.Current()
	if err != nil {
		c.JSON(http.StatusNotFound, Response{Success: false, Error: err.Error()})
		return
	}

	day, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "date must be YYYY-MM-DD"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: table.RecordsForDate(day)})
}

// Export handles POST /api/exports
func (h *Handlers) Export(c *gin.Context) {
	table, err := h.store.Current()
	if err != nil {
		c.JSON(http.StatusNotFound, Response{Success: false, Error: err.Error()})
		return
	}

	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "date is required"})
		return
	}

	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "date must be YYYY-MM-DD"})
		return
	}

	result, err := h.exporter.Export(c.Request.Context(), table, day)
	if err != nil {
		switch {
		case errors.Is(err, report.ErrEmptyBatch):
			c.JSON(http.StatusUnprocessableEntity, Response{Success: false, Error: "no records for this date"})
		case errors.Is(err, report.ErrAllRowsFailed):
			h.recordRun(result)
			c.JSON(http.StatusInternalServerError, Response{
				Success: false,
				Error:   "every record failed to export",
				Data:    result.Failures(),
			})
		default:
			h.logger.Error("Export failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, Response{Success: false, Error: err.Error()})
		}
		return
	}

	h.recordRun(result)

	if h.archives != nil {
		if _, err := h.archives.Save(result.ArchiveName, result.Archive); err != nil {
			// The download still succeeds when the disk copy does not
			h.logger.Warn("Failed to save archive copy", zap.Error(err))
		}
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.ArchiveName))
	c.Header("X-Export-Matched", strconv.Itoa(result.Matched))
	c.Header("X-Export-Failures", strconv.Itoa(len(result.Failures())))
	c.Data(http.StatusOK, "application/zip", result.Archive)
}

// ListExports handles GET /api/exports
func (h *Handlers) ListExports(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	runs, err := h.exportRepo.ListRecent(limit)
	if err != nil {
		h.logger.Error("Failed to list export runs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: runs})
}

// recordRun persists run metadata; history failures never fail the export.
func (h *Handlers) recordRun(result *models.ExportResult) {
	if result == nil || h.exportRepo == nil {
		return
	}
	run := &models.ExportRun{
		ReportDate:    result.Date.Format("2006-01-02"),
		ArchiveName:   result.ArchiveName,
		MatchedRows:   result.Matched,
		SucceededRows: result.Succeeded(),
		FailedRows:    len(result.Failures()),
	}
	if err := h.exportRepo.Create(run); err != nil {
		h.logger.Warn("Failed to record export run", zap.Error(err))
	}
}

func summarize(table *models.SheetTable) TableSummary {
	return TableSummary{
		SheetID:  table.SheetID,
		Rows:     len(table.Records),
		Columns:  table.Columns,
		Dates:    formatDates(table.Dates()),
		LoadedAt: table.LoadedAt.UTC().Format(time.RFC3339),
	}
}

func formatDates(dates []time.Time) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format("2006-01-02"))
	}
	return out
}

func isInputError(err error) bool {
	return errors.Is(err, sheets.ErrMissingSheetRef) ||
		errors.Is(err, sheets.ErrMissingDateColumn) ||
		errors.Is(err, sheets.ErrNoParseableDates) ||
		errors.Is(err, sheets.ErrEmptyTable)
}
