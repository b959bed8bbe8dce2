package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sgvops/night-check-reporter/internal/drive"
	"github.com/sgvops/night-check-reporter/internal/models"
	"github.com/sgvops/night-check-reporter/internal/report"
	"github.com/sgvops/night-check-reporter/internal/session"
	"github.com/sgvops/night-check-reporter/internal/sheets"
	"github.com/sgvops/night-check-reporter/internal/storage"
)

type nopImageFetcher struct{}

func (nopImageFetcher) FetchImages(context.Context, string) []drive.Image { return nil }

type stubRenderer struct{}

func (stubRenderer) Render(rc report.RenderContext) ([]byte, error) {
	return []byte("docx:" + rc.Fields[report.KeySiteName]), nil
}

type stubConverter struct{}

func (stubConverter) Convert(_ context.Context, docx []byte) ([]byte, error) {
	return append([]byte("pdf:"), docx...), nil
}

type memHistory struct {
	runs []*models.ExportRun
}

func (m *memHistory) Create(run *models.ExportRun) error {
	run.ID = int64(len(m.runs) + 1)
	m.runs = append(m.runs, run)
	return nil
}

func (m *memHistory) ListRecent(int) ([]*models.ExportRun, error) {
	return m.runs, nil
}

func newTestServer(t *testing.T, csvBody string) (*Server, *memHistory) {
	t.Helper()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(csvBody))
	}))
	t.Cleanup(backend.Close)

	logger := zap.NewNop()
	loader := sheets.NewLoader(sheets.Config{
		ExportBaseURL: backend.URL,
		FetchTimeout:  5 * time.Second,
		DateLayouts:   []string{"2006-01-02"},
	}, logger)

	exporter := report.NewExporter(nopImageFetcher{}, stubRenderer{}, stubConverter{}, logger)
	history := &memHistory{}

	archives := storage.NewArchiveStore(t.TempDir(), logger)
	handlers := NewHandlers(loader, session.NewStore(), exporter, history, archives, logger)
	server := NewServer(ServerConfig{Host: "127.0.0.1", Port: 0}, handlers, logger)
	return server, history
}

func doJSON(t *testing.T, server *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)
	return w
}

const testCSV = "Date,Time,Site Name,Images\n" +
	"2024-05-01,23:30,4-361-Candid Manesar,\n" +
	"2024-05-01,01:00,2-101-Alpha,\n" +
	"2024-05-02,23:45,3-200-Beta,\n"

func TestHandlers_HealthCheck(t *testing.T) {
	server, _ := newTestServer(t, testCSV)
	w := doJSON(t, server, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandlers_SheetLifecycle(t *testing.T) {
	server, _ := newTestServer(t, testCSV)

	// Nothing loaded yet
	w := doJSON(t, server, http.MethodGet, "/api/sheets/current", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Load
	w = doJSON(t, server, http.MethodPost, "/api/sheets", LoadSheetRequest{SheetURL: "some-id"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool         `json:"success"`
		Data    TableSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.Data.Rows)
	assert.Equal(t, []string{"2024-05-01", "2024-05-02"}, resp.Data.Dates)

	// Dates
	w = doJSON(t, server, http.MethodGet, "/api/sheets/dates", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Rows preview
	w = doJSON(t, server, http.MethodGet, "/api/sheets/rows?date=2024-05-01", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Clear
	w = doJSON(t, server, http.MethodDelete, "/api/sheets/current", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, server, http.MethodGet, "/api/sheets/current", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlers_LoadSheet_MissingBody(t *testing.T) {
	server, _ := newTestServer(t, testCSV)
	w := doJSON(t, server, http.MethodPost, "/api/sheets", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlers_LoadSheet_MissingDateColumn(t *testing.T) {
	server, _ := newTestServer(t, "Site Name\n4-361-X\n")
	w := doJSON(t, server, http.MethodPost, "/api/sheets", LoadSheetRequest{SheetURL: "some-id"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Date")
}

func TestHandlers_Export(t *testing.T) {
	server, history := newTestServer(t, testCSV)

	w := doJSON(t, server, http.MethodPost, "/api/sheets", LoadSheetRequest{SheetURL: "some-id"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, server, http.MethodPost, "/api/exports", ExportRequest{Date: "2024-05-01"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))
	assert.Equal(t, fmt.Sprintf("attachment; filename=%q", "night_checks_2024-05-01.zip"),
		w.Header().Get("Content-Disposition"))
	assert.Equal(t, "2", w.Header().Get("X-Export-Matched"))
	assert.Equal(t, "0", w.Header().Get("X-Export-Failures"))

	require.Len(t, history.runs, 1)
	assert.Equal(t, "2024-05-01", history.runs[0].ReportDate)
	assert.Equal(t, 2, history.runs[0].MatchedRows)
	assert.Equal(t, 2, history.runs[0].SucceededRows)
}

func TestHandlers_Export_EmptyBatch(t *testing.T) {
	server, history := newTestServer(t, testCSV)

	w := doJSON(t, server, http.MethodPost, "/api/sheets", LoadSheetRequest{SheetURL: "some-id"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, server, http.MethodPost, "/api/exports", ExportRequest{Date: "2024-07-01"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Empty(t, history.runs, "an empty batch records no run")
}

func TestHandlers_Export_NoTable(t *testing.T) {
	server, _ := newTestServer(t, testCSV)
	w := doJSON(t, server, http.MethodPost, "/api/exports", ExportRequest{Date: "2024-05-01"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlers_ListExports(t *testing.T) {
	server, history := newTestServer(t, testCSV)
	history.runs = append(history.runs, &models.ExportRun{ID: 1, ReportDate: "2024-05-01"})

	w := doJSON(t, server, http.MethodGet, "/api/exports", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "2024-05-01")
}
