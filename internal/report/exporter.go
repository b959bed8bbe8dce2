package report

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sgvops/night-check-reporter/internal/drive"
	"github.com/sgvops/night-check-reporter/internal/models"
)

// ImageFetcher resolves a record's share links into image payloads.
type ImageFetcher interface {
	FetchImages(ctx context.Context, refs string) []drive.Image
}

// Renderer fills the report template for one record.
type Renderer interface {
	Render(rc RenderContext) ([]byte, error)
}

// Converter turns rendered DOCX bytes into PDF bytes.
type Converter interface {
	Convert(ctx context.Context, docx []byte) ([]byte, error)
}

// Exporter drives a date-filtered batch export: per matching row it builds
// the render context, renders, converts, and collects the PDFs into one
// DEFLATE-compressed ZIP. Rows are processed sequentially in table order; a
// row failure is recorded and never aborts the batch.
type Exporter struct {
	images    ImageFetcher
	renderer  Renderer
	converter Converter
	logger    *zap.Logger
}

// NewExporter creates a new batch exporter
func NewExporter(images ImageFetcher, renderer Renderer, converter Converter, logger *zap.Logger) *Exporter {
	return &Exporter{
		images:    images,
		renderer:  renderer,
		converter: converter,
		logger:    logger,
	}
}

// Export builds the archive for all rows matching day. Returns ErrEmptyBatch
// when no row matches and ErrAllRowsFailed when the batch was non-empty but
// produced no archive entries.
func (e *Exporter) Export(ctx context.Context, table *models.SheetTable, day time.Time) (*models.ExportResult, error) {
	matched := table.RecordsForDate(day)
	if len(matched) == 0 {
		return nil, ErrEmptyBatch
	}

	dateSlug := day.Format("2006-01-02")
	result := &models.ExportResult{
		Date:        day,
		ArchiveName: fmt.Sprintf("night_checks_%s.zip", dateSlug),
		Matched:     len(matched),
	}

	e.logger.Info("Starting batch export",
		zap.String("date", dateSlug),
		zap.Int("matched_rows", len(matched)))

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	nameCounts := make(map[string]int)
	succeeded := 0

	for _, rec := range matched {
		pdf, err := e.processRow(ctx, rec)
		row := models.RowResult{
			RowIndex: rec.RowIndex,
			SiteName: rec.SiteName,
		}
		if err != nil {
			row.Err = err
			row.Reason = err.Error()
			result.Rows = append(result.Rows, row)
			e.logger.Warn("Row export failed",
				zap.Int("row", rec.RowIndex),
				zap.String("site", rec.SiteName),
				zap.Error(err))
			continue
		}

		row.Filename = entryName(dateSlug, rec.SiteName, nameCounts)
		result.Rows = append(result.Rows, row)

		w, err := zw.Create(row.Filename)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to create archive entry %s: %w", row.Filename, err)
		}
		if _, err := w.Write(pdf); err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to write archive entry %s: %w", row.Filename, err)
		}
		succeeded++
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	if succeeded == 0 {
		return result, ErrAllRowsFailed
	}

	result.Archive = buf.Bytes()
	e.logger.Info("Batch export finished",
		zap.String("date", dateSlug),
		zap.Int("matched_rows", result.Matched),
		zap.Int("succeeded", succeeded),
		zap.Int("failed", result.Matched-succeeded),
		zap.Int("archive_bytes", len(result.Archive)))

	return result, nil
}

// processRow renders and converts one record.
func (e *Exporter) processRow(ctx context.Context, rec models.InspectionRecord) ([]byte, error) {
	images := e.images.FetchImages(ctx, rec.Images)

	rc := BuildContext(rec, images)
	docx, err := e.renderer.Render(rc)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	pdf, err := e.converter.Convert(ctx, docx)
	if err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}
	return pdf, nil
}

// entryName builds "<date>_<site>.pdf" with spaces as underscores. Two rows
// decoding to the same site name on the same date get "_2", "_3", ... so no
// entry silently replaces another.
func entryName(dateSlug, siteName string, counts map[string]int) string {
	slug := strings.ReplaceAll(strings.TrimSpace(siteName), " ", "_")
	if slug == "" {
		slug = "Site"
	}

	base := fmt.Sprintf("%s_%s", dateSlug, slug)
	counts[base]++
	if counts[base] > 1 {
		return fmt.Sprintf("%s_%d.pdf", base, counts[base])
	}
	return base + ".pdf"
}
