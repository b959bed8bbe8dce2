// Package repository persists export run history.
package repository

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/sgvops/night-check-reporter/internal/models"
)

// ExportRepository handles export run database operations
type ExportRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewExportRepository creates a new export repository
func NewExportRepository(db *sql.DB, logger *zap.Logger) *ExportRepository {
	return &ExportRepository{
		db:     db,
		logger: logger,
	}
}

// Create records one export run
func (r *ExportRepository) Create(run *models.ExportRun) error {
	query := `
		INSERT INTO export_runs (
			report_date, archive_name, matched_rows, succeeded_rows, failed_rows
		) VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		run.ReportDate,
		run.ArchiveName,
		run.MatchedRows,
		run.SucceededRows,
		run.FailedRows,
	)
	if err != nil {
		r.logger.Error("Failed to record export run", zap.Error(err))
		return fmt.Errorf("failed to record export run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	run.ID = id
	return nil
}

// ListRecent returns the most recent export runs, newest first.
func (r *ExportRepository) ListRecent(limit int) ([]*models.ExportRun, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, report_date, archive_name, matched_rows, succeeded_rows, failed_rows, created_at
		FROM export_runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list export runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.ExportRun
	for rows.Next() {
		run := &models.ExportRun{}
		if err := rows.Scan(
			&run.ID,
			&run.ReportDate,
			&run.ArchiveName,
			&run.MatchedRows,
			&run.SucceededRows,
			&run.FailedRows,
			&run.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan export run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}
