package repository

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sgvops/night-check-reporter/internal/models"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE export_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			report_date TEXT NOT NULL,
			archive_name TEXT NOT NULL,
			matched_rows INTEGER NOT NULL,
			succeeded_rows INTEGER NOT NULL,
			failed_rows INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	require.NoError(t, err)
	return db
}

func TestExportRepository_CreateAndList(t *testing.T) {
	repo := NewExportRepository(newTestDB(t), zap.NewNop())

	run := &models.ExportRun{
		ReportDate:    "2024-05-01",
		ArchiveName:   "night_checks_2024-05-01.zip",
		MatchedRows:   3,
		SucceededRows: 2,
		FailedRows:    1,
	}
	require.NoError(t, repo.Create(run))
	assert.NotZero(t, run.ID)

	require.NoError(t, repo.Create(&models.ExportRun{
		ReportDate:  "2024-05-02",
		ArchiveName: "night_checks_2024-05-02.zip",
	}))

	runs, err := repo.ListRecent(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "night_checks_2024-05-02.zip", runs[0].ArchiveName, "newest first")
	assert.Equal(t, 3, runs[1].MatchedRows)
	assert.False(t, runs[1].CreatedAt.IsZero())
}

func TestExportRepository_ListRecent_Limit(t *testing.T) {
	repo := NewExportRepository(newTestDB(t), zap.NewNop())

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(&models.ExportRun{
			ReportDate:  "2024-05-01",
			ArchiveName: "night_checks_2024-05-01.zip",
		}))
	}

	runs, err := repo.ListRecent(3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}
