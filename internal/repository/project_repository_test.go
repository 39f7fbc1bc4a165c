package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	return db, mock
}

func TestSoftDeleteWithTasks_SingleTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProjectRepository(db)

	projectID := uint64(42)
	deletedAt := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "projects" SET "deleted_at"=\$1 WHERE id = \$2`).
		WithArgs(deletedAt, projectID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "tasks" SET "deleted_at"=\$1,"updated_at"=\$2 WHERE project_id = \$3 AND deleted_at IS NULL`).
		WithArgs(deletedAt, deletedAt, projectID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	require.NoError(t, repo.SoftDeleteWithTasks(projectID, deletedAt))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftDeleteWithTasks_RollsBackOnTaskFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProjectRepository(db)

	projectID := uint64(42)
	deletedAt := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	boom := errors.New("disk full")

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "projects" SET "deleted_at"=\$1 WHERE id = \$2`).
		WithArgs(deletedAt, projectID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "tasks" SET "deleted_at"=\$1,"updated_at"=\$2 WHERE project_id = \$3 AND deleted_at IS NULL`).
		WithArgs(deletedAt, deletedAt, projectID).
		WillReturnError(boom)
	mock.ExpectRollback()

	err := repo.SoftDeleteWithTasks(projectID, deletedAt)
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRestoreWithTasks_SingleTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProjectRepository(db)

	projectID := uint64(42)
	marker := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	now := marker.Add(2 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "projects" SET "deleted_at"=\$1 WHERE id = \$2`).
		WithArgs(nil, projectID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Only rows stamped with the project's own marker are touched.
	mock.ExpectExec(`UPDATE "tasks" SET "deleted_at"=\$1,"updated_at"=\$2 WHERE project_id = \$3 AND deleted_at = \$4`).
		WithArgs(nil, now, projectID, marker).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	require.NoError(t, repo.RestoreWithTasks(projectID, marker, now))
	require.NoError(t, mock.ExpectationsWereMet())
}
