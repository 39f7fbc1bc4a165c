package database

import (
	"fmt"

	"gorm.io/gorm"
)

// EnsureIndexes creates the indexes AutoMigrate cannot express. The partial
// unique index enforces that a project name is unique among one owner's
// active projects; soft-deleted rows are excluded so a deleted project never
// blocks reuse of its name. The IF NOT EXISTS form works on both postgres
// and the sqlite test database.
func EnsureIndexes(db *gorm.DB) error {
	statements := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_projects_owner_active_name
			ON projects (owner_id, LOWER(name))
			WHERE deleted_at IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_project_deleted
			ON tasks (project_id, deleted_at)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_updated_at
			ON tasks (updated_at)`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
