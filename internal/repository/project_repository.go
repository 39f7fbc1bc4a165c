package repository

import (
	"time"

	"github.com/tasktrackhq/task-tracking-api/internal/database"
	"github.com/tasktrackhq/task-tracking-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// ListActiveByOwner lists the owner's active projects, newest first
func (r *GormProjectRepository) ListActiveByOwner(ownerID uint64) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Scopes(database.Active).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// FindOwned finds a project by ID for the given owner in the requested
// lifecycle state
func (r *GormProjectRepository) FindOwned(id, ownerID uint64, wantActive bool) (*models.Project, error) {
	scope := database.Active
	if !wantActive {
		scope = database.Deleted
	}

	var project models.Project
	err := r.db.Scopes(scope).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindActiveByName finds the owner's active project with the given name,
// compared case-insensitively
func (r *GormProjectRepository) FindActiveByName(ownerID uint64, name string, excludeID uint64) (*models.Project, error) {
	query := r.db.Scopes(database.Active).
		Where("owner_id = ? AND LOWER(name) = LOWER(?)", ownerID, name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var project models.Project
	if err := query.First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// SoftDeleteWithTasks soft-deletes the project and its active tasks
// atomically, stamping every row with the same marker
func (r *GormProjectRepository) SoftDeleteWithTasks(projectID uint64, deletedAt time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Project{}).
			Where("id = ?", projectID).
			Update("deleted_at", deletedAt).Error
		if err != nil {
			return err
		}

		return tx.Model(&models.Task{}).
			Where("project_id = ? AND deleted_at IS NULL", projectID).
			Updates(map[string]interface{}{
				"deleted_at": deletedAt,
				"updated_at": deletedAt,
			}).Error
	})
}

// RestoreWithTasks restores the project and exactly the tasks whose marker
// matches the project's prior marker. Tasks deleted independently at a
// different time stay deleted.
func (r *GormProjectRepository) RestoreWithTasks(projectID uint64, marker, now time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Project{}).
			Where("id = ?", projectID).
			Update("deleted_at", nil).Error
		if err != nil {
			return err
		}

		return tx.Model(&models.Task{}).
			Where("project_id = ? AND deleted_at = ?", projectID, marker).
			Updates(map[string]interface{}{
				"deleted_at": nil,
				"updated_at": now,
			}).Error
	})
}
