package repository

import (
	"time"

	"github.com/tasktrackhq/task-tracking-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindOwned finds a task by ID through its parent project. A task whose
// project is soft-deleted or owned by someone else is not resolvable,
// independent of the task's own marker.
func (r *GormTaskRepository) FindOwned(id, ownerID uint64, includeDeleted bool) (*models.Task, error) {
	query := r.db.Model(&models.Task{}).
		Select("tasks.*").
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("tasks.id = ? AND projects.owner_id = ? AND projects.deleted_at IS NULL", id, ownerID)

	if !includeDeleted {
		query = query.Where("tasks.deleted_at IS NULL")
	}

	var task models.Task
	if err := query.Preload("Assignee").First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves the owner's active tasks, most recently updated first.
// Ties on updated_at fall back to insertion order.
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, error) {
	query := r.db.Model(&models.Task{}).
		Select("tasks.*").
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("projects.owner_id = ? AND projects.deleted_at IS NULL AND tasks.deleted_at IS NULL", filter.OwnerID)

	if filter.ProjectID != nil {
		query = query.Where("tasks.project_id = ?", *filter.ProjectID)
	}
	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}

	var tasks []models.Task
	err := query.Order("tasks.updated_at DESC, tasks.id ASC").
		Preload("Assignee").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update persists all task fields; gorm refreshes updated_at. Associations
// are omitted so a preloaded assignee is never written back.
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Omit(clause.Associations).Save(task).Error
}

// SoftDelete marks a task deleted at the given time
func (r *GormTaskRepository) SoftDelete(id uint64, deletedAt time.Time) error {
	return r.db.Model(&models.Task{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"deleted_at": deletedAt,
			"updated_at": deletedAt,
		}).Error
}

// Restore clears a task's soft-delete marker
func (r *GormTaskRepository) Restore(id uint64, now time.Time) error {
	return r.db.Model(&models.Task{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"deleted_at": nil,
			"updated_at": now,
		}).Error
}
