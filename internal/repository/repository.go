package repository

import (
	"time"

	"github.com/tasktrackhq/task-tracking-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email (emails are stored lowercased)
	FindByEmail(email string) (*models.User, error)
}

// ProjectRepository defines the interface for project data access.
//
// The FindOwned* methods resolve a project only for its owner; a project
// that exists but belongs to someone else behaves exactly like a missing
// one (gorm.ErrRecordNotFound), so existence never leaks across owners.
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// ListActiveByOwner lists the owner's active projects, newest first
	ListActiveByOwner(ownerID uint64) ([]models.Project, error)

	// FindOwned finds a project by ID for the given owner. wantActive
	// selects which lifecycle state resolves: active projects for normal
	// operations, soft-deleted ones for restore.
	FindOwned(id, ownerID uint64, wantActive bool) (*models.Project, error)

	// FindActiveByName finds the owner's active project with the given
	// name (case-insensitive), excluding excludeID when non-zero.
	FindActiveByName(ownerID uint64, name string, excludeID uint64) (*models.Project, error)

	// SoftDeleteWithTasks marks the project and every currently-active
	// task under it as deleted, all stamped with the same marker, within
	// a single transaction.
	SoftDeleteWithTasks(projectID uint64, deletedAt time.Time) error

	// RestoreWithTasks clears the project's marker and restores exactly
	// the tasks whose marker equals the project's prior marker, within a
	// single transaction. Restored tasks get updated_at = now.
	RestoreWithTasks(projectID uint64, marker, now time.Time) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindOwned finds a task by ID, resolving only when the parent
	// project is active and owned by ownerID. Unless includeDeleted is
	// set, the task itself must be active too.
	FindOwned(id, ownerID uint64, includeDeleted bool) (*models.Task, error)

	// List retrieves the owner's active tasks with optional filters,
	// most recently updated first
	List(filter TaskFilter) ([]models.Task, error)

	// Update persists all task fields and refreshes updated_at
	Update(task *models.Task) error

	// SoftDelete marks a task deleted at the given time
	SoftDelete(id uint64, deletedAt time.Time) error

	// Restore clears a task's soft-delete marker
	Restore(id uint64, now time.Time) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	OwnerID   uint64
	ProjectID *uint64
	Status    *models.TaskStatus
}
