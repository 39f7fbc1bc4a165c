package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/tasktrackhq/task-tracking-api/internal/models"
	"github.com/tasktrackhq/task-tracking-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrProjectNameTaken = errors.New("you already have an active project with that name")
)

// ProjectService handles project lifecycle business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
	}
}

// ListProjects returns the owner's active projects, newest first
func (s *ProjectService) ListProjects(ownerID uint64) ([]models.Project, error) {
	projects, err := s.projectRepo.ListActiveByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Name        string
	Description *string
	OwnerID     uint64
}

// CreateProject creates a project after checking that no other active
// project of the same owner uses the name (case-insensitive). The check is
// advisory; the partial unique index is what actually holds under
// concurrent creates, and a commit-time violation maps to the same error.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	if _, err := s.projectRepo.FindActiveByName(input.OwnerID, input.Name, 0); err == nil {
		return nil, ErrProjectNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check project name: %w", err)
	}

	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		OwnerID:     input.OwnerID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrProjectNameTaken
		}
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// DeleteProject soft-deletes an active owned project together with all of
// its active tasks, stamping every row with the same marker
func (s *ProjectService) DeleteProject(id, ownerID uint64) error {
	project, err := s.projectRepo.FindOwned(id, ownerID, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	if err := s.projectRepo.SoftDeleteWithTasks(project.ID, utcNow()); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

// RestoreProject restores a soft-deleted owned project, provided its name
// does not clash with another active project, and restores exactly the
// tasks that were deleted together with it (same marker).
func (s *ProjectService) RestoreProject(id, ownerID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindOwned(id, ownerID, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if _, err := s.projectRepo.FindActiveByName(ownerID, project.Name, project.ID); err == nil {
		return nil, ErrProjectNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check project name: %w", err)
	}

	marker := *project.DeletedAt
	if err := s.projectRepo.RestoreWithTasks(project.ID, marker, utcNow()); err != nil {
		return nil, fmt.Errorf("failed to restore project: %w", err)
	}

	restored, err := s.projectRepo.FindOwned(project.ID, ownerID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to reload project: %w", err)
	}
	return restored, nil
}

func utcNow() time.Time {
	return time.Now().UTC()
}
