package services

import (
	"errors"
	"fmt"

	"github.com/tasktrackhq/task-tracking-api/internal/models"
	"github.com/tasktrackhq/task-tracking-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskAlreadyActive = errors.New("task is already active")
	ErrAssigneeNotFound  = errors.New("assignee not found")
)

// TaskService handles task lifecycle business logic
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	OwnerID   uint64
	ProjectID *uint64
	Status    *models.TaskStatus
}

// ListTasks returns the caller's active tasks, most recently updated first.
// Tasks under soft-deleted projects are excluded; a project filter that the
// caller does not own simply yields an empty list.
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(repository.TaskFilter{
		OwnerID:   input.OwnerID,
		ProjectID: input.ProjectID,
		Status:    input.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description *string
	Status      models.TaskStatus
	ProjectID   uint64
	AssigneeID  *uint64
	ActorID     uint64
}

// CreateTask creates a task in a project owned by the actor
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if _, err := s.projectRepo.FindOwned(input.ProjectID, input.ActorID, true); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if err := s.validateAssignee(input.AssigneeID, input.ActorID); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = models.TaskStatusTodo
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		ProjectID:   input.ProjectID,
		AssigneeID:  input.AssigneeID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.reload(task.ID, input.ActorID)
}

// TaskPatch represents a partial task update. The Set flags distinguish a
// field that was omitted from one explicitly set to null: a null
// description clears it, a null assignee unassigns.
type TaskPatch struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	Status         *models.TaskStatus
	AssigneeID     *uint64
	AssigneeSet    bool
}

// Empty reports whether no field of the patch was supplied.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && !p.DescriptionSet && p.Status == nil && !p.AssigneeSet
}

// UpdateTask applies the supplied fields to an owned active task. Any
// applied change refreshes updated_at; a patch with no fields leaves the
// row untouched.
func (s *TaskService) UpdateTask(taskID, actorID uint64, patch TaskPatch) (*models.Task, error) {
	task, err := s.resolveTask(taskID, actorID, false)
	if err != nil {
		return nil, err
	}

	if patch.Empty() {
		return task, nil
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.DescriptionSet {
		task.Description = patch.Description
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	if patch.AssigneeSet {
		if err := s.validateAssignee(patch.AssigneeID, actorID); err != nil {
			return nil, err
		}
		task.AssigneeID = patch.AssigneeID
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.reload(task.ID, actorID)
}

// DeleteTask soft-deletes an owned active task
func (s *TaskService) DeleteTask(taskID, actorID uint64) error {
	task, err := s.resolveTask(taskID, actorID, false)
	if err != nil {
		return err
	}

	if err := s.taskRepo.SoftDelete(task.ID, utcNow()); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// RestoreTask restores a soft-deleted task. The task must resolve through
// an active owned project; restoring a task that is not deleted is a
// conflict, not a no-op.
func (s *TaskService) RestoreTask(taskID, actorID uint64) (*models.Task, error) {
	task, err := s.resolveTask(taskID, actorID, true)
	if err != nil {
		return nil, err
	}

	if !task.Deleted() {
		return nil, ErrTaskAlreadyActive
	}

	if err := s.taskRepo.Restore(task.ID, utcNow()); err != nil {
		return nil, fmt.Errorf("failed to restore task: %w", err)
	}

	return s.reload(task.ID, actorID)
}

// resolveTask locates a task for the acting user. Absent, not owned and
// hidden by visibility all collapse to ErrTaskNotFound.
func (s *TaskService) resolveTask(taskID, actorID uint64, includeDeleted bool) (*models.Task, error) {
	task, err := s.taskRepo.FindOwned(taskID, actorID, includeDeleted)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// validateAssignee checks that the assignee is unset, the acting user, or
// an existing user. Self-assignment needs no lookup. No project
// relationship is required of the assignee.
func (s *TaskService) validateAssignee(assigneeID *uint64, actorID uint64) error {
	if assigneeID == nil || *assigneeID == actorID {
		return nil
	}

	if _, err := s.userRepo.FindByID(*assigneeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssigneeNotFound
		}
		return fmt.Errorf("failed to verify assignee: %w", err)
	}
	return nil
}

func (s *TaskService) reload(taskID, actorID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindOwned(taskID, actorID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to reload task: %w", err)
	}
	return task, nil
}
