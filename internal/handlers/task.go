package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/tasktrackhq/task-tracking-api/internal/constants"
	"github.com/tasktrackhq/task-tracking-api/internal/dto"
	apierrors "github.com/tasktrackhq/task-tracking-api/internal/errors"
	"github.com/tasktrackhq/task-tracking-api/internal/middleware"
	"github.com/tasktrackhq/task-tracking-api/internal/models"
	"github.com/tasktrackhq/task-tracking-api/internal/services"
	"github.com/tasktrackhq/task-tracking-api/internal/utils"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns the caller's active tasks, optionally filtered by
// project and status, most recently updated first.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	input := services.ListTasksInput{OwnerID: userID}

	if projectIDStr := c.Query("project_id"); projectIDStr != "" {
		projectID, err := strconv.ParseUint(projectIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project_id")
			return
		}
		input.ProjectID = &projectID
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.TaskStatus(statusStr)
		if !status.Valid() {
			apierrors.BadRequest(c, "Invalid status filter")
			return
		}
		input.Status = &status
	}

	tasks, err := h.taskService.ListTasks(input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
	})
}

// CreateTask creates a task in one of the caller's active projects.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Title       string            `json:"title" binding:"required,max=255"`
		Description *string           `json:"description" binding:"omitempty,max=2000"`
		Status      models.TaskStatus `json:"status" binding:"omitempty,oneof=todo in_progress done"`
		ProjectID   uint64            `json:"project_id" binding:"required"`
		AssigneeID  *uint64           `json:"assignee_id"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	title, ok := utils.NormalizeRequired(req.Title, constants.MinNameLength)
	if !ok {
		apierrors.BadRequest(c, fmt.Sprintf("Title must be at least %d characters", constants.MinNameLength))
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:       title,
		Description: utils.NormalizeOptional(req.Description),
		Status:      req.Status,
		ProjectID:   req.ProjectID,
		AssigneeID:  req.AssigneeID,
		ActorID:     userID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update. The raw body is parsed field by
// field so that an omitted key leaves the field untouched while an explicit
// null clears the description or unassigns the task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var raw map[string]json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var patch services.TaskPatch

	if rawTitle, present := raw["title"]; present {
		var title *string
		if err := json.Unmarshal(rawTitle, &title); err != nil {
			apierrors.BadRequest(c, "Invalid title")
			return
		}
		// A null title is ignored rather than clearing a required field.
		if title != nil {
			normalized, ok := utils.NormalizeRequired(*title, constants.MinNameLength)
			if !ok || utf8.RuneCountInString(normalized) > constants.MaxNameLength {
				apierrors.BadRequest(c, fmt.Sprintf("Title must be at least %d characters", constants.MinNameLength))
				return
			}
			patch.Title = &normalized
		}
	}

	if rawDescription, present := raw["description"]; present {
		var description *string
		if err := json.Unmarshal(rawDescription, &description); err != nil {
			apierrors.BadRequest(c, "Invalid description")
			return
		}
		if description != nil && utf8.RuneCountInString(*description) > constants.MaxDescriptionLength {
			apierrors.BadRequest(c, "Description is too long")
			return
		}
		patch.Description = utils.NormalizeOptional(description)
		patch.DescriptionSet = true
	}

	if rawStatus, present := raw["status"]; present {
		var status *models.TaskStatus
		if err := json.Unmarshal(rawStatus, &status); err != nil {
			apierrors.BadRequest(c, "Invalid status")
			return
		}
		if status != nil {
			if !status.Valid() {
				apierrors.BadRequest(c, "Invalid status")
				return
			}
			patch.Status = status
		}
	}

	if rawAssignee, present := raw["assignee_id"]; present {
		var assigneeID *uint64
		if err := json.Unmarshal(rawAssignee, &assigneeID); err != nil {
			apierrors.BadRequest(c, "Invalid assignee_id")
			return
		}
		patch.AssigneeID = assigneeID
		patch.AssigneeSet = true
	}

	task, err := h.taskService.UpdateTask(taskID, userID, patch)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask soft-deletes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(taskID, userID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RestoreTask restores a soft-deleted task.
func (h *TaskHandler) RestoreTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.RestoreTask(taskID, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	case errors.Is(err, services.ErrAssigneeNotFound):
		apierrors.NotFound(c, "Assignee not found")
	case errors.Is(err, services.ErrTaskAlreadyActive):
		apierrors.Conflict(c, "Task is already active")
	default:
		apierrors.InternalError(c, "")
	}
}
