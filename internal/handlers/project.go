package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tasktrackhq/task-tracking-api/internal/constants"
	"github.com/tasktrackhq/task-tracking-api/internal/dto"
	apierrors "github.com/tasktrackhq/task-tracking-api/internal/errors"
	"github.com/tasktrackhq/task-tracking-api/internal/middleware"
	"github.com/tasktrackhq/task-tracking-api/internal/services"
	"github.com/tasktrackhq/task-tracking-api/internal/utils"
)

// ProjectHandler coordinates project-related HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// ListProjects returns the caller's active projects, newest first.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projects, err := h.projectService.ListProjects(userID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": dto.ToProjectDTOs(projects),
	})
}

// CreateProject creates a new project for the caller.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateProjectRequest struct {
		Name        string  `json:"name" binding:"required,max=255"`
		Description *string `json:"description" binding:"omitempty,max=2000"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	name, ok := utils.NormalizeRequired(req.Name, constants.MinNameLength)
	if !ok {
		apierrors.BadRequest(c, fmt.Sprintf("Project name must be at least %d characters", constants.MinNameLength))
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		Name:        name,
		Description: utils.NormalizeOptional(req.Description),
		OwnerID:     userID,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// DeleteProject soft-deletes a project and cascades to its active tasks.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projectID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(projectID, userID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RestoreProject restores a soft-deleted project together with the tasks
// that were deleted with it.
func (h *ProjectHandler) RestoreProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projectID, ok := parseIDParam(c)
	if !ok {
		return
	}

	project, err := h.projectService.RestoreProject(projectID, userID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid ID")
		return 0, false
	}
	return id, true
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	case errors.Is(err, services.ErrProjectNameTaken):
		apierrors.Conflict(c, "You already have an active project with that name")
	default:
		apierrors.InternalError(c, "")
	}
}
