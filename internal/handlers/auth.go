package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/tasktrackhq/task-tracking-api/internal/auth"
	"github.com/tasktrackhq/task-tracking-api/internal/constants"
	"github.com/tasktrackhq/task-tracking-api/internal/dto"
	apierrors "github.com/tasktrackhq/task-tracking-api/internal/errors"
	"github.com/tasktrackhq/task-tracking-api/internal/middleware"
	"github.com/tasktrackhq/task-tracking-api/internal/models"
	"github.com/tasktrackhq/task-tracking-api/internal/services"
	"github.com/tasktrackhq/task-tracking-api/internal/utils"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	tokens      *auth.TokenManager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		tokens:      tokens,
	}
}

// Register creates a new user and returns an access token.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Name     string `json:"name" binding:"required,max=255"`
		Password string `json:"password" binding:"required"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	name, ok := utils.NormalizeRequired(req.Name, constants.MinNameLength)
	if !ok {
		apierrors.BadRequest(c, fmt.Sprintf("Name must be at least %d characters", constants.MinNameLength))
		return
	}

	if n := utf8.RuneCountInString(req.Password); n < constants.MinPasswordLength || n > constants.MaxPasswordLength {
		apierrors.BadRequest(c, fmt.Sprintf("Password must be between %d and %d characters",
			constants.MinPasswordLength, constants.MaxPasswordLength))
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Email:    req.Email,
		Name:     name,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	h.respondWithToken(c, http.StatusCreated, *user)
}

// Login authenticates a user and returns an access token.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	h.respondWithToken(c, http.StatusOK, *user)
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user models.User) {
	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to issue token")
		return
	}

	c.JSON(status, dto.NewAuthResponse(token, user))
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, "Email is already registered")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, "Invalid email or password")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.Unauthorized(c, "User no longer exists")
	default:
		apierrors.InternalError(c, "")
	}
}
