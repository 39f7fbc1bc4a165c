package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tasktrackhq/task-tracking-api/internal/auth"
	"github.com/tasktrackhq/task-tracking-api/internal/constants"
	apierrors "github.com/tasktrackhq/task-tracking-api/internal/errors"
	"github.com/tasktrackhq/task-tracking-api/internal/repository"
)

// RequireAuth authenticates the request from a bearer token. A missing
// header, a failed verification and a token whose user no longer exists all
// produce the same 401.
func RequireAuth(tokens *auth.TokenManager, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apierrors.Unauthorized(c, "Authentication is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			apierrors.Unauthorized(c, "Invalid authorization header")
			c.Abort()
			return
		}

		userID, err := tokens.Verify(parts[1])
		if err != nil {
			apierrors.Unauthorized(c, "Invalid authentication token")
			c.Abort()
			return
		}

		if _, err := userRepo.FindByID(userID); err != nil {
			apierrors.Unauthorized(c, "Invalid authentication token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	id, ok := userID.(uint64)
	if !ok {
		return 0, false
	}
	return id, true
}
