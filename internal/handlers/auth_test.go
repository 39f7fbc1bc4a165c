package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/tasktrackhq/task-tracking-api/internal/auth"
	"github.com/tasktrackhq/task-tracking-api/internal/database"
	"github.com/tasktrackhq/task-tracking-api/internal/dto"
	"github.com/tasktrackhq/task-tracking-api/internal/middleware"
	"github.com/tasktrackhq/task-tracking-api/internal/models"
	"github.com/tasktrackhq/task-tracking-api/internal/repository"
	"github.com/tasktrackhq/task-tracking-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
	tokens      *auth.TokenManager
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
	)
	require.NoError(t, err)
	require.NoError(t, database.EnsureIndexes(db))

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	handler := NewAuthHandler(authService, tokens)

	r := gin.New()
	r.POST("/api/auth/register", handler.Register)
	r.POST("/api/auth/login", handler.Login)
	r.GET("/api/auth/me", middleware.RequireAuth(tokens, userRepo), handler.GetCurrentUser)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:          db,
		router:      r,
		authService: authService,
		tokens:      tokens,
	}
}

func (env authTestEnv) postJSON(t *testing.T, url string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.postJSON(t, "/api/auth/register", map[string]string{
		"email":    "New.User@Example.com",
		"name":     "  New User  ",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "new.user@example.com", response.User.Email)
	require.Equal(t, "New User", response.User.Name)
	require.Equal(t, "bearer", response.Token.TokenType)

	userID, err := env.tokens.Verify(response.Token.AccessToken)
	require.NoError(t, err)
	require.Equal(t, response.User.ID, userID)
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	env := setupAuthTestEnv(t)

	payload := map[string]string{
		"email":    "taken@example.com",
		"name":     "First",
		"password": "supersecret",
	}
	require.Equal(t, http.StatusCreated, env.postJSON(t, "/api/auth/register", payload).Code)

	// Same address in a different case is still a duplicate.
	payload["email"] = "Taken@Example.com"
	payload["name"] = "Second"
	require.Equal(t, http.StatusConflict, env.postJSON(t, "/api/auth/register", payload).Code)
}

func TestAuthHandler_Register_PasswordBounds(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.postJSON(t, "/api/auth/register", map[string]string{
		"email":    "short@example.com",
		"name":     "Shorty",
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = env.postJSON(t, "/api/auth/register", map[string]string{
		"email":    "long@example.com",
		"name":     "Longy",
		"password": strings.Repeat("x", 129),
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Email:    "existing@example.com",
		Name:     "Existing",
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := env.postJSON(t, "/api/auth/login", map[string]string{
		"email":    "existing@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response.Token.AccessToken)

	// Wrong password and unknown email fail identically.
	w = env.postJSON(t, "/api/auth/login", map[string]string{
		"email":    "existing@example.com",
		"password": "wrongpassword",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.postJSON(t, "/api/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register(services.RegisterInput{
		Email:    "current@example.com",
		Name:     "Current User",
		Password: "supersecret",
	})
	require.NoError(t, err)

	token, err := env.tokens.Issue(user.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, user.Email, response.Email)
}

func TestAuthHandler_GetCurrentUser_InvalidToken(t *testing.T) {
	env := setupAuthTestEnv(t)

	for _, header := range []string{"", "Bearer garbage", "Basic abc"} {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	}
}

func TestAuthHandler_GetCurrentUser_DeletedUser(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register(services.RegisterInput{
		Email:    "ghost@example.com",
		Name:     "Ghost",
		Password: "supersecret",
	})
	require.NoError(t, err)

	token, err := env.tokens.Issue(user.ID)
	require.NoError(t, err)

	// A valid token for a user that no longer exists is rejected the same
	// way as an invalid one.
	require.NoError(t, env.db.Delete(&models.User{}, user.ID).Error)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
