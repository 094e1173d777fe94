package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"sharedeck/internal/auth"
	"sharedeck/internal/httpx"
	"sharedeck/internal/user"
)

const testSecret = "test-secret-key-for-testing-only"

func newProtectedRouter(tokens *auth.JWTManager, users UserResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AuthMiddleware(tokens), CurrentUser(users))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userID": c.GetString(httpx.KeyUserID),
			"role":   c.GetString(httpx.KeyRole),
		})
	})
	router.GET("/admin", RequireRole(user.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func seededUsers(t *testing.T, googleID, role string) *user.InMemoryRepository {
	t.Helper()
	repo := user.NewInMemoryRepository()
	if err := repo.Upsert(context.Background(), &user.User{GoogleID: googleID, Email: "t@example.com", Role: role}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return repo
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	tokens := auth.NewJWTManager(testSecret, time.Hour)
	router := newProtectedRouter(tokens, user.NewService(user.NewInMemoryRepository()))

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"invalid format", "InvalidFormat"},
		{"wrong scheme", "Basic abc"},
		{"invalid token", "Bearer invalid_token_xyz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
			}
		})
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tokens := auth.NewJWTManager(testSecret, time.Hour)
	repo := seededUsers(t, "g-zoro", user.RoleMember)
	router := newProtectedRouter(tokens, user.NewService(repo))

	token, err := tokens.Generate("g-zoro", "zoro@example.com", "Zoro", "")
	if err != nil {
		t.Fatalf("failed to generate test token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestCurrentUser_UnknownSubject(t *testing.T) {
	tokens := auth.NewJWTManager(testSecret, time.Hour)
	router := newProtectedRouter(tokens, user.NewService(user.NewInMemoryRepository()))

	token, _ := tokens.Generate("g-nobody", "", "", "")
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unsynced user, got %d", w.Code)
	}
}

func TestRequireRole(t *testing.T) {
	tokens := auth.NewJWTManager(testSecret, time.Hour)

	tests := []struct {
		role string
		want int
	}{
		{user.RoleMember, http.StatusForbidden},
		{user.RoleAdmin, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			router := newProtectedRouter(tokens, user.NewService(seededUsers(t, "g-1", tt.role)))
			token, _ := tokens.Generate("g-1", "", "", "")

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestRequestLoggerAndMetricsPassThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestLogger(), Metrics())
	router.GET("/ping/:id", func(c *gin.Context) {
		c.String(http.StatusTeapot, "pong")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping/42", nil))
	if w.Code != http.StatusTeapot || w.Body.String() != "pong" {
		t.Errorf("middleware altered response: %d %q", w.Code, w.Body.String())
	}
}
