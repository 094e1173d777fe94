package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"sharedeck/internal/auth"
	"sharedeck/internal/httpx"
)

func setupTestRouter(svc *Service, claims *auth.Claims) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(svc)

	withClaims := func(c *gin.Context) {
		if claims != nil {
			c.Set(httpx.KeyClaims, claims)
		}
		c.Next()
	}
	r.POST("/users/sync", withClaims, h.Sync)
	r.GET("/users/me", withClaims, func(c *gin.Context) {
		if claims != nil {
			u, err := svc.ResolveGoogleID(c.Request.Context(), claims.Subject)
			if err == nil {
				c.Set(httpx.KeyUserID, u.ID)
			}
		}
		c.Next()
	}, h.Me)
	return r
}

func TestSyncThenMe(t *testing.T) {
	svc := NewService(NewInMemoryRepository())
	claims := &auth.Claims{
		Email:            "chopper@example.com",
		Name:             "Chopper",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "g-chopper"},
	}
	r := setupTestRouter(svc, claims)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/users/sync", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("sync status = %d, body %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/me", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("me status = %d", w.Code)
	}

	var body User
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Email != "chopper@example.com" || body.Nickname == nil || *body.Nickname != "Chopper" {
		t.Errorf("unexpected user %+v", body)
	}
}

func TestSyncWithoutClaims(t *testing.T) {
	r := setupTestRouter(NewService(NewInMemoryRepository()), nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/users/sync", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}
