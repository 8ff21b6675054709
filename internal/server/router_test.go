package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gropower-backend/internal/config"
	"gropower-backend/internal/domain"
)

func testRouter(profiles ProfileStore) http.Handler {
	cfg := config.Config{JWTSecret: "test-secret", HTTPPort: "8080"}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(cfg, logger, profiles, Handlers{})
}

func accessToken(t *testing.T, userID string, role domain.UserRole) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":        userID,
		"email":      "user@example.com",
		"role":       string(role),
		"token_type": "access",
		"exp":        time.Now().Add(time.Hour).Unix(),
		"iat":        time.Now().Unix(),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func redirectOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	redirect, _ := body["redirect"].(string)
	return redirect
}

func TestOrderSurfaceRedirectsAnonymousVisitorsToDistributors(t *testing.T) {
	router := testRouter(stubProfiles{})

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if got := redirectOf(t, rec); got != "/distributors" {
		t.Fatalf("redirect = %q, want /distributors", got)
	}
}

func TestOrderSurfaceRedirectsNonCommercialRolesToDistributors(t *testing.T) {
	profiles := stubProfiles{profiles: map[int64]*domain.User{
		2: {ID: 2, Role: domain.RoleMechanic, Status: domain.UserActive, OnboardingComplete: true},
	}}
	router := testRouter(profiles)

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer "+accessToken(t, "2", domain.RoleMechanic))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if got := redirectOf(t, rec); got != "/distributors" {
		t.Fatalf("redirect = %q, want /distributors", got)
	}
}

func TestProtectedSurfaceRedirectsAnonymousVisitorsHome(t *testing.T) {
	router := testRouter(stubProfiles{})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if got := redirectOf(t, rec); got != "/" {
		t.Fatalf("redirect = %q, want /", got)
	}
}
