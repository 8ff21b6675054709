package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gropower-backend/internal/access"
	"gropower-backend/internal/domain"
	"gropower-backend/internal/repository"
	"gropower-backend/internal/server/authctx"
)

type stubProfiles struct {
	profiles map[int64]*domain.User
}

func (s stubProfiles) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := s.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func requestAs(user *authctx.CurrentUser) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if user != nil {
		req = req.WithContext(authctx.WithCurrentUser(req.Context(), *user))
	}
	return req
}

func decodeGateBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func TestAccessGateNoIdentity(t *testing.T) {
	next, called := okHandler()
	gate := AccessGate(stubProfiles{}, "/")(next)

	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, requestAs(nil))

	if *called {
		t.Fatal("handler should not run")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if body := decodeGateBody(t, rec); body["redirect"] != "/" {
		t.Fatalf("redirect = %v, want /", body["redirect"])
	}
}

func TestAccessGateBlockedAccountSignsOut(t *testing.T) {
	profiles := stubProfiles{profiles: map[int64]*domain.User{
		1: {ID: 1, Role: domain.RoleDealer, Status: domain.UserBlocked, OnboardingComplete: true},
	}}
	next, called := okHandler()
	gate := AccessGate(profiles, "/")(next)

	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, requestAs(&authctx.CurrentUser{ID: 1}))

	if *called {
		t.Fatal("handler should not run")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	body := decodeGateBody(t, rec)
	if body["signOut"] != true {
		t.Fatalf("signOut = %v, want true", body["signOut"])
	}
}

func TestAccessGateIncompleteOnboarding(t *testing.T) {
	profiles := stubProfiles{profiles: map[int64]*domain.User{
		1: {ID: 1, Role: domain.RoleDealer, Status: domain.UserActive},
	}}
	next, called := okHandler()
	gate := AccessGate(profiles, "/")(next)

	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, requestAs(&authctx.CurrentUser{ID: 1}))

	if *called {
		t.Fatal("handler should not run")
	}
	if body := decodeGateBody(t, rec); body["redirect"] != "/onboarding" {
		t.Fatalf("redirect = %v, want /onboarding", body["redirect"])
	}
}

func TestOnboardingGateAllowsIncompleteOnboarding(t *testing.T) {
	profiles := stubProfiles{profiles: map[int64]*domain.User{
		1: {ID: 1, Role: domain.RoleOther, Status: domain.UserActive},
	}}
	next, called := okHandler()
	gate := OnboardingGate(profiles)(next)

	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, requestAs(&authctx.CurrentUser{ID: 1}))

	if !*called {
		t.Fatal("handler should run for incomplete onboarding")
	}
}

func TestOnboardingGateStillBlocksBlockedAccounts(t *testing.T) {
	profiles := stubProfiles{profiles: map[int64]*domain.User{
		1: {ID: 1, Role: domain.RoleOther, Status: domain.UserBlocked},
	}}
	next, called := okHandler()
	gate := OnboardingGate(profiles)(next)

	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, requestAs(&authctx.CurrentUser{ID: 1}))

	if *called {
		t.Fatal("handler should not run")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestRequireCapabilityRedirectsNonCommercialRoles(t *testing.T) {
	next, called := okHandler()
	mw := RequireCapability(access.PlaceOrders, "/distributors")(next)

	mechanic := domain.User{ID: 2, Role: domain.RoleMechanic, Status: domain.UserActive, OnboardingComplete: true}
	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	req = req.WithContext(authctx.WithProfile(req.Context(), mechanic))

	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)

	if *called {
		t.Fatal("handler should not run")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if body := decodeGateBody(t, rec); body["redirect"] != "/distributors" {
		t.Fatalf("redirect = %v, want /distributors", body["redirect"])
	}
}

func TestRequireCapabilityAllowsDistributor(t *testing.T) {
	next, called := okHandler()
	mw := RequireCapability(access.PlaceOrders, "/distributors")(next)

	distributor := domain.User{ID: 3, Role: domain.RoleDistributor, Status: domain.UserActive, OnboardingComplete: true}
	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	req = req.WithContext(authctx.WithProfile(req.Context(), distributor))

	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)

	if !*called {
		t.Fatal("handler should run for a distributor")
	}
}
