package server

import (
	"context"
	"errors"
	"net/http"

	"gropower-backend/internal/access"
	"gropower-backend/internal/domain"
	"gropower-backend/internal/repository"
	"gropower-backend/internal/server/authctx"
)

// ProfileStore loads the fresh profile behind a token identity. Tokens go
// stale the moment an admin blocks an account, so the gate re-reads
// status and the onboarding flag on every protected request.
type ProfileStore interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// AccessGate enforces the base gate on every protected view: signed in,
// not blocked, onboarding complete. Role checks are layered on per route
// group with RequireCapability. signInRedirect is where a missing identity
// is sent, matching the AuthMiddleware hint for the same subtree.
func AccessGate(profiles ProfileStore, signInRedirect string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := loadIdentity(r, profiles)
			switch access.Decide(identityView(identity)) {
			case access.RedirectHome:
				writeGateError(w, http.StatusUnauthorized, "sign in required", signInRedirect)
				return
			case access.ShowBlockedScreen:
				// The client must drop its tokens; refresh is refused for
				// blocked accounts so the session dies with them.
				writeBlocked(w)
				return
			case access.RedirectOnboarding:
				writeGateError(w, http.StatusForbidden, "complete onboarding first", "/onboarding")
				return
			}
			ctx := authctx.WithProfile(r.Context(), *identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OnboardingGate is the looser gate for the onboarding form itself: the
// viewer must be signed in and not blocked, but incomplete onboarding is
// exactly what brings them here.
func OnboardingGate(profiles ProfileStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := loadIdentity(r, profiles)
			switch access.Decide(identityView(identity)) {
			case access.RedirectHome:
				writeGateError(w, http.StatusUnauthorized, "sign in required", "/")
				return
			case access.ShowBlockedScreen:
				writeBlocked(w)
				return
			}
			ctx := authctx.WithProfile(r.Context(), *identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireCapability gates a route group on a capability, redirecting
// mismatched roles to the given surface.
func RequireCapability(c access.Capability, redirect string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profile := authctx.ProfileFromContext(r.Context())
			if access.Decide(identityView(profile), c) != access.Allow {
				writeGateError(w, http.StatusForbidden, "forbidden", redirect)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func loadIdentity(r *http.Request, profiles ProfileStore) *domain.User {
	current := authctx.FromContext(r.Context())
	if current == nil {
		return nil
	}
	profile, err := profiles.GetByID(r.Context(), current.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		// Treat a flaky profile read as signed out rather than crashing
		// the view; the client retries on the next navigation.
		return nil
	}
	return profile
}

func identityView(u *domain.User) *access.Identity {
	if u == nil {
		return nil
	}
	return &access.Identity{
		UserID:             u.ID,
		Email:              u.Email,
		Role:               u.Role,
		Status:             u.Status,
		OnboardingComplete: u.OnboardingComplete,
	}
}

func writeBlocked(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(`{"error":"Forbidden","message":"this account has been blocked","redirect":"/","signOut":true}`))
}
