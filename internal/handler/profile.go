package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"gropower-backend/internal/repository"
	"gropower-backend/internal/server/authctx"
)

type ProfileHandler struct {
	Repo repository.UserRepository
}

// RegisterOnboardingRoutes mounts the one endpoint blocked accounts aside,
// every signed-in user may reach before finishing onboarding.
func (h ProfileHandler) RegisterOnboardingRoutes(r chi.Router) {
	r.Post("/profile/onboarding", h.completeOnboarding)
}

func (h ProfileHandler) RegisterRoutes(r chi.Router) {
	r.Put("/profile/settings", h.updateSettings)
}

func (h ProfileHandler) completeOnboarding(w http.ResponseWriter, r *http.Request) {
	current := authctx.FromContext(r.Context())
	if current == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req struct {
		FirstName      string `json:"firstName"`
		LastName       string `json:"lastName"`
		CallNumber     string `json:"callNumber"`
		WhatsappNumber string `json:"whatsappNumber"`
		ProfileImage   string `json:"profileImage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.FirstName == "" || req.LastName == "" {
		writeError(w, http.StatusBadRequest, "first and last name are required")
		return
	}
	if req.CallNumber == "" {
		writeError(w, http.StatusBadRequest, "call number is required")
		return
	}
	user, err := h.Repo.CompleteOnboarding(r.Context(), current.ID,
		req.FirstName, req.LastName, req.CallNumber, req.WhatsappNumber, req.ProfileImage)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(*user))
}

func (h ProfileHandler) updateSettings(w http.ResponseWriter, r *http.Request) {
	current := authctx.FromContext(r.Context())
	if current == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req struct {
		FirstName      string `json:"firstName"`
		LastName       string `json:"lastName"`
		CallNumber     string `json:"callNumber"`
		WhatsappNumber string `json:"whatsappNumber"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	user, err := h.Repo.UpdateSettings(r.Context(), current.ID,
		req.FirstName, req.LastName, req.CallNumber, req.WhatsappNumber)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(*user))
}
