package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
	"gropower-backend/internal/domain"
	"gropower-backend/internal/repository"
)

type UserAdminHandler struct {
	Repo repository.UserRepository
}

func (h UserAdminHandler) RegisterRoutes(r chi.Router) {
	r.Get("/admin/users", h.listCustomers)
	r.Get("/admin/users/staff", h.listStaff)
	r.Post("/admin/users", h.create)
	r.Put("/admin/users/{id}/status", h.updateStatus)
	r.Delete("/admin/users/{id}", h.delete)
}

func (h UserAdminHandler) listCustomers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Repo.ListCustomers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toUserResponses(users))
}

func (h UserAdminHandler) listStaff(w http.ResponseWriter, r *http.Request) {
	users, err := h.Repo.ListByRole(r.Context(), domain.RoleStaff)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toUserResponses(users))
}

// create registers an account on a user's behalf. Admin-created accounts
// skip onboarding entirely.
func (h UserAdminHandler) create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email          string `json:"email"`
		Password       string `json:"password"`
		Role           string `json:"role"`
		FirstName      string `json:"firstName"`
		LastName       string `json:"lastName"`
		CallNumber     string `json:"callNumber"`
		WhatsappNumber string `json:"whatsappNumber"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}
	if len(req.Password) < 6 {
		writeError(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}
	role := domain.UserRole(req.Role)
	if !domain.ValidRole(role) {
		writeError(w, http.StatusBadRequest, "unknown role")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	hashStr := string(hash)
	user, err := h.Repo.Create(r.Context(), repository.CreateUserParams{
		Email:              req.Email,
		Role:               role,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		CallNumber:         req.CallNumber,
		WhatsappNumber:     req.WhatsappNumber,
		PasswordHash:       &hashStr,
		OnboardingComplete: true,
	})
	if err != nil {
		if repository.IsDuplicate(err) {
			writeError(w, http.StatusConflict, "email already registered")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toUserResponse(*user))
}

func (h UserAdminHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	status := domain.UserStatus(req.Status)
	if status != domain.UserActive && status != domain.UserBlocked {
		writeError(w, http.StatusBadRequest, "status must be active or blocked")
		return
	}
	if err := h.Repo.UpdateStatus(r.Context(), id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	user, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(*user))
}

func (h UserAdminHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func toUserResponses(users []domain.User) []map[string]any {
	out := make([]map[string]any, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}
