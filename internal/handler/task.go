package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"gropower-backend/internal/domain"
	"gropower-backend/internal/repository"
	"gropower-backend/internal/server/authctx"
)

type TaskHandler struct {
	Repo  repository.TaskRepository
	Users repository.UserRepository
}

// RegisterRoutes mounts the staff-facing task board.
func (h TaskHandler) RegisterRoutes(r chi.Router) {
	r.Get("/tasks/my", h.listMine)
	r.Put("/tasks/{id}/status", h.updateStatus)
	r.Delete("/tasks/{id}", h.delete)
}

// RegisterAdminRoutes mounts task assignment for admins.
func (h TaskHandler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/admin/tasks", h.create)
	r.Get("/admin/tasks/user/{userID}", h.listForUser)
}

func (h TaskHandler) listMine(w http.ResponseWriter, r *http.Request) {
	current := authctx.FromContext(r.Context())
	if current == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	tasks, err := h.Repo.ListByUser(r.Context(), current.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponses(tasks))
}

func (h TaskHandler) listForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	tasks, err := h.Repo.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponses(tasks))
}

func (h TaskHandler) create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID      string `json:"userId"`
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	userID, err := strconv.ParseInt(req.UserID, 10, 64)
	if err != nil || userID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	assignee, err := h.Users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "assignee not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	task, err := h.Repo.Create(r.Context(), repository.CreateTaskParams{
		UserID:       assignee.ID,
		AssigneeName: assignee.FullName(),
		Title:        req.Title,
		Description:  req.Description,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toTaskResponse(*task))
}

func (h TaskHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	status := domain.TaskStatus(req.Status)
	if !domain.ValidTaskStatus(status) {
		writeError(w, http.StatusBadRequest, "status must be pending, in-progress or completed")
		return
	}
	if err := h.Repo.UpdateStatus(r.Context(), id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "task not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"updated": true})
}

func (h TaskHandler) delete(w http.ResponseWriter, r *http.Request) {
	current := authctx.FromContext(r.Context())
	if current == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return
	}
	if err := h.Repo.Delete(r.Context(), id, current.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "task not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func toTaskResponses(tasks []domain.Task) []map[string]any {
	out := make([]map[string]any, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	return out
}

func toTaskResponse(t domain.Task) map[string]any {
	return map[string]any{
		"id":          strconv.FormatInt(t.ID, 10),
		"userId":      strconv.FormatInt(t.UserID, 10),
		"assignee":    t.AssigneeName,
		"title":       t.Title,
		"description": t.Description,
		"status":      string(t.Status),
		"createdAt":   t.CreatedAt.UTC().Format(time.RFC3339),
		"updatedAt":   t.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
