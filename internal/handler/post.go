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
)

// PostHandler serves the public news feed and its admin CMS.
type PostHandler struct {
	Repo repository.PostRepository
}

func (h PostHandler) RegisterRoutes(r chi.Router) {
	r.Get("/posts", h.list)
	r.Get("/posts/{id}", h.get)
}

func (h PostHandler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/admin/posts", h.upsert)
	r.Delete("/admin/posts/{id}", h.delete)
}

func (h PostHandler) list(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Repo.List(r.Context(), 100)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]map[string]any, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h PostHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}
	post, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toPostResponse(*post))
}

func (h PostHandler) upsert(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID    string `json:"id"`
		Title string `json:"title"`
		Body  string `json:"body"`
		Image string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Title == "" || req.Body == "" {
		writeError(w, http.StatusBadRequest, "title and body are required")
		return
	}
	var id int64
	if req.ID != "" {
		parsed, err := strconv.ParseInt(req.ID, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid post id")
			return
		}
		id = parsed
	}
	post, err := h.Repo.Save(r.Context(), domain.Post{
		ID:    id,
		Title: req.Title,
		Body:  req.Body,
		Image: req.Image,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toPostResponse(*post))
}

func (h PostHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func toPostResponse(p domain.Post) map[string]any {
	return map[string]any{
		"id":        strconv.FormatInt(p.ID, 10),
		"title":     p.Title,
		"body":      p.Body,
		"image":     p.Image,
		"createdAt": p.CreatedAt.UTC().Format(time.RFC3339),
		"updatedAt": p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
