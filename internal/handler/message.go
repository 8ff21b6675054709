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

type MessageHandler struct {
	Repo repository.MessageRepository
}

func (h MessageHandler) RegisterRoutes(r chi.Router) {
	r.Get("/messages/my", h.listMine)
	r.Put("/messages/{id}/read", h.markRead)
}

// RegisterAdminRoutes mounts announcement sending.
func (h MessageHandler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/admin/messages", h.send)
}

func (h MessageHandler) listMine(w http.ResponseWriter, r *http.Request) {
	current := authctx.FromContext(r.Context())
	if current == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	msgs, err := h.Repo.ListByReceiver(r.Context(), current.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]map[string]any, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageResponse(m))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h MessageHandler) markRead(w http.ResponseWriter, r *http.Request) {
	current := authctx.FromContext(r.Context())
	if current == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid message id")
		return
	}
	if err := h.Repo.MarkRead(r.Context(), id, current.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "message not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"read": true})
}

func (h MessageHandler) send(w http.ResponseWriter, r *http.Request) {
	current := authctx.FromContext(r.Context())
	if current == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req struct {
		ReceiverID string `json:"receiverId"`
		Body       string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	receiverID, err := strconv.ParseInt(req.ReceiverID, 10, 64)
	if err != nil || receiverID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid receiver id")
		return
	}
	if req.Body == "" {
		writeError(w, http.StatusBadRequest, "body is required")
		return
	}
	msg, err := h.Repo.Create(r.Context(), current.ID, receiverID, req.Body)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toMessageResponse(*msg))
}

func toMessageResponse(m domain.Message) map[string]any {
	resp := map[string]any{
		"id":         strconv.FormatInt(m.ID, 10),
		"senderId":   strconv.FormatInt(m.SenderID, 10),
		"receiverId": strconv.FormatInt(m.ReceiverID, 10),
		"body":       m.Body,
		"read":       m.ReadAt != nil,
		"createdAt":  m.CreatedAt.UTC().Format(time.RFC3339),
	}
	if m.ReadAt != nil {
		resp["readAt"] = m.ReadAt.UTC().Format(time.RFC3339)
	}
	return resp
}
