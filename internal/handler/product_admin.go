package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gropower-backend/internal/domain"
	"gropower-backend/internal/repository"
)

type ProductAdminHandler struct {
	Repo     repository.ProductRepository
	Currency string
}

func (h ProductAdminHandler) RegisterRoutes(r chi.Router) {
	r.Get("/admin/products", h.list)
	r.Post("/admin/products", h.upsert)
	r.Delete("/admin/products/{id}", h.delete)
}

func (h ProductAdminHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context(), true)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	view := ProductHandler{Currency: h.Currency}
	resp := make([]map[string]any, 0, len(items))
	for _, p := range items {
		resp = append(resp, view.toProductResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h ProductAdminHandler) upsert(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID          *int64 `json:"id"`
		Type        string `json:"type"`
		Litre       string `json:"litre"`
		Price       int64  `json:"price"`
		Discount    int    `json:"discount"`
		Description string `json:"description"`
		Image       string `json:"image"`
		Status      string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Type == "" || req.Litre == "" {
		writeError(w, http.StatusBadRequest, "type and litre are required")
		return
	}
	if req.Price < 0 {
		writeError(w, http.StatusBadRequest, "price must not be negative")
		return
	}
	if req.Discount < 0 || req.Discount > 100 {
		writeError(w, http.StatusBadRequest, "discount must be between 0 and 100")
		return
	}
	status := domain.ProductStatus(req.Status)
	if status == "" {
		status = domain.ProductActive
	}
	if !domain.ValidProductStatus(status) {
		writeError(w, http.StatusBadRequest, "status must be active or inactive")
		return
	}
	p := domain.Product{
		Type:        req.Type,
		Litre:       req.Litre,
		Price:       domain.Money{Amount: req.Price, Currency: h.Currency},
		Discount:    req.Discount,
		Description: req.Description,
		Image:       req.Image,
		Status:      status,
	}
	if req.ID != nil {
		p.ID = *req.ID
	}
	saved, err := h.Repo.Save(r.Context(), p)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	view := ProductHandler{Currency: h.Currency}
	writeJSON(w, http.StatusOK, view.toProductResponse(*saved))
}

func (h ProductAdminHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
