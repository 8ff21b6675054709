package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gropower-backend/internal/domain"
	"gropower-backend/internal/repository"
)

// ProductHandler serves the public catalog.
type ProductHandler struct {
	Repo     repository.ProductRepository
	Currency string
}

func (h ProductHandler) RegisterRoutes(r chi.Router) {
	r.Get("/products", h.list)
	r.Get("/products/{id}", h.get)
}

func (h ProductHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context(), false)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, p := range items {
		resp = append(resp, h.toProductResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h ProductHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	p, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.toProductResponse(*p))
}

func (h ProductHandler) toProductResponse(p domain.Product) map[string]any {
	resp := map[string]any{
		"id":          strconv.FormatInt(p.ID, 10),
		"name":        p.DisplayName(),
		"type":        p.Type,
		"litre":       p.Litre,
		"price":       p.Price.Amount,
		"discount":    p.Discount,
		"description": p.Description,
		"image":       p.Image,
		"status":      string(p.Status),
		"currency":    h.Currency,
	}
	// Struck-through price on discounted products.
	if p.Discount > 0 {
		resp["listPrice"] = p.ListPrice()
	}
	return resp
}
