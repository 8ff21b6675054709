package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"gropower-backend/internal/repository"
)

type DashboardHandler struct {
	Repo repository.StatsRepository
}

func (h DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/admin/dashboard", h.stats)
}

func (h DashboardHandler) stats(w http.ResponseWriter, r *http.Request) {
	s, err := h.Repo.Dashboard(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"dealers":      s.DealerCount,
		"distributors": s.DistributorCount,
		"staff":        s.StaffCount,
		"others":       s.OthersCount,
		"orders":       s.OrderCount,
		"products":     s.ProductCount,
	})
}
