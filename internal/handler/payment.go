package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"gropower-backend/internal/config"
)

// PaymentHandler serves the manual bank-transfer instructions shown on the
// payment step of checkout.
type PaymentHandler struct {
	Config config.Config
}

func (h PaymentHandler) RegisterRoutes(r chi.Router) {
	r.Get("/payment-instructions", h.instructions)
}

func (h PaymentHandler) instructions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"bankName":      h.Config.BankName,
		"accountName":   h.Config.BankAccountName,
		"accountNumber": h.Config.BankAccountNumber,
		"currency":      h.Config.DefaultCurrency,
		"note":          "After transfer, enter your transaction reference to confirm the order.",
	})
}
