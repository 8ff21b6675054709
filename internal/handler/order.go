package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"gropower-backend/internal/cart"
	"gropower-backend/internal/checkout"
	"gropower-backend/internal/domain"
	"gropower-backend/internal/repository"
	"gropower-backend/internal/server/authctx"
)

// CatalogReader is what order placement needs from the product repository.
type CatalogReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

// OrderHandler runs the checkout flow for commercial buyers.
type OrderHandler struct {
	Ledger   checkout.OrderWriter
	Catalog  CatalogReader
	MyOrders OrderReader
}

// OrderReader lists a buyer's own orders.
type OrderReader interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
}

// OrderLedger adapts the order repository to the checkout flow's writer.
type OrderLedger struct {
	Repo repository.OrderRepository
}

func (l OrderLedger) CreateOrder(ctx context.Context, in checkout.CreateOrderInput) (int64, error) {
	return l.Repo.Create(ctx, repository.CreateOrderParams{
		ProductID:     in.ProductID,
		ProductName:   in.ProductName,
		Quantity:      in.Quantity,
		TotalAmount:   in.TotalAmount,
		TransactionID: in.TransactionID,
		UserID:        in.Buyer.UserID,
		Buyer: domain.BuyerSnapshot{
			Name:           in.Buyer.Name,
			Email:          in.Buyer.Email,
			CallNumber:     in.Buyer.CallNumber,
			WhatsappNumber: in.Buyer.WhatsappNumber,
			ProfileImage:   in.Buyer.ProfileImage,
		},
	})
}

func (h OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/orders", h.placeOrder)
	r.Get("/orders/my", h.listMine)
}

type orderPayload struct {
	Items         []orderLine `json:"items"`
	TransactionID string      `json:"transactionId"`
}

type orderLine struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// placeOrder drives the whole checkout machine in one request: the
// summary and payment-instruction steps are display-only on the client,
// so the server enters at transaction-id capture and confirms.
func (h OrderHandler) placeOrder(w http.ResponseWriter, r *http.Request) {
	user := authctx.ProfileFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req orderPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, checkout.ErrEmptyCart.Error())
		return
	}

	c := cart.New()
	for _, it := range req.Items {
		p, err := h.Catalog.GetByID(r.Context(), it.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				writeError(w, http.StatusBadRequest, "unknown product in cart")
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if p.Status != domain.ProductActive {
			writeError(w, http.StatusBadRequest, "product is not available")
			return
		}
		c.AddOrIncrement(*p, it.Quantity)
	}

	buyer := checkout.Buyer{
		UserID:         user.ID,
		Name:           user.FullName(),
		Email:          user.Email,
		CallNumber:     user.CallNumber,
		WhatsappNumber: user.WhatsappNumber,
		ProfileImage:   user.ProfileImage,
	}

	m, err := checkout.Begin(&buyer, c, h.Ledger)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	// Summary -> payment instructions -> transaction id entry.
	_ = m.Next()
	_ = m.Next()
	if err := m.EnterTransactionID(req.TransactionID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	total := m.Total()
	ids, err := m.Confirm(r.Context())
	if err != nil {
		// Partial failures keep the cart on the client; report the first
		// error and let the buyer re-press confirm.
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"error": apiError{
				Code:    http.StatusBadGateway,
				Status:  http.StatusText(http.StatusBadGateway),
				Message: err.Error(),
			},
			"createdOrderIds": formatIDs(ids),
			"state":           m.State().String(),
		})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"orderIds": formatIDs(ids),
		"total":    total,
		"state":    m.State().String(),
	})
}

func (h OrderHandler) listMine(w http.ResponseWriter, r *http.Request) {
	user := authctx.ProfileFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	orders, err := h.MyOrders.ListByUser(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func toOrderResponses(orders []domain.Order) []map[string]any {
	out := make([]map[string]any, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}

func toOrderResponse(o domain.Order) map[string]any {
	return map[string]any{
		"id":             strconv.FormatInt(o.ID, 10),
		"productId":      strconv.FormatInt(o.ProductID, 10),
		"productName":    o.ProductName,
		"quantity":       o.Quantity,
		"totalAmount":    o.TotalAmount.Amount,
		"transactionId":  o.TransactionID,
		"userId":         strconv.FormatInt(o.UserID, 10),
		"userName":       o.Buyer.Name,
		"email":          o.Buyer.Email,
		"callNumber":     o.Buyer.CallNumber,
		"whatsappNumber": o.Buyer.WhatsappNumber,
		"profileImage":   o.Buyer.ProfileImage,
		"status":         string(o.Status),
		"balance":        o.Balance.Amount,
		"createdAt":      o.CreatedAt.UTC().Format(time.RFC3339),
		"updatedAt":      o.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func formatIDs(ids []int64) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, strconv.FormatInt(id, 10))
	}
	return out
}
