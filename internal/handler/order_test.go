package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"gropower-backend/internal/checkout"
	"gropower-backend/internal/domain"
	"gropower-backend/internal/repository"
	"gropower-backend/internal/server/authctx"
)

type stubLedger struct {
	mu      sync.Mutex
	nextID  int64
	calls   []checkout.CreateOrderInput
	failFor map[int64]error
}

func (s *stubLedger) CreateOrder(ctx context.Context, in checkout.CreateOrderInput) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, in)
	if err := s.failFor[in.ProductID]; err != nil {
		return 0, err
	}
	s.nextID++
	return s.nextID, nil
}

type stubCatalog struct {
	products map[int64]*domain.Product
}

func (s stubCatalog) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

type stubOrderReader struct {
	orders []domain.Order
	err    error
}

func (s stubOrderReader) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	return s.orders, s.err
}

func testProduct(id int64, price int64) *domain.Product {
	return &domain.Product{
		ID:     id,
		Type:   "Engine Oil",
		Litre:  "4L",
		Price:  domain.Money{Amount: price, Currency: "NGN"},
		Status: domain.ProductActive,
	}
}

func placeOrderRequest(t *testing.T, payload any, user *domain.User) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	if user != nil {
		req = req.WithContext(authctx.WithProfile(req.Context(), *user))
	}
	return req
}

func buyerProfile() *domain.User {
	return &domain.User{
		ID:                 7,
		Email:              "ada@example.com",
		Role:               domain.RoleDealer,
		Status:             domain.UserActive,
		OnboardingComplete: true,
		FirstName:          "Ada",
		LastName:           "Obi",
	}
}

func TestPlaceOrderCreatesOneOrderPerLine(t *testing.T) {
	ledger := &stubLedger{}
	h := OrderHandler{
		Ledger:  ledger,
		Catalog: stubCatalog{products: map[int64]*domain.Product{1: testProduct(1, 1000)}},
	}

	req := placeOrderRequest(t, orderPayload{
		Items:         []orderLine{{ProductID: 1, Quantity: 2}},
		TransactionID: "TXN123",
	}, buyerProfile())
	rec := httptest.NewRecorder()
	h.placeOrder(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if len(ledger.calls) != 1 {
		t.Fatalf("ledger calls = %d, want 1", len(ledger.calls))
	}
	got := ledger.calls[0]
	if got.ProductName != "Engine Oil - 4L" {
		t.Fatalf("product name = %q", got.ProductName)
	}
	if got.Quantity != 2 || got.TotalAmount != 2000 {
		t.Fatalf("quantity/total = %d/%d, want 2/2000", got.Quantity, got.TotalAmount)
	}
	if got.TransactionID != "TXN123" {
		t.Fatalf("transaction id = %q", got.TransactionID)
	}
	if got.Buyer.UserID != 7 || got.Buyer.Name != "Ada Obi" {
		t.Fatalf("buyer snapshot = %+v", got.Buyer)
	}
}

func TestPlaceOrderWithoutProfile(t *testing.T) {
	h := OrderHandler{Ledger: &stubLedger{}, Catalog: stubCatalog{}}

	req := placeOrderRequest(t, orderPayload{
		Items:         []orderLine{{ProductID: 1, Quantity: 1}},
		TransactionID: "TXN123",
	}, nil)
	rec := httptest.NewRecorder()
	h.placeOrder(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	h := OrderHandler{Ledger: &stubLedger{}, Catalog: stubCatalog{}}

	req := placeOrderRequest(t, orderPayload{TransactionID: "TXN123"}, buyerProfile())
	rec := httptest.NewRecorder()
	h.placeOrder(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestPlaceOrderMissingTransactionID(t *testing.T) {
	ledger := &stubLedger{}
	h := OrderHandler{
		Ledger:  ledger,
		Catalog: stubCatalog{products: map[int64]*domain.Product{1: testProduct(1, 1000)}},
	}

	req := placeOrderRequest(t, orderPayload{
		Items: []orderLine{{ProductID: 1, Quantity: 1}},
	}, buyerProfile())
	rec := httptest.NewRecorder()
	h.placeOrder(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if len(ledger.calls) != 0 {
		t.Fatalf("ledger calls = %d, want 0", len(ledger.calls))
	}
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	h := OrderHandler{Ledger: &stubLedger{}, Catalog: stubCatalog{}}

	req := placeOrderRequest(t, orderPayload{
		Items:         []orderLine{{ProductID: 42, Quantity: 1}},
		TransactionID: "TXN123",
	}, buyerProfile())
	rec := httptest.NewRecorder()
	h.placeOrder(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestPlaceOrderInactiveProduct(t *testing.T) {
	inactive := testProduct(1, 1000)
	inactive.Status = domain.ProductInactive
	h := OrderHandler{
		Ledger:  &stubLedger{},
		Catalog: stubCatalog{products: map[int64]*domain.Product{1: inactive}},
	}

	req := placeOrderRequest(t, orderPayload{
		Items:         []orderLine{{ProductID: 1, Quantity: 1}},
		TransactionID: "TXN123",
	}, buyerProfile())
	rec := httptest.NewRecorder()
	h.placeOrder(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestPlaceOrderPartialFailureReportsCreatedIDs(t *testing.T) {
	ledger := &stubLedger{failFor: map[int64]error{2: errors.New("write rejected")}}
	h := OrderHandler{
		Ledger: ledger,
		Catalog: stubCatalog{products: map[int64]*domain.Product{
			1: testProduct(1, 1000),
			2: testProduct(2, 500),
		}},
	}

	req := placeOrderRequest(t, orderPayload{
		Items: []orderLine{
			{ProductID: 1, Quantity: 1},
			{ProductID: 2, Quantity: 1},
		},
		TransactionID: "TXN456",
	}, buyerProfile())
	rec := httptest.NewRecorder()
	h.placeOrder(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadGateway)
	}
	var body struct {
		CreatedOrderIDs []string `json:"createdOrderIds"`
		State           string   `json:"state"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.CreatedOrderIDs) != 1 {
		t.Fatalf("created ids = %v, want one entry", body.CreatedOrderIDs)
	}
	if body.State != "transaction-id-entry" {
		t.Fatalf("state = %q, want transaction-id-entry", body.State)
	}
}

func TestListMine(t *testing.T) {
	h := OrderHandler{MyOrders: stubOrderReader{orders: []domain.Order{
		{ID: 1, ProductName: "Engine Oil - 4L", Quantity: 2, UserID: 7},
	}}}

	req := httptest.NewRequest(http.MethodGet, "/orders/my", nil)
	req = req.WithContext(authctx.WithProfile(req.Context(), *buyerProfile()))
	rec := httptest.NewRecorder()
	h.listMine(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var body []map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body) != 1 || body[0]["productName"] != "Engine Oil - 4L" {
		t.Fatalf("unexpected body: %v", body)
	}
}
