// Package checkout walks a buyer from the order summary through manual
// bank-transfer confirmation and writes one order per distinct cart line.
package checkout

import (
	"context"
	"errors"
	"sync"

	"gropower-backend/internal/cart"
)

// State of the checkout flow.
type State int

const (
	StateSummary State = iota
	StatePaymentInstructions
	StateTransactionIDEntry
	StateConfirming
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateSummary:
		return "summary"
	case StatePaymentInstructions:
		return "payment-instructions"
	case StateTransactionIDEntry:
		return "transaction-id-entry"
	case StateConfirming:
		return "confirming"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

var (
	ErrSignInRequired        = errors.New("sign in required")
	ErrEmptyCart             = errors.New("cart is empty")
	ErrTransactionIDRequired = errors.New("transaction id is required")
	ErrInvalidState          = errors.New("invalid checkout state")
)

// Buyer is the signed-in principal placing the order, with the contact
// snapshot denormalized onto each order record.
type Buyer struct {
	UserID         int64
	Name           string
	Email          string
	CallNumber     string
	WhatsappNumber string
	ProfileImage   string
}

// CreateOrderInput is one order-ledger write. TotalAmount is fixed here,
// at order time; later product price changes never touch it.
type CreateOrderInput struct {
	ProductID     int64
	ProductName   string
	Quantity      int
	TotalAmount   int64
	TransactionID string
	Buyer         Buyer
}

// OrderWriter is the order-ledger collaborator the flow terminates into.
type OrderWriter interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (int64, error)
}

// Machine drives one buyer through a single checkout.
type Machine struct {
	orders  OrderWriter
	buyer   Buyer
	cart    *cart.Cart
	state   State
	txnID   string
	pending []cart.Line
	created []int64
	lastErr error
}

// Begin opens the flow at the order summary. It refuses to start without a
// signed-in buyer or with an empty cart.
func Begin(buyer *Buyer, c *cart.Cart, orders OrderWriter) (*Machine, error) {
	if buyer == nil || buyer.UserID == 0 {
		return nil, ErrSignInRequired
	}
	if c == nil || c.Empty() {
		return nil, ErrEmptyCart
	}
	return &Machine{
		orders:  orders,
		buyer:   *buyer,
		cart:    c,
		state:   StateSummary,
		pending: c.Lines(),
	}, nil
}

func (m *Machine) State() State { return m.state }

// Total is the cart total shown on the summary step.
func (m *Machine) Total() int64 { return m.cart.Total() }

// CreatedOrderIDs lists the ledger ids written so far, including lines that
// succeeded before a partial failure.
func (m *Machine) CreatedOrderIDs() []int64 { return m.created }

// LastError is the first error of the most recent failed confirmation.
func (m *Machine) LastError() error { return m.lastErr }

// Next advances the two unconditional transitions: summary to payment
// instructions, payment instructions to transaction-id entry.
func (m *Machine) Next() error {
	switch m.state {
	case StateSummary:
		m.state = StatePaymentInstructions
	case StatePaymentInstructions:
		m.state = StateTransactionIDEntry
	default:
		return ErrInvalidState
	}
	return nil
}

// EnterTransactionID captures the buyer-supplied transfer reference. The
// id must be non-empty; the same id may be resubmitted on retry.
func (m *Machine) EnterTransactionID(id string) error {
	if m.state != StateTransactionIDEntry {
		return ErrInvalidState
	}
	if id == "" {
		return ErrTransactionIDRequired
	}
	m.txnID = id
	return nil
}

// Confirm issues one order-creation write per pending cart line, all fired
// concurrently and then awaited together. When every write lands the cart
// is cleared and the flow ends in StateSuccess. On any failure the cart is
// kept, only the failed lines stay pending for the next Confirm, and the
// state returns to transaction-id entry so the buyer can retry.
func (m *Machine) Confirm(ctx context.Context) ([]int64, error) {
	if m.state != StateTransactionIDEntry {
		return nil, ErrInvalidState
	}
	if m.txnID == "" {
		return nil, ErrTransactionIDRequired
	}
	m.state = StateConfirming

	ids := make([]int64, len(m.pending))
	errs := make([]error, len(m.pending))

	var wg sync.WaitGroup
	for i, line := range m.pending {
		wg.Add(1)
		go func(i int, line cart.Line) {
			defer wg.Done()
			ids[i], errs[i] = m.orders.CreateOrder(ctx, CreateOrderInput{
				ProductID:     line.Product.ID,
				ProductName:   line.Product.DisplayName(),
				Quantity:      line.Quantity,
				TotalAmount:   line.Subtotal(),
				TransactionID: m.txnID,
				Buyer:         m.buyer,
			})
		}(i, line)
	}
	wg.Wait()

	var failed []cart.Line
	var firstErr error
	for i := range m.pending {
		if errs[i] != nil {
			failed = append(failed, m.pending[i])
			if firstErr == nil {
				firstErr = errs[i]
			}
			continue
		}
		m.created = append(m.created, ids[i])
	}

	if firstErr != nil {
		m.pending = failed
		m.lastErr = firstErr
		// Retryable: back to id entry with the cart untouched.
		m.state = StateTransactionIDEntry
		return m.created, firstErr
	}

	m.pending = nil
	m.lastErr = nil
	m.state = StateSuccess
	m.cart.Clear()
	return m.created, nil
}
