// Package cart keeps a buyer's in-progress selection. A cart lives for a
// single checkout request and is only touched from one goroutine, so it
// carries no locking.
package cart

import "gropower-backend/internal/domain"

// Line is one selected product with its quantity.
type Line struct {
	Product  domain.Product
	Quantity int
}

// Subtotal is the line's unit price times quantity.
func (l Line) Subtotal() int64 {
	return l.Product.Price.Amount * int64(l.Quantity)
}

type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// AddOrIncrement appends a line for the product, or bumps its quantity if
// already selected. Quantities below 1 count as 1. Always succeeds.
func (c *Cart) AddOrIncrement(p domain.Product, qty int) {
	if qty < 1 {
		qty = 1
	}
	for i := range c.lines {
		if c.lines[i].Product.ID == p.ID {
			c.lines[i].Quantity += qty
			return
		}
	}
	c.lines = append(c.lines, Line{Product: p, Quantity: qty})
}

// Adjust adds delta to the product's quantity, clamped to a minimum of 1.
// Unknown products are a no-op.
func (c *Cart) Adjust(productID int64, delta int) {
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			q := c.lines[i].Quantity + delta
			if q < 1 {
				q = 1
			}
			c.lines[i].Quantity = q
			return
		}
	}
}

// Total recomputes the cart total from scratch on every call.
func (c *Cart) Total() int64 {
	var sum int64
	for _, l := range c.lines {
		sum += l.Subtotal()
	}
	return sum
}

// Lines returns a copy of the current selection.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// Clear empties the cart. Called after a fully successful order submission.
func (c *Cart) Clear() {
	c.lines = nil
}
