package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gropower-backend/internal/domain"
)

func product(id int64, price int64) domain.Product {
	return domain.Product{
		ID:    id,
		Type:  "Engine Oil",
		Litre: "4L",
		Price: domain.Money{Amount: price, Currency: "NGN"},
	}
}

func TestAddOrIncrement(t *testing.T) {
	c := New()
	c.AddOrIncrement(product(1, 1000), 2)
	c.AddOrIncrement(product(1, 1000), 3)
	c.AddOrIncrement(product(2, 500), 1)

	lines := c.Lines()
	assert.Len(t, lines, 2)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, 1, lines[1].Quantity)
}

func TestQuantityFloor(t *testing.T) {
	c := New()
	c.AddOrIncrement(product(1, 1000), 0)
	assert.Equal(t, 1, c.Lines()[0].Quantity)

	c.AddOrIncrement(product(2, 500), -5)
	assert.Equal(t, 1, c.Lines()[1].Quantity)

	// Decrement below one clamps instead of removing the line.
	c.Adjust(1, -10)
	assert.Equal(t, 1, c.Lines()[0].Quantity)
}

func TestAdjustUnknownProductIsNoop(t *testing.T) {
	c := New()
	c.AddOrIncrement(product(1, 1000), 1)
	c.Adjust(99, 5)
	assert.Equal(t, int64(1000), c.Total())
}

func TestTotalRecomputedAfterEveryChange(t *testing.T) {
	c := New()
	c.AddOrIncrement(product(1, 1000), 2)
	assert.Equal(t, int64(2000), c.Total())

	c.Adjust(1, 1)
	assert.Equal(t, int64(3000), c.Total())

	c.AddOrIncrement(product(2, 250), 4)
	assert.Equal(t, int64(4000), c.Total())
}

func TestClear(t *testing.T) {
	c := New()
	c.AddOrIncrement(product(1, 1000), 1)
	assert.False(t, c.Empty())

	c.Clear()
	assert.True(t, c.Empty())
	assert.Equal(t, int64(0), c.Total())
}

func TestLinesReturnsCopy(t *testing.T) {
	c := New()
	c.AddOrIncrement(product(1, 1000), 1)

	lines := c.Lines()
	lines[0].Quantity = 99
	assert.Equal(t, 1, c.Lines()[0].Quantity)
}
