package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	p := Product{Type: "Engine Oil", Litre: "4L"}
	assert.Equal(t, "Engine Oil - 4L", p.DisplayName())
}

func TestListPrice(t *testing.T) {
	p := Product{Price: Money{Amount: 9000}, Discount: 10}
	// 9000 / (1 - 0.10) = 10000
	assert.Equal(t, int64(10000), p.ListPrice())

	noDiscount := Product{Price: Money{Amount: 9000}}
	assert.Equal(t, int64(9000), noDiscount.ListPrice())

	fullDiscount := Product{Price: Money{Amount: 9000}, Discount: 100}
	assert.Equal(t, int64(9000), fullDiscount.ListPrice())
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "Ada Obi", User{FirstName: "Ada", LastName: "Obi"}.FullName())
	assert.Equal(t, "Ada", User{FirstName: "Ada"}.FullName())
	assert.Equal(t, "ada@example.com", User{Email: "ada@example.com"}.FullName())
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleDealer))
	assert.True(t, ValidRole(RoleKekeDriver))
	assert.False(t, ValidRole("Superuser"))
}

func TestValidProductStatus(t *testing.T) {
	assert.True(t, ValidProductStatus(ProductActive))
	assert.True(t, ValidProductStatus(ProductInactive))
	assert.False(t, ValidProductStatus("archived"))
	assert.False(t, ValidProductStatus(""))
}
