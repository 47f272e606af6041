package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartAddItemDeduplicates(t *testing.T) {
	cart := &Cart{}
	cart.AddItem("rose-1", "Red Roses", 5000, "roses.jpg", 1)
	cart.AddItem("rose-1", "Red Roses", 5000, "roses.jpg", 1)

	lines := cart.Lines()
	assert.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestCartAddItemWithQuantity(t *testing.T) {
	cart := &Cart{}
	cart.AddItem("rose-1", "Red Roses", 5000, "roses.jpg", 3)
	cart.AddItem("rose-1", "Red Roses", 5000, "roses.jpg", 2)

	lines := cart.Lines()
	assert.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestCartAddItemQuantityBelowOneCountsAsOne(t *testing.T) {
	cart := &Cart{}
	cart.AddItem("rose-1", "Red Roses", 5000, "", 0)
	cart.AddItem("lily-2", "White Lilies", 2500, "", -4)

	for _, line := range cart.Lines() {
		assert.Equal(t, 1, line.Quantity)
	}
}

func TestCartUpdateQuantityRemovesAtZeroAndBelow(t *testing.T) {
	for _, quantity := range []int{0, -1} {
		cart := &Cart{}
		cart.AddItem("lily-2", "White Lilies", 3000, "lilies.jpg", 1)
		cart.UpdateQuantity("lily-2", quantity)
		assert.True(t, cart.IsEmpty(), "quantity %d should empty the cart", quantity)
	}
}

func TestCartUpdateQuantityUnknownItemIsNoop(t *testing.T) {
	cart := &Cart{}
	cart.AddItem("rose-1", "Red Roses", 5000, "roses.jpg", 1)
	cart.UpdateQuantity("missing", 7)

	lines := cart.Lines()
	assert.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestCartKeepsInsertionOrder(t *testing.T) {
	cart := &Cart{}
	cart.AddItem("c", "Carnations", 1000, "", 1)
	cart.AddItem("a", "Anemones", 2000, "", 1)
	cart.AddItem("b", "Begonias", 1500, "", 1)
	cart.AddItem("a", "Anemones", 2000, "", 1)

	var ids []string
	for _, line := range cart.Lines() {
		ids = append(ids, line.ItemID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}

func TestCartTotals(t *testing.T) {
	cart := &Cart{}
	cart.AddItem("rose-1", "Red Roses", 5000, "", 1)
	cart.AddItem("rose-1", "Red Roses", 5000, "", 1)
	cart.AddItem("lily-2", "White Lilies", 2500, "", 1)

	totals := cart.Totals(0)
	assert.Equal(t, 12500, totals.Subtotal)
	assert.Equal(t, 1250, totals.Tax)
	assert.Equal(t, 0, totals.ShippingFee)
	assert.Equal(t, 13750, totals.Total)

	withShipping := cart.Totals(1500)
	assert.Equal(t, 1500, withShipping.ShippingFee)
	assert.Equal(t, 15250, withShipping.Total)
}

func TestCartTotalsFloorsTax(t *testing.T) {
	cart := &Cart{}
	cart.AddItem("stem", "Single Stem", 999, "", 1)

	totals := cart.Totals(0)
	assert.Equal(t, 99, totals.Tax)
	assert.Equal(t, 1098, totals.Total)
}

func TestCartTotalsIsExactSum(t *testing.T) {
	cart := &Cart{}
	cart.AddItem("a", "A", 1234, "", 1)
	cart.AddItem("b", "B", 567, "", 1)
	cart.UpdateQuantity("a", 3)

	for _, fee := range []int{0, 700, 2500} {
		totals := cart.Totals(fee)
		assert.Equal(t, totals.Subtotal+totals.Tax+totals.ShippingFee, totals.Total)
	}
}

func TestCartTotalsIsIdempotent(t *testing.T) {
	cart := &Cart{}
	cart.AddItem("rose-1", "Red Roses", 5000, "", 1)

	first := cart.Totals(1000)
	second := cart.Totals(1000)
	assert.Equal(t, first, second)
	assert.Len(t, cart.Lines(), 1)
}

func TestCartClear(t *testing.T) {
	cart := &Cart{}
	cart.AddItem("rose-1", "Red Roses", 5000, "", 1)
	cart.Clear()

	assert.True(t, cart.IsEmpty())
	assert.Equal(t, Totals{}, cart.Totals(0))
}
