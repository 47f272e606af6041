package models

// taxRatePercent is the flat VAT applied to the cart subtotal. Amounts
// are whole Naira, so integer division doubles as the rounding rule
// (floor). Every surface that shows a tax figure goes through Totals so
// the same figure appears on the cart, checkout and confirmation.
const taxRatePercent = 10

// CartLine is one product entry in a shopper's cart.
type CartLine struct {
	ItemID    string `json:"itemId"`
	Name      string `json:"name"`
	UnitPrice int    `json:"unitPrice"`
	ImageURL  string `json:"imageUrl"`
	Quantity  int    `json:"quantity"`
}

// Totals is the financial breakdown of a cart. Total is always the
// exact sum of the three components.
type Totals struct {
	Subtotal    int `json:"subtotal"`
	Tax         int `json:"tax"`
	ShippingFee int `json:"shippingFee"`
	Total       int `json:"total"`
}

// Cart holds one shopper session's line items. Lines keep insertion
// order for display, and at most one line exists per item id.
type Cart struct {
	lines []CartLine
}

// AddItem puts quantity units of a product in the cart. Adding an item
// that is already present bumps its quantity instead of creating a
// second line. Quantities below 1 count as 1.
func (c *Cart) AddItem(itemID, name string, unitPrice int, imageURL string, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.lines {
		if c.lines[i].ItemID == itemID {
			c.lines[i].Quantity += quantity
			return
		}
	}
	c.lines = append(c.lines, CartLine{
		ItemID:    itemID,
		Name:      name,
		UnitPrice: unitPrice,
		ImageURL:  imageURL,
		Quantity:  quantity,
	})
}

// UpdateQuantity sets the quantity of a line. Anything below 1 removes
// the line; a quantity of zero never survives in the cart. Unknown item
// ids are ignored.
func (c *Cart) UpdateQuantity(itemID string, quantity int) {
	if quantity < 1 {
		c.RemoveItem(itemID)
		return
	}
	for i := range c.lines {
		if c.lines[i].ItemID == itemID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

// RemoveItem deletes a line if present.
func (c *Cart) RemoveItem(itemID string) {
	for i := range c.lines {
		if c.lines[i].ItemID == itemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart. Called only after the upstream API confirms
// an order was created.
func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Lines returns a copy of the cart contents in insertion order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Totals computes the financial breakdown for the given shipping fee.
// It reads the cart without mutating it, so callers may invoke it as
// often as they like.
func (c *Cart) Totals(shippingFee int) Totals {
	subtotal := 0
	for _, line := range c.lines {
		subtotal += line.UnitPrice * line.Quantity
	}
	tax := subtotal * taxRatePercent / 100
	return Totals{
		Subtotal:    subtotal,
		Tax:         tax,
		ShippingFee: shippingFee,
		Total:       subtotal + tax + shippingFee,
	}
}
