// Package cart holds the per-client shopping cart and turns it into orders.
package cart

import (
	"resto-app/internal/order"
	"resto-app/internal/product"

	"github.com/shopspring/decimal"
)

// Line is one product in the cart. Product is a copy taken when it was added.
type Line struct {
	Product  product.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

func (l Line) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(l.Product.Price).Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// MaxQuantity caps a single line. Changes past it saturate.
const MaxQuantity = 99

// Cart lines always have a quantity between 1 and MaxQuantity: any change
// that would bring a line to zero or below removes it.
type Cart []Line

func (c Cart) index(productID int) int {
	for i, l := range c {
		if l.Product.ID == productID {
			return i
		}
	}
	return -1
}

// Add merges qty into the line for p, appending a new line if needed.
func (c *Cart) Add(p product.Product, qty int) {
	if qty <= 0 {
		return
	}
	if i := c.index(p.ID); i >= 0 {
		(*c)[i].Quantity = addCapped((*c)[i].Quantity, qty)
		return
	}
	*c = append(*c, Line{Product: p, Quantity: min(qty, MaxQuantity)})
}

func (c *Cart) Increment(productID int) {
	if i := c.index(productID); i >= 0 {
		(*c)[i].Quantity = addCapped((*c)[i].Quantity, 1)
	}
}

// addCapped returns have+qty limited to MaxQuantity without overflowing.
func addCapped(have, qty int) int {
	if qty >= MaxQuantity-have {
		return MaxQuantity
	}
	return have + qty
}

func (c *Cart) Decrement(productID int) {
	if i := c.index(productID); i >= 0 {
		c.SetQuantity(productID, (*c)[i].Quantity-1)
	}
}

func (c *Cart) SetQuantity(productID, n int) {
	i := c.index(productID)
	if i < 0 {
		return
	}
	if n <= 0 {
		c.Remove(productID)
		return
	}
	(*c)[i].Quantity = min(n, MaxQuantity)
}

func (c *Cart) Remove(productID int) {
	if i := c.index(productID); i >= 0 {
		*c = append((*c)[:i], (*c)[i+1:]...)
	}
}

func (c *Cart) Clear() {
	*c = Cart{}
}

// Count is the total number of units across all lines.
func (c Cart) Count() int {
	n := 0
	for _, l := range c {
		n += l.Quantity
	}
	return n
}

func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c {
		total = total.Add(l.Subtotal())
	}
	return total.Round(2)
}

func (c Cart) Items() []order.Item {
	items := make([]order.Item, 0, len(c))
	for _, l := range c {
		items = append(items, order.Item{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			Price:     l.Product.Price,
			Quantity:  l.Quantity,
		})
	}
	return items
}
