package cart

import (
	"sync"

	"cart-service/internal/models"
)

// Cart is the in-memory ordered list of line items: one line per product id,
// insertion order = order of first addition. Logical ownership is
// single-writer, but the HTTP server is concurrent, so access is
// mutex-guarded.
type Cart struct {
	mu    sync.Mutex
	items []models.CartItem
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{}
}

// Restore replaces the cart contents with a loaded snapshot. Used once at
// startup to adopt the persisted cart.
func (c *Cart) Restore(items []models.CartItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append([]models.CartItem(nil), items...)
}

// Add adds qty units of the product to the cart. If a line for the product
// already exists its quantity becomes min(existing+qty, stock); otherwise a
// new line is appended with min(qty, stock). Stock is the only bound applied:
// non-positive requests are clamped, not rejected.
func (c *Cart) Add(p *models.Product, qty int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ProductID == p.ID {
			c.items[i].Qty = min(c.items[i].Qty+qty, p.Stock)
			return
		}
	}

	c.items = append(c.items, models.CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Qty:       min(qty, p.Stock),
	})
}

// ChangeQty adjusts an existing line by delta, clamped to [1, stock]. A line
// never drops below 1 this way; reaching zero requires Remove. No-op if the
// product has no line in the cart.
func (c *Cart) ChangeQty(productID int64, delta, stock int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Qty = clamp(c.items[i].Qty+delta, 1, stock)
			return
		}
	}
}

// Remove deletes the line for the given product id. No-op if absent.
func (c *Cart) Remove(productID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Items returns a snapshot copy of the cart lines in insertion order.
func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.CartItem(nil), c.items...)
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Total returns the recomputed sum of qty*price over all lines.
func (c *Cart) Total() float64 {
	return models.CartTotal(c.Items())
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
