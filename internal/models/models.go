package models

import "time"

// Product is one catalog entry. The catalog is loaded once at startup and is
// immutable afterwards; every other package reads it through the catalog
// package.
type Product struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Desc  string  `json:"desc"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// CartItem is one cart line. Name and Price are snapshot copies taken from
// the product at first addition.
type CartItem struct {
	ProductID int64   `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
}

// Subtotal returns qty * price for this line.
func (it CartItem) Subtotal() float64 {
	return float64(it.Qty) * it.Price
}

// Customer holds the checkout form fields.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Order is the write-once checkout receipt. It is persisted under its own
// storage key and optionally published as an event; this service never reads
// it back.
type Order struct {
	ID       string     `json:"order_id"`
	Date     time.Time  `json:"date"`
	Customer Customer   `json:"customer"`
	Items    []CartItem `json:"items"`
	Total    float64    `json:"total"`
}

// CartTotal returns the sum of qty*price over all lines, always recomputed
// from the items.
func CartTotal(items []CartItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Subtotal()
	}
	return total
}
