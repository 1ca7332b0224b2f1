package view

import (
	"fmt"
	"strconv"

	"cart-service/internal/catalog"
	"cart-service/internal/models"
)

// The message shown in place of an empty cart list.
const EmptyCartMessage = "Your cart is empty"

// ProductView is one product card: price formatted for display and the
// quantity input bounds the card exposes ([1, stock], default 1).
type ProductView struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Desc       string `json:"desc"`
	Price      string `json:"price"`
	Stock      int    `json:"stock"`
	MinQty     int    `json:"min_qty"`
	MaxQty     int    `json:"max_qty"`
	DefaultQty int    `json:"default_qty"`
}

// CartItemView is one cart line with its formatted subtotal.
type CartItemView struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Qty      int    `json:"qty"`
	Subtotal string `json:"subtotal"`
}

// CartView is the full cart projection. When the cart is empty Items is
// absent and Message carries the placeholder instead.
type CartView struct {
	Items   []CartItemView `json:"items,omitempty"`
	Empty   bool           `json:"empty"`
	Message string         `json:"message,omitempty"`
	Total   string         `json:"total"`
}

// MessageView carries a checkout outcome message. ResetForm tells the markup
// owner to clear the form fields after a successful order.
type MessageView struct {
	OK        bool   `json:"ok"`
	Message   string `json:"message"`
	ResetForm bool   `json:"reset_form,omitempty"`
}

// FormatCurrency renders an amount with two decimal places.
func FormatCurrency(n float64) string {
	return strconv.FormatFloat(n, 'f', 2, 64)
}

// Products projects the full catalog into product cards, rebuilt from
// scratch on every call.
func Products(cat *catalog.Catalog) []ProductView {
	products := cat.Products()
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, ProductView{
			ID:         p.ID,
			Name:       p.Name,
			Desc:       p.Desc,
			Price:      FormatCurrency(p.Price),
			Stock:      p.Stock,
			MinQty:     1,
			MaxQty:     p.Stock,
			DefaultQty: 1,
		})
	}
	return views
}

// Cart projects the cart lines into a full cart view with the recomputed
// total. An empty cart renders the placeholder message instead of a list.
func Cart(items []models.CartItem) CartView {
	v := CartView{Total: FormatCurrency(models.CartTotal(items))}

	if len(items) == 0 {
		v.Empty = true
		v.Message = EmptyCartMessage
		return v
	}

	v.Items = make([]CartItemView, 0, len(items))
	for _, it := range items {
		v.Items = append(v.Items, CartItemView{
			ID:       it.ProductID,
			Name:     it.Name,
			Qty:      it.Qty,
			Subtotal: FormatCurrency(it.Subtotal()),
		})
	}
	return v
}

// CheckoutSuccess builds the confirmation message for a placed order.
func CheckoutSuccess(order *models.Order) MessageView {
	return MessageView{
		OK:        true,
		Message:   fmt.Sprintf("Order placed. Total: $%s. Thanks, %s!", FormatCurrency(order.Total), order.Customer.Name),
		ResetForm: true,
	}
}

// CheckoutError builds the inline error message for a rejected checkout.
func CheckoutError(err error) MessageView {
	return MessageView{
		OK:      false,
		Message: err.Error(),
	}
}
