package service

import (
	"context"
	"errors"
	"testing"

	"cart-service/internal/cart"
	"cart-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutEmptyCartIsRejected(t *testing.T) {
	svc, store, publisher := newTestService(t)

	order, err := svc.Checkout(context.Background(), CheckoutRequest{Name: "Ana", Email: "ana@x.com"})

	assert.Nil(t, order)
	assert.ErrorIs(t, err, ErrCartEmpty)
	assert.Empty(t, store.savedOrders)
	assert.Empty(t, publisher.published)
	assert.Empty(t, svc.Items())
}

func TestCheckoutInvalidCustomerLeavesCartUntouched(t *testing.T) {
	cases := []struct {
		name string
		req  CheckoutRequest
	}{
		{"short name", CheckoutRequest{Name: "A", Email: "ana@x.com"}},
		{"whitespace name", CheckoutRequest{Name: "  A  ", Email: "ana@x.com"}},
		{"email without at", CheckoutRequest{Name: "Ana", Email: "ana.x.com"}},
		{"empty fields", CheckoutRequest{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, store, _ := newTestService(t)
			ctx := context.Background()
			svc.AddToCart(ctx, 1, 2)

			order, err := svc.Checkout(ctx, tc.req)

			assert.Nil(t, order)
			assert.ErrorIs(t, err, ErrInvalidCustomer)
			assert.Len(t, svc.Items(), 1, "validation failure must not mutate the cart")
			assert.Empty(t, store.savedOrders)
		})
	}
}

func TestCheckoutHappyPath(t *testing.T) {
	svc, store, publisher := newTestService(t)
	ctx := context.Background()

	svc.AddToCart(ctx, 1, 2) // 2 x 10.0

	order, err := svc.Checkout(ctx, CheckoutRequest{Name: "Ana", Email: "ana@x.com"})

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.NotEmpty(t, order.ID)
	assert.False(t, order.Date.IsZero())
	assert.Equal(t, models.Customer{Name: "Ana", Email: "ana@x.com"}, order.Customer)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Qty)
	assert.InDelta(t, 20.0, order.Total, 1e-9)

	// Commit: receipt persisted and published.
	require.Len(t, store.savedOrders, 1)
	assert.Equal(t, order, store.savedOrders[0])
	require.Len(t, publisher.published, 1)

	// Reset: cart cleared and the empty snapshot persisted.
	assert.Empty(t, svc.Items())
	assert.Empty(t, store.savedCarts[len(store.savedCarts)-1])
}

func TestCheckoutTrimsCustomerFields(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	svc.AddToCart(ctx, 2, 1)

	order, err := svc.Checkout(ctx, CheckoutRequest{Name: "  Ana  ", Email: " ana@x.com "})

	require.NoError(t, err)
	assert.Equal(t, "Ana", order.Customer.Name)
	assert.Equal(t, "ana@x.com", order.Customer.Email)
}

func TestCheckoutWithoutPublisher(t *testing.T) {
	store := &fakeStore{}
	svc := NewCartService(testCatalog(t), cart.New(), store, nil)
	ctx := context.Background()
	svc.AddToCart(ctx, 1, 1)

	order, err := svc.Checkout(ctx, CheckoutRequest{Name: "Ana", Email: "ana@x.com"})

	require.NoError(t, err)
	require.Len(t, store.savedOrders, 1)
	assert.Equal(t, order.ID, store.savedOrders[0].ID)
}

func TestCheckoutSurvivesReceiptFailures(t *testing.T) {
	// The receipt is fire and forget: neither the snapshot write nor the
	// event may fail the checkout.
	store := &fakeStore{}
	publisher := &fakePublisher{err: errors.New("broker down")}
	svc := NewCartService(testCatalog(t), cart.New(), store, publisher)
	ctx := context.Background()
	svc.AddToCart(ctx, 1, 1)

	order, err := svc.Checkout(ctx, CheckoutRequest{Name: "Ana", Email: "ana@x.com"})

	require.NoError(t, err)
	assert.NotNil(t, order)
	assert.Empty(t, svc.Items())
}
