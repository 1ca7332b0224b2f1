package service

import (
	"context"
	"errors"
	"testing"

	"cart-service/internal/cart"
	"cart-service/internal/catalog"
	"cart-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore records snapshot writes in memory.
type fakeStore struct {
	savedCarts  [][]models.CartItem
	savedOrders []*models.Order
	saveErr     error
}

func (f *fakeStore) SaveCart(ctx context.Context, items []models.CartItem) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedCarts = append(f.savedCarts, items)
	return nil
}

func (f *fakeStore) SaveOrder(ctx context.Context, order *models.Order) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedOrders = append(f.savedOrders, order)
	return nil
}

type fakePublisher struct {
	published []*models.Order
	err       error
}

func (f *fakePublisher) PublishOrderPlaced(ctx context.Context, order *models.Order) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, order)
	return nil
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.NewCatalog([]models.Product{
		{ID: 1, Name: "Alfajor", Desc: "Dulce de leche", Price: 10, Stock: 5},
		{ID: 2, Name: "Brownie", Desc: "Chocolate", Price: 4.5, Stock: 3},
	})
	require.NoError(t, err)
	return cat
}

func newTestService(t *testing.T) (*CartService, *fakeStore, *fakePublisher) {
	t.Helper()
	store := &fakeStore{}
	publisher := &fakePublisher{}
	return NewCartService(testCatalog(t), cart.New(), store, publisher), store, publisher
}

func TestAddToCartPersistsAfterMutation(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	items := svc.AddToCart(ctx, 1, 2)

	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Qty)
	require.Len(t, store.savedCarts, 1)
	assert.Equal(t, items, store.savedCarts[0])
}

func TestAddToCartUnknownProductIsNoop(t *testing.T) {
	svc, store, _ := newTestService(t)

	items := svc.AddToCart(context.Background(), 42, 1)

	assert.Empty(t, items)
	assert.Empty(t, store.savedCarts, "no mutation, no snapshot write")
}

func TestAddToCartNeverExceedsStock(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	var items []models.CartItem
	for i := 0; i < 10; i++ {
		items = svc.AddToCart(ctx, 2, 1)
	}

	assert.Equal(t, 3, items[0].Qty)
}

func TestChangeQtyBounds(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	svc.AddToCart(ctx, 1, 2)

	items := svc.ChangeQty(ctx, 1, -5)
	assert.Equal(t, 1, items[0].Qty)

	items = svc.ChangeQty(ctx, 1, +100)
	assert.Equal(t, 5, items[0].Qty)
}

func TestChangeQtyUnknownProductIsNoop(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	svc.AddToCart(ctx, 1, 1)
	items := svc.ChangeQty(ctx, 42, +1)

	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Qty)
}

func TestRemoveItemThenQuery(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	svc.AddToCart(ctx, 1, 1)
	svc.AddToCart(ctx, 2, 1)

	items := svc.RemoveItem(ctx, 1)

	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].ProductID)
	for _, it := range svc.Items() {
		assert.NotEqual(t, int64(1), it.ProductID)
	}
}

func TestClearCart(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	svc.AddToCart(ctx, 1, 2)
	items := svc.ClearCart(ctx)

	assert.Empty(t, items)
	assert.Equal(t, 0.0, models.CartTotal(items))
	require.NotEmpty(t, store.savedCarts)
	assert.Empty(t, store.savedCarts[len(store.savedCarts)-1])
}

func TestMutationSurvivesSnapshotWriteFailure(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("redis down")}
	svc := NewCartService(testCatalog(t), cart.New(), store, nil)

	items := svc.AddToCart(context.Background(), 1, 2)

	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Qty)
}
