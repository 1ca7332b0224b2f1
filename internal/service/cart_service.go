package service

import (
	"context"

	"cart-service/internal/cart"
	"cart-service/internal/catalog"
	"cart-service/internal/models"
	"cart-service/internal/util"

	"go.uber.org/zap"
)

// CartStore is the slice of the snapshot store the service needs.
type CartStore interface {
	SaveCart(ctx context.Context, items []models.CartItem) error
	SaveOrder(ctx context.Context, order *models.Order) error
}

// ReceiptPublisher emits the checkout receipt event. May be absent when no
// broker is configured.
type ReceiptPublisher interface {
	PublishOrderPlaced(ctx context.Context, order *models.Order) error
}

// CartService is the application state object: it owns the catalog and the
// cart and runs every mutation as a mutate-then-persist unit, returning the
// fresh snapshot for the caller to project.
type CartService struct {
	catalog   *catalog.Catalog
	cart      *cart.Cart
	store     CartStore
	publisher ReceiptPublisher
	logger    *zap.Logger
}

// NewCartService creates the service. publisher may be nil.
func NewCartService(cat *catalog.Catalog, c *cart.Cart, store CartStore, publisher ReceiptPublisher) *CartService {
	return &CartService{
		catalog:   cat,
		cart:      c,
		store:     store,
		publisher: publisher,
		logger:    util.GetLogger(),
	}
}

// Catalog returns the loaded catalog.
func (s *CartService) Catalog() *catalog.Catalog {
	return s.catalog
}

// Items returns the current cart snapshot.
func (s *CartService) Items() []models.CartItem {
	return s.cart.Items()
}

// AddToCart adds qty units of the product, clamped to its stock. Unknown
// product ids are a silent no-op.
func (s *CartService) AddToCart(ctx context.Context, productID int64, qty int) []models.CartItem {
	ctx, span := util.StartSpan(ctx, "CartService.AddToCart")
	defer span.End()

	product := s.catalog.FindByID(productID)
	if product == nil {
		return s.cart.Items()
	}

	s.cart.Add(product, qty)
	util.CartAddsTotal.Inc()
	return s.persist(ctx)
}

// ChangeQty adjusts an existing line by delta, clamped to [1, stock]. No-op
// if the line or the product is missing.
func (s *CartService) ChangeQty(ctx context.Context, productID int64, delta int) []models.CartItem {
	ctx, span := util.StartSpan(ctx, "CartService.ChangeQty")
	defer span.End()

	product := s.catalog.FindByID(productID)
	if product == nil {
		return s.cart.Items()
	}

	s.cart.ChangeQty(productID, delta, product.Stock)
	util.CartQtyChangesTotal.Inc()
	return s.persist(ctx)
}

// RemoveItem deletes the line for the product id.
func (s *CartService) RemoveItem(ctx context.Context, productID int64) []models.CartItem {
	ctx, span := util.StartSpan(ctx, "CartService.RemoveItem")
	defer span.End()

	s.cart.Remove(productID)
	util.CartRemovalsTotal.Inc()
	return s.persist(ctx)
}

// ClearCart empties the cart unconditionally.
func (s *CartService) ClearCart(ctx context.Context) []models.CartItem {
	ctx, span := util.StartSpan(ctx, "CartService.ClearCart")
	defer span.End()

	s.cart.Clear()
	util.CartClearsTotal.Inc()
	return s.persist(ctx)
}

// persist writes the current snapshot and returns it. A failed write is
// logged and counted but never fails the mutation: the in-memory cart stays
// authoritative for the page lifetime.
func (s *CartService) persist(ctx context.Context) []models.CartItem {
	items := s.cart.Items()
	if err := s.store.SaveCart(ctx, items); err != nil {
		util.CartSaveFailuresTotal.Inc()
		s.logger.Warn("Failed to save cart snapshot", zap.Error(err))
	}
	return items
}
