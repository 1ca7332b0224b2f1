package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"cart-service/internal/models"
	"cart-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Checkout validation errors, mapped to inline messages by the handler.
var (
	ErrCartEmpty       = errors.New("the cart is empty, add products before checking out")
	ErrInvalidCustomer = errors.New("please provide a valid name and email")
)

// CheckoutRequest carries the checkout form fields.
type CheckoutRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Checkout runs the single checkout transition: validate, commit, reset.
// Either both validations pass and the full commit+reset sequence executes,
// or nothing changes and a validation error is returned.
func (s *CartService) Checkout(ctx context.Context, req CheckoutRequest) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "CartService.Checkout")
	defer span.End()

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)

	items := s.cart.Items()
	if len(items) == 0 {
		util.CheckoutFailuresTotal.WithLabelValues("empty_cart").Inc()
		return nil, ErrCartEmpty
	}
	if utf8.RuneCountInString(name) < 2 || !strings.Contains(email, "@") {
		util.CheckoutFailuresTotal.WithLabelValues("invalid_customer").Inc()
		return nil, ErrInvalidCustomer
	}

	order := &models.Order{
		ID:       uuid.New().String(),
		Date:     time.Now().UTC(),
		Customer: models.Customer{Name: name, Email: email},
		Items:    items,
		Total:    models.CartTotal(items),
	}

	// Fire and forget: the receipt is a sink for external collaborators, so
	// neither the snapshot write nor the event may fail the checkout.
	if err := s.store.SaveOrder(ctx, order); err != nil {
		s.logger.Error("Failed to save order receipt",
			zap.String("order_id", order.ID),
			zap.Error(err))
	}
	if s.publisher != nil {
		if err := s.publisher.PublishOrderPlaced(ctx, order); err != nil {
			s.logger.Error("Failed to publish order receipt",
				zap.String("order_id", order.ID),
				zap.Error(err))
		}
	}

	s.cart.Clear()
	s.persist(ctx)

	util.CheckoutsTotal.Inc()
	s.logger.Info("Order placed",
		zap.String("order_id", order.ID),
		zap.Float64("total", order.Total),
		zap.Int("items", len(order.Items)))

	return order, nil
}
