package broker

import (
	"context"
	"time"

	"cart-service/internal/models"

	"github.com/google/uuid"
)

// ReceiptPublisher emits the checkout receipt for external consumers. The
// order key in the snapshot store is write-only from this service's side;
// the event is how a collaborator actually learns about the order.
type ReceiptPublisher struct {
	producer *Producer
}

// NewReceiptPublisher creates a receipt publisher over a producer.
func NewReceiptPublisher(producer *Producer) *ReceiptPublisher {
	return &ReceiptPublisher{producer: producer}
}

// PublishOrderPlaced publishes an OrderPlaced event for the given receipt.
func (rp *ReceiptPublisher) PublishOrderPlaced(ctx context.Context, order *models.Order) error {
	event := &models.OrderPlacedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderPlaced,
			Timestamp: time.Now(),
		},
		OrderID:  order.ID,
		Customer: order.Customer,
		Items:    order.Items,
		Total:    order.Total,
	}

	return rp.producer.PublishEvent(ctx, "order-"+order.ID, event)
}
