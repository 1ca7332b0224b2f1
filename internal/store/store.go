package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cart-service/internal/models"
	"cart-service/internal/util"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SnapshotStore persists the cart and last-order snapshots under two fixed
// keys in Redis. The store is single-writer (one service instance) with plain
// overwrite semantics: no transactions, no versioning, no read-back of the
// order key.
type SnapshotStore struct {
	rdb      *redis.Client
	cartKey  string
	orderKey string
	logger   *zap.Logger
}

// NewSnapshotStore connects to Redis and pings it before returning.
func NewSnapshotStore(addr, password string, db int, cartKey, orderKey string) (*SnapshotStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &SnapshotStore{
		rdb:      rdb,
		cartKey:  cartKey,
		orderKey: orderKey,
		logger:   util.GetLogger(),
	}, nil
}

// Close closes the Redis connection.
func (s *SnapshotStore) Close() error {
	return s.rdb.Close()
}

// SaveCart serializes the cart lines and overwrites the cart key. Called
// after every successful mutation.
func (s *SnapshotStore) SaveCart(ctx context.Context, items []models.CartItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart snapshot: %w", err)
	}

	if err := s.rdb.Set(ctx, s.cartKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to write cart snapshot: %w", err)
	}

	return nil
}

// LoadCart reads the cart key and deserializes the snapshot. A missing key
// yields an empty cart; a malformed or shape-invalid payload is recoverable
// and also yields an empty cart, logged rather than surfaced.
func (s *SnapshotStore) LoadCart(ctx context.Context) ([]models.CartItem, error) {
	payload, err := s.rdb.Get(ctx, s.cartKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cart snapshot: %w", err)
	}

	items, err := DecodeCartSnapshot(payload)
	if err != nil {
		s.logger.Warn("Discarding invalid cart snapshot",
			zap.String("key", s.cartKey),
			zap.Error(err))
		return nil, nil
	}

	return items, nil
}

// SaveOrder serializes the receipt and overwrites the order key. Fire and
// forget: the caller logs failures but never surfaces them to the customer.
func (s *SnapshotStore) SaveOrder(ctx context.Context, order *models.Order) error {
	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}

	if err := s.rdb.Set(ctx, s.orderKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to write order: %w", err)
	}

	return nil
}

// DecodeCartSnapshot parses a persisted cart payload and shape-checks every
// line: a line with a zero product id, a negative price or a non-positive
// quantity marks the whole snapshot as invalid.
func DecodeCartSnapshot(payload []byte) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart snapshot: %w", err)
	}

	seen := make(map[int64]bool, len(items))
	for i, it := range items {
		if it.ProductID == 0 {
			return nil, fmt.Errorf("cart line %d has no product id", i)
		}
		if it.Price < 0 {
			return nil, fmt.Errorf("cart line %d has negative price", i)
		}
		if it.Qty < 1 {
			return nil, fmt.Errorf("cart line %d has non-positive quantity", i)
		}
		if seen[it.ProductID] {
			return nil, fmt.Errorf("cart line %d duplicates product %d", i, it.ProductID)
		}
		seen[it.ProductID] = true
	}

	return items, nil
}
