package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"bodyshop-manager/internal/core"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OrderStore persists service orders as whole JSONB blobs keyed by order id
// and owning user. Every write replaces the entire content column — partial
// updates are never modeled, so a row is always one self-consistent order
// snapshot. All filtering and aggregation happens in memory after retrieval;
// the store never queries into the blob.
type OrderStore interface {
	Insert(ctx context.Context, userID string, order *core.ServiceOrder) error
	// Update replaces the whole stored order. Updating an id that does not
	// exist for this user is a no-op, not an error.
	Update(ctx context.Context, userID string, order *core.ServiceOrder) error
	Delete(ctx context.Context, userID, orderID string) error
	ListForUser(ctx context.Context, userID string) ([]*core.ServiceOrder, error)

	// NextOrderID assigns the next business-formatted order id for the
	// user and year, e.g. OS-2026-0042. The sequence is concurrency-safe
	// and gapless per (user, year).
	NextOrderID(ctx context.Context, userID string, year int) (string, error)
}

type orderStore struct {
	pool *pgxpool.Pool
}

// NewOrderStore constructs an OrderStore backed by PostgreSQL.
func NewOrderStore(pool *pgxpool.Pool) OrderStore {
	return &orderStore{pool: pool}
}

func (s *orderStore) Insert(ctx context.Context, userID string, order *core.ServiceOrder) error {
	content, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to encode order %s: %w", order.ID, err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO orders (id, user_id, content)
		VALUES ($1, $2, $3)
	`, order.ID, userID, content)
	if err != nil {
		return fmt.Errorf("failed to insert order %s: %w", order.ID, err)
	}
	return nil
}

func (s *orderStore) Update(ctx context.Context, userID string, order *core.ServiceOrder) error {
	content, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to encode order %s: %w", order.ID, err)
	}
	_, err = s.pool.Exec(ctx, `
		UPDATE orders
		SET content = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
	`, content, order.ID, userID)
	if err != nil {
		return fmt.Errorf("failed to update order %s: %w", order.ID, err)
	}
	return nil
}

func (s *orderStore) Delete(ctx context.Context, userID, orderID string) error {
	_, err := s.pool.Exec(ctx,
		"DELETE FROM orders WHERE id = $1 AND user_id = $2",
		orderID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete order %s: %w", orderID, err)
	}
	return nil
}

func (s *orderStore) ListForUser(ctx context.Context, userID string) ([]*core.ServiceOrder, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT content FROM orders WHERE user_id = $1 ORDER BY id",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []*core.ServiceOrder
	for rows.Next() {
		var content []byte
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		var o core.ServiceOrder
		if err := json.Unmarshal(content, &o); err != nil {
			return nil, fmt.Errorf("failed to decode order blob: %w", err)
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("order row iteration error: %w", err)
	}
	return orders, nil
}

func (s *orderStore) NextOrderID(ctx context.Context, userID string, year int) (string, error) {
	var lastNumber int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO order_sequences (user_id, year, last_number)
		VALUES ($1, $2, 1)
		ON CONFLICT (user_id, year)
		DO UPDATE SET last_number = order_sequences.last_number + 1
		RETURNING last_number
	`, userID, year).Scan(&lastNumber)
	if err != nil {
		return "", fmt.Errorf("failed to advance order sequence: %w", err)
	}
	return fmt.Sprintf("OS-%d-%04d", year, lastNumber), nil
}

// isNoRows reports whether err is the pgx no-rows sentinel, which lookup
// paths translate into an explicit absent value rather than a failure.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
