package store

import (
	"context"
	"fmt"

	"bodyshop-manager/internal/core"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UserStore backs the session provider. Lookups that find nothing return
// (nil, nil) so callers can distinguish "no such user" from a store failure.
type UserStore interface {
	Create(ctx context.Context, email, name, passwordHash string) (*core.User, error)
	GetByEmail(ctx context.Context, email string) (*core.User, error)
	GetByID(ctx context.Context, userID string) (*core.User, error)
}

type userStore struct {
	pool *pgxpool.Pool
}

// NewUserStore constructs a UserStore backed by PostgreSQL.
func NewUserStore(pool *pgxpool.Pool) UserStore {
	return &userStore{pool: pool}
}

func (s *userStore) Create(ctx context.Context, email, name, passwordHash string) (*core.User, error) {
	u := &core.User{}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO users (email, name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, email, name, password_hash, created_at
	`, email, name, passwordHash).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user %s: %w", email, err)
	}
	return u, nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*core.User, error) {
	u := &core.User{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, email, name, password_hash, created_at
		FROM users
		WHERE email = $1
	`, email).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up user %s: %w", email, err)
	}
	return u, nil
}

func (s *userStore) GetByID(ctx context.Context, userID string) (*core.User, error) {
	u := &core.User{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, email, name, password_hash, created_at
		FROM users
		WHERE id = $1
	`, userID).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up user id=%s: %w", userID, err)
	}
	return u, nil
}
