package store

import (
	"context"
	"encoding/json"
	"fmt"

	"bodyshop-manager/internal/core"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CollaboratorStore persists collaborators as JSONB blobs, same contract
// as OrderStore. Deleting a collaborator row never touches orders: labor
// allocations keep their denormalized worker snapshot.
type CollaboratorStore interface {
	Insert(ctx context.Context, userID string, c *core.Collaborator) error
	Update(ctx context.Context, userID string, c *core.Collaborator) error
	Delete(ctx context.Context, userID, collaboratorID string) error
	ListForUser(ctx context.Context, userID string) ([]*core.Collaborator, error)
}

type collaboratorStore struct {
	pool *pgxpool.Pool
}

// NewCollaboratorStore constructs a CollaboratorStore backed by PostgreSQL.
func NewCollaboratorStore(pool *pgxpool.Pool) CollaboratorStore {
	return &collaboratorStore{pool: pool}
}

func (s *collaboratorStore) Insert(ctx context.Context, userID string, c *core.Collaborator) error {
	content, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode collaborator %s: %w", c.ID, err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO collaborators (id, user_id, content)
		VALUES ($1, $2, $3)
	`, c.ID, userID, content)
	if err != nil {
		return fmt.Errorf("failed to insert collaborator %s: %w", c.ID, err)
	}
	return nil
}

func (s *collaboratorStore) Update(ctx context.Context, userID string, c *core.Collaborator) error {
	content, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode collaborator %s: %w", c.ID, err)
	}
	_, err = s.pool.Exec(ctx, `
		UPDATE collaborators
		SET content = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
	`, content, c.ID, userID)
	if err != nil {
		return fmt.Errorf("failed to update collaborator %s: %w", c.ID, err)
	}
	return nil
}

func (s *collaboratorStore) Delete(ctx context.Context, userID, collaboratorID string) error {
	_, err := s.pool.Exec(ctx,
		"DELETE FROM collaborators WHERE id = $1 AND user_id = $2",
		collaboratorID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete collaborator %s: %w", collaboratorID, err)
	}
	return nil
}

func (s *collaboratorStore) ListForUser(ctx context.Context, userID string) ([]*core.Collaborator, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT content FROM collaborators WHERE user_id = $1 ORDER BY id",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query collaborators: %w", err)
	}
	defer rows.Close()

	var collaborators []*core.Collaborator
	for rows.Next() {
		var content []byte
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("failed to scan collaborator row: %w", err)
		}
		var c core.Collaborator
		if err := json.Unmarshal(content, &c); err != nil {
			return nil, fmt.Errorf("failed to decode collaborator blob: %w", err)
		}
		collaborators = append(collaborators, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("collaborator row iteration error: %w", err)
	}
	return collaborators, nil
}
