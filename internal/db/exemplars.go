package db

import (
	"context"
	"fmt"

	"github.com/pgvector/pgvector-go"

	"github.com/aetherium/content-engine/internal/types"
)

// InsertExemplar stores a user-approved content sample with its
// embedding. Exemplars are immutable once created.
func (db *DB) InsertExemplar(ctx context.Context, userID, platform, content string, embedding []float32) (*types.Exemplar, error) {
	vec := pgvector.NewVector(embedding)

	var e types.Exemplar
	err := db.pool.QueryRow(ctx,
		`INSERT INTO successful_content (user_id, platform, content, embedding)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, user_id, platform, content, created_at`,
		userID, platform, content, vec,
	).Scan(&e.ID, &e.UserID, &e.Platform, &e.Content, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert exemplar: %w", err)
	}
	return &e, nil
}

// MatchExemplars performs a nearest-neighbor search over the user's
// stored exemplars, keeping only matches above the similarity threshold.
func (db *DB) MatchExemplars(ctx context.Context, userID string, embedding []float32, threshold float64, limit int) ([]types.Exemplar, error) {
	vec := pgvector.NewVector(embedding)

	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, platform, content, created_at
		 FROM successful_content
		 WHERE user_id = $1
		   AND embedding IS NOT NULL
		   AND 1 - (embedding <=> $2) > $3
		 ORDER BY embedding <=> $2
		 LIMIT $4`,
		userID, vec, threshold, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to match exemplars: %w", err)
	}
	defer rows.Close()

	var exemplars []types.Exemplar
	for rows.Next() {
		var e types.Exemplar
		if err := rows.Scan(&e.ID, &e.UserID, &e.Platform, &e.Content, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan exemplar: %w", err)
		}
		exemplars = append(exemplars, e)
	}
	return exemplars, rows.Err()
}
