package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aetherium/content-engine/internal/types"
)

// GetPersona looks up exactly one persona by user identifier. A missing
// row is not an error: (nil, nil) is returned so callers can fall back
// to the default persona. Connectivity failures propagate.
func (db *DB) GetPersona(ctx context.Context, userID string) (*types.Persona, error) {
	var p types.Persona
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, brand_voice, target_audience, content_goal, updated_at
		 FROM personas WHERE user_id = $1`,
		userID,
	).Scan(&p.ID, &p.UserID, &p.BrandVoice, &p.TargetAudience, &p.ContentGoal, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get persona: %w", err)
	}
	return &p, nil
}

// UpsertPersona creates or updates the persona keyed on user identifier.
// Last writer wins: there is no optimistic-concurrency check.
func (db *DB) UpsertPersona(ctx context.Context, userID, brandVoice, targetAudience, contentGoal string) (*types.Persona, error) {
	var p types.Persona
	err := db.pool.QueryRow(ctx,
		`INSERT INTO personas (user_id, brand_voice, target_audience, content_goal, updated_at)
		 VALUES ($1, $2, $3, $4, NOW())
		 ON CONFLICT (user_id) DO UPDATE
		 SET brand_voice = $2, target_audience = $3, content_goal = $4, updated_at = NOW()
		 RETURNING id, user_id, brand_voice, target_audience, content_goal, updated_at`,
		userID, brandVoice, targetAudience, contentGoal,
	).Scan(&p.ID, &p.UserID, &p.BrandVoice, &p.TargetAudience, &p.ContentGoal, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert persona: %w", err)
	}
	return &p, nil
}
