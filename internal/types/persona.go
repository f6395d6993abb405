// Package types provides type definitions for structured data used throughout the content engine.
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Persona holds a user's stored content-generation preferences.
// Field names mirror the database columns; the record is returned
// verbatim from the persona endpoints.
type Persona struct {
	ID             uuid.UUID `json:"id,omitempty"`
	UserID         string    `json:"user_id"`
	BrandVoice     string    `json:"brand_voice"`
	TargetAudience string    `json:"target_audience"`
	ContentGoal    string    `json:"content_goal"`
	UpdatedAt      time.Time `json:"updated_at,omitempty"`
}

// DefaultPersona is the persona used when a user has none stored or no
// user identifier was supplied. The pipeline never mutates it.
func DefaultPersona() Persona {
	return Persona{
		BrandVoice:     "Professional",
		TargetAudience: "General Public",
	}
}

// SavePersonaRequest is the body of POST /api/v1/persona.
type SavePersonaRequest struct {
	UserID         string `json:"userId" validate:"required"`
	BrandVoice     string `json:"brandVoice"`
	TargetAudience string `json:"targetAudience"`
	ContentGoal    string `json:"contentGoal"`
}

// Validate validates the SavePersonaRequest using the validator.
func (r *SavePersonaRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
