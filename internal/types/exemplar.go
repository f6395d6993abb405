package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Exemplar is a past successful content item stored with its embedding.
// Records are immutable once created; they are only ever read back via
// nearest-neighbor search scoped to the owning user.
type Exemplar struct {
	ID        uuid.UUID `json:"id,omitempty"`
	UserID    string    `json:"user_id"`
	Platform  string    `json:"platform"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// FeedbackRequest is the body of POST /api/v1/feedback.
type FeedbackRequest struct {
	UserID   string `json:"userId" validate:"required"`
	Platform string `json:"platform" validate:"required"`
	Content  string `json:"content" validate:"required"`
}

// Validate validates the FeedbackRequest using the validator.
func (r *FeedbackRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
