package session

import (
	"time"

	"github.com/google/uuid"
)

// SessionTranscript represents searchable session content
type SessionTranscript struct {
	SessionID uuid.UUID `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// SimilarCase is a past message found to resemble a new input
type SimilarCase struct {
	SessionID uuid.UUID `json:"session_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
