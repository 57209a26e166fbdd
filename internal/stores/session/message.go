package session

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single turn in a session. It can be a user input
// or an assistant analysis report
type Message struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"column:deleted_at;index"`

	Role    string `json:"role" gorm:"size:32;not null"`
	Content string `json:"content" gorm:"type:text;not null"`

	// Session information
	SessionID uuid.UUID `json:"session_id" gorm:"type:char(36);not null;index"`
}

// NewMessage creates a new message for a session
func NewMessage(sessionID uuid.UUID, role string, content string) *Message {
	return &Message{
		SessionID: sessionID,
		Role:      role,
		Content:   content,
	}
}
