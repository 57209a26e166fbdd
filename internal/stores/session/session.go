package session

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session represents a conversation under analysis
type Session struct {
	ID        uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey;unique;not null"`
	CreatedAt time.Time      `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"column:deleted_at;index"`

	UserID   string     `json:"user_id" gorm:"size:255"`
	Messages []*Message `json:"messages,omitempty" gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for GORM
func (*Session) TableName() string {
	return "sessions"
}

// GetMessageCount returns the number of loaded messages in the session
func (s *Session) GetMessageCount() int {
	return len(s.Messages)
}

// GetLastMessage returns the last loaded message, or nil if none exist
func (s *Session) GetLastMessage() *Message {
	if len(s.Messages) == 0 {
		return nil
	}
	return s.Messages[len(s.Messages)-1]
}
