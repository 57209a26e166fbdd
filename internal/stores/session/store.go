package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Store interface defines methods for session storage
type Store interface {
	CreateSession(ctx context.Context, userID string) (*Session, error)
	GetSession(ctx context.Context, sessionID uuid.UUID) (*Session, error)
	GetSessionWithMessages(ctx context.Context, sessionID uuid.UUID) (*Session, error)
	SaveMessage(ctx context.Context, message *Message) error
	GetSessionMessages(ctx context.Context, sessionID uuid.UUID) ([]*Message, error)
	DeleteSession(ctx context.Context, sessionID uuid.UUID) error
	SearchSessionTranscripts(ctx context.Context, query string) ([]*SessionTranscript, error)
	FindSimilarCases(ctx context.Context, input string) ([]*SimilarCase, error)
}

// SqlStore handles session persistence using GORM
type SqlStore struct {
	db *gorm.DB
}

// NewMySqlStore creates a new session store over a MySQL connection
func NewMySqlStore(databaseURL string) (*SqlStore, error) {
	return newSqlStore(mysql.Open(databaseURL))
}

// NewSqliteStore creates a new session store over a local sqlite file.
// Use ":memory:" for an ephemeral database
func NewSqliteStore(path string) (*SqlStore, error) {
	return newSqlStore(sqlite.Open(path))
}

func newSqlStore(dialector gorm.Dialector) (*SqlStore, error) {
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SqlStore{db: db}

	// Auto-migrate tables
	if err := db.AutoMigrate(&Session{}, &Message{}); err != nil {
		return nil, fmt.Errorf("failed to migrate tables: %w", err)
	}

	return store, nil
}

// CreateSession creates a new session in the database
func (s *SqlStore) CreateSession(ctx context.Context, userID string) (*Session, error) {
	session := &Session{
		ID:       uuid.New(),
		UserID:   userID,
		Messages: []*Message{},
	}

	result := s.db.WithContext(ctx).Create(session)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to create session: %w", result.Error)
	}

	return session, nil
}

// GetSession retrieves a session by ID
func (s *SqlStore) GetSession(ctx context.Context, sessionID uuid.UUID) (*Session, error) {
	var session Session
	result := s.db.WithContext(ctx).First(&session, "id = ?", sessionID)

	if result.Error != nil {
		// Handle not found error
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("session not found")
		}
		// Handle generic errors
		return nil, fmt.Errorf("failed to get session: %w", result.Error)
	}

	return &session, nil
}

// GetSessionWithMessages retrieves a session by ID with all its messages
// preloaded in order
func (s *SqlStore) GetSessionWithMessages(ctx context.Context, sessionID uuid.UUID) (*Session, error) {
	var session Session
	result := s.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC").Order("id ASC")
		}).
		First(&session, "id = ?", sessionID)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("session not found")
		}
		return nil, fmt.Errorf("failed to get session with messages: %w", result.Error)
	}

	return &session, nil
}

// SaveMessage saves a message to the database
func (s *SqlStore) SaveMessage(ctx context.Context, message *Message) error {
	if message == nil {
		return fmt.Errorf("message cannot be nil")
	}

	result := s.db.WithContext(ctx).Create(message)
	if result.Error != nil {
		return fmt.Errorf("failed to save message: %w", result.Error)
	}

	return nil
}

// GetSessionMessages retrieves all messages for a session in
// chronological order
func (s *SqlStore) GetSessionMessages(ctx context.Context, sessionID uuid.UUID) ([]*Message, error) {
	var messages []*Message
	result := s.db.WithContext(ctx).Where("session_id = ?", sessionID).Order("created_at ASC").Order("id ASC").Find(&messages)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to query messages: %w", result.Error)
	}

	return messages, nil
}

// DeleteSession deletes a session and its messages from the database
func (s *SqlStore) DeleteSession(ctx context.Context, sessionID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Delete messages associated with the session
		if err := tx.Where("session_id = ?", sessionID).Delete(&Message{}).Error; err != nil {
			return fmt.Errorf("failed to delete session messages: %w", err)
		}

		// Delete the session itself
		if err := tx.Where("id = ?", sessionID).Delete(&Session{}).Error; err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}

		return nil
	})
}

// SearchSessionTranscripts performs substring search across all session
// messages, newest first
func (s *SqlStore) SearchSessionTranscripts(ctx context.Context, query string) ([]*SessionTranscript, error) {
	searchPattern := "%" + query + "%"

	var messages []Message
	result := s.db.WithContext(ctx).Where("content LIKE ?", searchPattern).
		Order("created_at DESC").Order("id DESC").Limit(50).Find(&messages)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to search messages: %w", result.Error)
	}

	var transcripts []*SessionTranscript
	for _, message := range messages {
		transcripts = append(transcripts, &SessionTranscript{
			SessionID: message.SessionID,
			Role:      message.Role,
			Content:   message.Content,
			CreatedAt: message.CreatedAt,
		})
	}

	return transcripts, nil
}

// FindSimilarCases looks for past messages resembling the input.
// Similarity is keyword-based: words longer than four characters are
// extracted (at most three) and matched against stored content
func (s *SqlStore) FindSimilarCases(ctx context.Context, input string) ([]*SimilarCase, error) {
	keywords := extractKeywords(input)
	if len(keywords) == 0 {
		return nil, nil
	}

	query := s.db.WithContext(ctx).Model(&Message{}).Where("role = ?", RoleUser)

	// OR the keyword patterns together
	patterns := s.db
	for i, keyword := range keywords {
		if i == 0 {
			patterns = s.db.Where("content LIKE ?", "%"+keyword+"%")
		} else {
			patterns = patterns.Or("content LIKE ?", "%"+keyword+"%")
		}
	}
	query = query.Where(patterns)

	var messages []Message
	if err := query.Order("created_at DESC").Limit(3).Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to find similar cases: %w", err)
	}

	var cases []*SimilarCase
	for _, message := range messages {
		cases = append(cases, &SimilarCase{
			SessionID: message.SessionID,
			Content:   message.Content,
			CreatedAt: message.CreatedAt,
		})
	}

	return cases, nil
}

// extractKeywords pulls up to three significant words out of an input.
// Words of four characters or fewer carry too little signal to match on
func extractKeywords(input string) []string {
	var keywords []string
	for _, word := range strings.Fields(strings.ToLower(input)) {
		word = strings.Trim(word, ".,!?\"'")
		if len(word) > 4 {
			keywords = append(keywords, word)
		}
		if len(keywords) == 3 {
			break
		}
	}
	return keywords
}

// GetDB returns the underlying GORM database connection
func (s *SqlStore) GetDB() *gorm.DB {
	return s.db
}

// Close closes the database connection
func (s *SqlStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB from gorm.DB: %w", err)
	}
	return sqlDB.Close()
}
