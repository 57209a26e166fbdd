// Package threatlog persists detected threats per user and derives a
// risk profile from them.
package threatlog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Severity labels recorded against threats
const (
	SeverityLow      = "Low"
	SeverityMedium   = "Medium"
	SeverityHigh     = "High"
	SeverityCritical = "Critical"
	SeverityUnknown  = "Unknown"
)

// Risk profile labels derived from a user's threat history
const (
	RiskLow    = "Low Risk"
	RiskMedium = "Medium Risk"
	RiskHigh   = "High Risk"
)

// groomingPatterns are phrases that indicate secrecy-based grooming
var groomingPatterns = []string{"secret", "don't tell", "special", "parents won't understand"}

// Threat represents one detected threat against a user
type Threat struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"column:deleted_at;index"`

	UserID   string `json:"user_id" gorm:"size:255;not null;index"`
	Severity string `json:"severity" gorm:"size:32;not null"`
	Category string `json:"category" gorm:"size:255;not null"`
}

// Store interface defines methods for threat persistence
type Store interface {
	LogThreat(ctx context.Context, userID string, severity string, category string) error
	GetThreats(ctx context.Context, userID string) ([]*Threat, error)
	GetRiskProfile(ctx context.Context, userID string) (string, error)
}

// SqlStore handles threat persistence using GORM
type SqlStore struct {
	db *gorm.DB
}

// NewMySqlStore creates a new threat store over a MySQL connection
func NewMySqlStore(databaseURL string) (*SqlStore, error) {
	return newSqlStore(mysql.Open(databaseURL))
}

// NewSqliteStore creates a new threat store over a local sqlite file
func NewSqliteStore(path string) (*SqlStore, error) {
	return newSqlStore(sqlite.Open(path))
}

func newSqlStore(dialector gorm.Dialector) (*SqlStore, error) {
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&Threat{}); err != nil {
		return nil, fmt.Errorf("failed to migrate tables: %w", err)
	}

	return &SqlStore{db: db}, nil
}

// LogThreat records a detected threat against a user
func (s *SqlStore) LogThreat(ctx context.Context, userID string, severity string, category string) error {
	threat := &Threat{
		UserID:   userID,
		Severity: severity,
		Category: category,
	}

	result := s.db.WithContext(ctx).Create(threat)
	if result.Error != nil {
		return fmt.Errorf("failed to log threat: %w", result.Error)
	}

	return nil
}

// GetThreats retrieves all threats recorded against a user, newest first
func (s *SqlStore) GetThreats(ctx context.Context, userID string) ([]*Threat, error) {
	var threats []*Threat
	result := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Order("id DESC").Find(&threats)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to query threats: %w", result.Error)
	}

	return threats, nil
}

// GetRiskProfile derives the user's risk profile from their threat
// history. No threats means low risk; any High or Critical entry makes
// the profile high risk, anything else medium
func (s *SqlStore) GetRiskProfile(ctx context.Context, userID string) (string, error) {
	threats, err := s.GetThreats(ctx, userID)
	if err != nil {
		return "", err
	}

	if len(threats) == 0 {
		return RiskLow, nil
	}

	for _, threat := range threats {
		if threat.Severity == SeverityHigh || threat.Severity == SeverityCritical {
			return RiskHigh, nil
		}
	}

	return RiskMedium, nil
}

// Close closes the database connection
func (s *SqlStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB from gorm.DB: %w", err)
	}
	return sqlDB.Close()
}

// DetectGroomingPattern checks an input for secrecy-based grooming
// phrases and returns the ones found
func DetectGroomingPattern(text string) (bool, []string) {
	lower := strings.ToLower(text)

	var matches []string
	for _, pattern := range groomingPatterns {
		if strings.Contains(lower, pattern) {
			matches = append(matches, pattern)
		}
	}

	return len(matches) > 0, matches
}
