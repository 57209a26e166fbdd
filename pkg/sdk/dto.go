package sdk

import (
	"encoding/json"
	"time"

	"github.com/ethanbaker/api/pkg/api_types"
	"github.com/google/uuid"
)

// ApiResponse represents a standard API response structure
type ApiResponse[T any] struct {
	Status  api_types.StatusType `json:"status"`          // Status message
	Code    int                  `json:"code"`            // Status code
	Message string               `json:"message"`         // Human-readable message
	Data    T                    `json:"data,omitempty"`  // Optional data field for successful responses
	Error   any                  `json:"error,omitempty"` // Optional errors field for error responses
}

// AsGinResponse converts the ApiResponse to a format suitable for Gin framework
func (r ApiResponse[T]) AsGinResponse() (int, any) {
	return r.Code, r
}

// AsJSON converts the ApiResponse to a format suitable for JSON responses
func (r ApiResponse[T]) AsJSON() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func NewSuccess(message string) ApiResponse[any] {
	return ApiResponse[any]{
		Status:  api_types.StatusSuccess,
		Code:    200,
		Message: message,
	}
}

func NewSuccessResponse[T any](message string, data T) ApiResponse[T] {
	return ApiResponse[T]{
		Status:  api_types.StatusSuccess,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

func NewErrorResponse(code int, message string, err any) ApiResponse[any] {
	return ApiResponse[any]{
		Status:  api_types.StatusError,
		Code:    code,
		Message: message,
		Error:   err,
	}
}

// Report is the merged output of one analysis pipeline run: one finding
// per pipeline stage
type Report map[string]map[string]any

/** Requests */

// CreateSessionRequest represents the request body for creating a new session
type CreateSessionRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// AnalyzeRequest represents the request body for analyzing a text
type AnalyzeRequest struct {
	Text string `json:"text" binding:"required"`
}

// AnalyzeFileRequest represents the request body for analyzing an uploaded
// or referenced file by name
type AnalyzeFileRequest struct {
	Filename string `json:"filename" binding:"required"`
}

// EvidenceRequest represents the request body for storing a note and/or
// files in the evidence vault. At least one of Note or Files must be set
type EvidenceRequest struct {
	SessionID string   `json:"session_id" binding:"required"`
	Note      string   `json:"note"`
	Files     []string `json:"files"`
}

// LegalRequest represents the request body for a legal lookup
type LegalRequest struct {
	Country   string `json:"country"`
	Situation string `json:"situation" binding:"required"`
}

/** Responses */

// Session represents an analysis session
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Messages []Message `json:"messages,omitempty"`
}

// Message represents a single turn within a session
type Message struct {
	ID        uint      `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`

	SessionID uuid.UUID `json:"session_id"`
}

// AnalyzeResponse represents the response body after analyzing a text
type AnalyzeResponse struct {
	SessionID string `json:"session_id,omitempty"`
	Report    Report `json:"report"`
}

// AnalyzeFileResponse represents the response body after analyzing a file
type AnalyzeFileResponse struct {
	Filename      string         `json:"filename"`
	MediaAnalysis map[string]any `json:"media_analysis"`
	Report        Report         `json:"report"`
}

// HistoryResponse represents a session's stored conversation history
type HistoryResponse struct {
	SessionID string    `json:"session_id"`
	Messages  []Message `json:"messages"`
}

// EvidenceResponse represents the stored evidence locations
type EvidenceResponse struct {
	SessionID string   `json:"session_id"`
	Paths     []string `json:"paths"`
}

// LegalResponse represents canned legal guidance plus the knowledge base
// lookup for it
type LegalResponse struct {
	Guidance   map[string]any `json:"guidance"`
	ToolLookup map[string]any `json:"tool_lookup,omitempty"`
}

// MetricsResponse represents the system metrics snapshot
type MetricsResponse struct {
	TotalRequests int            `json:"total_requests"`
	TotalErrors   int            `json:"total_errors"`
	ToolUsage     map[string]int `json:"tool_usage"`
	ThreatHeatmap map[string]int `json:"threat_heatmap"`
	Dashboard     string         `json:"dashboard"`
}
