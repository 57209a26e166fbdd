package guardian

import (
	"fmt"
	"log"

	"github.com/ethanbaker/api/pkg/api_key"
	"github.com/ethanbaker/guardian/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Register routes for the guardian module
func RegisterRoutes(g *gin.RouterGroup, cfg *utils.Config) {
	// Make api key validator
	validator, err := makeApiKeyValidator(cfg)
	if err != nil {
		log.Fatalf("failed to create API key validator: %v", err)
	}

	// Create base group for guardian routes
	group := g.Group("/guardian")
	group.Handlers = append(group.Handlers, api_key.APIKeyHeaderHandler(validator))

	// Session management routes
	group.POST("/sessions", CreateSession)                // Create a new session
	group.GET("/sessions/:uuid", GetSession)              // Get an existing session by UUID
	group.DELETE("/sessions/:uuid", DeleteSession)        // Delete an existing session
	group.POST("/sessions/:uuid/analyze", AnalyzeText)    // Analyze a text within a session
	group.GET("/sessions/:uuid/history", GetHistory)      // Get a session's stored history

	// Analysis routes outside of sessions
	group.POST("/files", AnalyzeFile)     // Analyze a file by name
	group.POST("/evidence", SaveEvidence) // Store evidence notes and files
	group.POST("/legal", LegalLookup)     // Look up legal guidance
	group.GET("/metrics", GetMetrics)     // Metrics snapshot
}

// makeApiKeyValidator checks if the provided API key is valid
func makeApiKeyValidator(cfg *utils.Config) (func(key string) bool, error) {
	// Get api key from config
	apiKey := cfg.Get("API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("API_KEY not set in environment")
	}

	return func(key string) bool {
		return apiKey == key
	}, nil
}
