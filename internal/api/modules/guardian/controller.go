package guardian

import (
	"net/http"

	"github.com/ethanbaker/guardian/internal/stores/session"
	"github.com/ethanbaker/guardian/pkg/agent"
	"github.com/ethanbaker/guardian/pkg/sdk"
	"github.com/gin-gonic/gin"
)

// CreateSession handles POST requests to create a new session
func CreateSession(c *gin.Context) {
	// Parse request body
	var req sdk.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err).AsGinResponse())
		return
	}

	// Create a new session using the service
	service := GetService()
	sess, err := service.NewSession(c.Request.Context(), req.UserID)
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to create session", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Session created successfully", toSDKSession(sess)).AsGinResponse())
}

// GetSession handles GET requests to retrieve an existing session by UUID
func GetSession(c *gin.Context) {
	uuid := c.Param("uuid")

	service := GetService()
	sess, err := service.FindSession(c.Request.Context(), uuid)
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Session not found", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Session retrieved successfully", toSDKSession(sess)).AsGinResponse())
}

// DeleteSession handles DELETE requests to remove an existing session
func DeleteSession(c *gin.Context) {
	uuid := c.Param("uuid")

	service := GetService()
	sess, err := service.RemoveSession(c.Request.Context(), uuid)
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to delete session", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Session deleted successfully", toSDKSession(sess)).AsGinResponse())
}

// AnalyzeText handles POST requests to analyze a text within a session
func AnalyzeText(c *gin.Context) {
	uuid := c.Param("uuid")

	// Parse request body
	var req sdk.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err).AsGinResponse())
		return
	}

	service := GetService()
	report, err := service.Analyze(c.Request.Context(), uuid, req.Text)
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to analyze text", err).AsGinResponse())
		return
	}

	resp := sdk.AnalyzeResponse{
		SessionID: uuid,
		Report:    toSDKReport(report),
	}

	c.JSON(sdk.NewSuccessResponse("Analysis complete", resp).AsGinResponse())
}

// GetHistory handles GET requests for a session's stored history
func GetHistory(c *gin.Context) {
	uuid := c.Param("uuid")

	service := GetService()
	messages, err := service.History(c.Request.Context(), uuid)
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Failed to get history", err).AsGinResponse())
		return
	}

	resp := sdk.HistoryResponse{SessionID: uuid}
	for _, message := range messages {
		resp.Messages = append(resp.Messages, toSDKMessage(message))
	}

	c.JSON(sdk.NewSuccessResponse("History retrieved successfully", resp).AsGinResponse())
}

// AnalyzeFile handles POST requests to analyze a file by name
func AnalyzeFile(c *gin.Context) {
	// Parse request body
	var req sdk.AnalyzeFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err).AsGinResponse())
		return
	}

	service := GetService()
	media, report, err := service.AnalyzeFile(c.Request.Context(), req.Filename)
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to analyze file", err).AsGinResponse())
		return
	}

	resp := sdk.AnalyzeFileResponse{
		Filename:      req.Filename,
		MediaAnalysis: media,
		Report:        toSDKReport(report),
	}

	c.JSON(sdk.NewSuccessResponse("File analysis complete", resp).AsGinResponse())
}

// SaveEvidence handles POST requests to store a note and/or files in the
// evidence vault
func SaveEvidence(c *gin.Context) {
	// Parse request body
	var req sdk.EvidenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err).AsGinResponse())
		return
	}

	service := GetService()
	paths, err := service.SaveEvidence(c.Request.Context(), req.SessionID, req.Note, req.Files)
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to save evidence", err).AsGinResponse())
		return
	}

	resp := sdk.EvidenceResponse{
		SessionID: req.SessionID,
		Paths:     paths,
	}

	c.JSON(sdk.NewSuccessResponse("Evidence saved successfully", resp).AsGinResponse())
}

// LegalLookup handles POST requests for legal guidance
func LegalLookup(c *gin.Context) {
	// Parse request body
	var req sdk.LegalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err).AsGinResponse())
		return
	}

	service := GetService()
	guidance, lookup, err := service.Legal(c.Request.Context(), req.Country, req.Situation)
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to look up legal guidance", err).AsGinResponse())
		return
	}

	resp := sdk.LegalResponse{
		Guidance:   guidance,
		ToolLookup: lookup,
	}

	c.JSON(sdk.NewSuccessResponse("Legal guidance retrieved successfully", resp).AsGinResponse())
}

// GetMetrics handles GET requests for the metrics snapshot
func GetMetrics(c *gin.Context) {
	service := GetService()
	requests, errors, toolUsage, heatmap, dashboard := service.Metrics()

	resp := sdk.MetricsResponse{
		TotalRequests: requests,
		TotalErrors:   errors,
		ToolUsage:     toolUsage,
		ThreatHeatmap: heatmap,
		Dashboard:     dashboard,
	}

	c.JSON(sdk.NewSuccessResponse("Metrics retrieved successfully", resp).AsGinResponse())
}

/** SDK conversion helpers */

func toSDKSession(sess *session.Session) sdk.Session {
	out := sdk.Session{
		ID:        sess.ID.String(),
		UserID:    sess.UserID,
		CreatedAt: sess.CreatedAt,
		UpdatedAt: sess.UpdatedAt,
	}

	for _, message := range sess.Messages {
		out.Messages = append(out.Messages, toSDKMessage(message))
	}

	return out
}

func toSDKMessage(message *session.Message) sdk.Message {
	return sdk.Message{
		ID:        message.ID,
		Role:      message.Role,
		Content:   message.Content,
		CreatedAt: message.CreatedAt,
		SessionID: message.SessionID,
	}
}

func toSDKReport(report map[string]agent.Finding) sdk.Report {
	out := make(sdk.Report, len(report))
	for stage, finding := range report {
		out[stage] = finding
	}
	return out
}
