package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	registry := NewRegistry()
	registry.Register(NewWebSearchTool())
	registry.Register(NewCodeExecutorTool())

	t.Run("get registered tool", func(t *testing.T) {
		tool, err := registry.Get("WebSearch")
		require.NoError(t, err)
		assert.Equal(t, "WebSearch", tool.Name())
	})

	t.Run("get unknown tool", func(t *testing.T) {
		_, err := registry.Get("Nonexistent")
		assert.Error(t, err)
	})

	t.Run("names", func(t *testing.T) {
		names := registry.Names()
		assert.Contains(t, names, "WebSearch")
		assert.Contains(t, names, "CodeExecutor")
	})
}

func TestLawBookSearch(t *testing.T) {
	book, err := NewLawBook()
	require.NoError(t, err)

	t.Run("matches by section", func(t *testing.T) {
		result := book.Search("354D", "")
		assert.Contains(t, result, "[India]")
		assert.Contains(t, result, "354D")
	})

	t.Run("matches by keyword in description", func(t *testing.T) {
		result := book.Search("stalking", "")
		assert.NotEmpty(t, result)
	})

	t.Run("country filter excludes other countries", func(t *testing.T) {
		result := book.Search("stalking", "USA")
		assert.NotContains(t, result, "[India]")
	})

	t.Run("no match returns empty", func(t *testing.T) {
		result := book.Search("parking ticket", "")
		assert.Empty(t, result)
	})

	t.Run("caps at three results", func(t *testing.T) {
		// A broad query matches far more than three entries
		result := book.Search("a", "")
		assert.Len(t, strings.Split(result, "\n"), 3)
	})
}

func TestLegalLookupTool(t *testing.T) {
	tool, err := NewLegalLookupTool()
	require.NoError(t, err)
	assert.Equal(t, "LegalDatabase", tool.Name())

	t.Run("internal database hit", func(t *testing.T) {
		result, err := tool.Execute(context.Background(), map[string]any{"query": "354D", "country": "India"})
		require.NoError(t, err)
		assert.Equal(t, "Internal Database", result["source"])
	})

	t.Run("falls back to web search on miss", func(t *testing.T) {
		result, err := tool.Execute(context.Background(), map[string]any{"query": "jaywalking"})
		require.NoError(t, err)
		assert.Equal(t, "Live Web Search", result["source"])
		assert.Contains(t, result["result"], "jaywalking")
	})

	t.Run("missing query", func(t *testing.T) {
		_, err := tool.Execute(context.Background(), map[string]any{})
		assert.Error(t, err)
	})
}

func TestDeepfakeDetectionTool(t *testing.T) {
	tool := NewDeepfakeDetectionTool()

	t.Run("flags suspicious media", func(t *testing.T) {
		result, err := tool.Execute(context.Background(), map[string]any{"media": "video_fake_01.mp4"})
		require.NoError(t, err)
		assert.Equal(t, true, result["is_deepfake"])
		assert.Equal(t, 0.985, result["artifact_confidence_score"])
	})

	t.Run("passes clean media", func(t *testing.T) {
		result, err := tool.Execute(context.Background(), map[string]any{"media": "birthday.mp4"})
		require.NoError(t, err)
		assert.Equal(t, false, result["is_deepfake"])
	})

	t.Run("missing media", func(t *testing.T) {
		_, err := tool.Execute(context.Background(), map[string]any{})
		assert.Error(t, err)
	})
}

func TestAudioForensicsTool(t *testing.T) {
	tool := NewAudioForensicsTool()

	result, err := tool.Execute(context.Background(), map[string]any{"audio": "call.aac"})
	require.NoError(t, err)
	assert.Equal(t, "High", result["stress_level"])
	assert.Equal(t, 85, result["voice_stress_score"])
}

func TestImageSafetyTool(t *testing.T) {
	tool := NewImageSafetyTool()

	result, err := tool.Execute(context.Background(), map[string]any{"image": "photo.png"})
	require.NoError(t, err)
	assert.Equal(t, "Safe", result["classification"])
}

func TestConnectorTools(t *testing.T) {
	t.Run("mcp tool", func(t *testing.T) {
		tool := NewMCPTool("threat_scan", "http://localhost:9000")
		assert.Equal(t, "MCP_threat_scan", tool.Name())

		result, err := tool.Execute(context.Background(), map[string]any{"input": "test"})
		require.NoError(t, err)
		assert.Equal(t, "success", result["status"])
		assert.Equal(t, "http://localhost:9000", result["server"])
	})

	t.Run("openapi tool", func(t *testing.T) {
		tool := NewOpenAPITool("reportThreat", "POST", "/v1/threats")
		assert.Equal(t, "reportThreat", tool.Name())

		result, err := tool.Execute(context.Background(), map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, 200, result["status_code"])
	})
}

func TestForensicScan(t *testing.T) {
	t.Run("full lifecycle", func(t *testing.T) {
		scan := NewForensicScan("session-1")
		assert.Equal(t, ScanIdle, scan.State())

		require.NoError(t, scan.Start())
		assert.Equal(t, ScanRunning, scan.State())

		require.NoError(t, scan.Step())
		assert.Equal(t, 20, scan.Progress())

		require.NoError(t, scan.Pause())
		assert.Equal(t, ScanPaused, scan.State())

		require.NoError(t, scan.Resume())
		for i := 0; i < 4; i++ {
			require.NoError(t, scan.Step())
		}

		assert.Equal(t, ScanCompleted, scan.State())
		assert.Equal(t, 100, scan.Progress())
		assert.Equal(t, "Operation Successful", scan.Result())
	})

	t.Run("invalid transitions", func(t *testing.T) {
		scan := NewForensicScan("session-2")

		assert.Error(t, scan.Step())   // not started
		assert.Error(t, scan.Pause())  // not running
		assert.Error(t, scan.Resume()) // not paused

		require.NoError(t, scan.Start())
		assert.Error(t, scan.Start())  // already running
		assert.Error(t, scan.Resume()) // not paused
	})

	t.Run("completed scan rejects further steps", func(t *testing.T) {
		scan := NewForensicScan("session-3")
		require.NoError(t, scan.RunToCompletion())
		assert.Error(t, scan.Step())
		assert.Error(t, scan.Pause())
	})
}
