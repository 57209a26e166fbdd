package tools

import (
	"context"
	"fmt"
	"strings"
)

// DeepfakeDetectionTool simulates media analysis for face manipulation,
// noise artifacts, and lip-sync errors
type DeepfakeDetectionTool struct{}

// NewDeepfakeDetectionTool creates a new simulated deepfake detector
func NewDeepfakeDetectionTool() *DeepfakeDetectionTool {
	return &DeepfakeDetectionTool{}
}

// Name returns the tool name
func (t *DeepfakeDetectionTool) Name() string { return "DeepfakeDetector" }

// Description returns the tool description
func (t *DeepfakeDetectionTool) Description() string {
	return "Analyzes media for face manipulation, noise artifacts, and lip-sync errors."
}

// Execute grades the media as fake when its path hints at manipulation.
// Params: "media" (path or URL, required).
func (t *DeepfakeDetectionTool) Execute(_ context.Context, params map[string]any) (map[string]any, error) {
	media, _ := params["media"].(string)
	if media == "" {
		return nil, fmt.Errorf("media parameter is required")
	}

	lower := strings.ToLower(media)
	if strings.Contains(lower, "fake") || strings.Contains(lower, "edit") {
		return map[string]any{
			"is_deepfake":               true,
			"artifact_confidence_score": 0.985,
			"lip_sync_error_rate":       "High (0.85)",
			"model_version":             "EfficientNet-B7",
			"artifacts":                 []string{"Mismatched lip sync", "Irregular blinking pattern", "Digital noise in jawline"},
		}, nil
	}

	return map[string]any{
		"is_deepfake":               false,
		"artifact_confidence_score": 0.12,
		"lip_sync_error_rate":       "Low (0.05)",
		"model_version":             "EfficientNet-B7",
		"artifacts":                 []string{},
	}, nil
}

// AudioForensicsTool simulates voice stress and background noise analysis
type AudioForensicsTool struct{}

// NewAudioForensicsTool creates a new simulated audio forensics tool
func NewAudioForensicsTool() *AudioForensicsTool {
	return &AudioForensicsTool{}
}

// Name returns the tool name
func (t *AudioForensicsTool) Name() string { return "AudioForensics" }

// Description returns the tool description
func (t *AudioForensicsTool) Description() string {
	return "Analyzes voice stress, background noise, and speaker identity."
}

// Execute returns a canned stress analysis. Params: "audio" (required).
func (t *AudioForensicsTool) Execute(_ context.Context, params map[string]any) (map[string]any, error) {
	audio, _ := params["audio"].(string)
	if audio == "" {
		return nil, fmt.Errorf("audio parameter is required")
	}

	return map[string]any{
		"stress_level":           "High",
		"voice_stress_score":     85,
		"background_noise_level": "45dB (Traffic)",
		"speaker_gender":         "Male",
	}, nil
}

// ImageSafetyTool simulates NSFW and violence classification for images
type ImageSafetyTool struct{}

// NewImageSafetyTool creates a new simulated image safety classifier
func NewImageSafetyTool() *ImageSafetyTool {
	return &ImageSafetyTool{}
}

// Name returns the tool name
func (t *ImageSafetyTool) Name() string { return "ImageSafety" }

// Description returns the tool description
func (t *ImageSafetyTool) Description() string {
	return "Detects NSFW, Gore, and Violence in images."
}

// Execute returns a canned safe classification. Params: "image" (required).
func (t *ImageSafetyTool) Execute(_ context.Context, params map[string]any) (map[string]any, error) {
	image, _ := params["image"].(string)
	if image == "" {
		return nil, fmt.Errorf("image parameter is required")
	}

	return map[string]any{
		"nsfw_score":     0.02,
		"classification": "Safe",
	}, nil
}
