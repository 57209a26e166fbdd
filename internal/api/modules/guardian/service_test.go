package guardian

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveEvidence(t *testing.T) {
	ctx := context.Background()
	svc := &Service{vaultDir: t.TempDir()}
	sessionID := uuid.New().String()

	t.Run("note and files saved together", func(t *testing.T) {
		src := filepath.Join(t.TempDir(), "screenshot.png")
		require.NoError(t, os.WriteFile(src, []byte("image-bytes"), 0o644))

		paths, err := svc.SaveEvidence(ctx, sessionID, "He sent this at 10pm.", []string{src})
		require.NoError(t, err)
		require.Len(t, paths, 2)

		// Everything lands under the session's vault directory
		dir := filepath.Join(svc.vaultDir, sessionID)
		for _, path := range paths {
			assert.Equal(t, dir, filepath.Dir(path))
		}

		note, err := os.ReadFile(paths[0])
		require.NoError(t, err)
		assert.Equal(t, "He sent this at 10pm.", string(note))
		assert.True(t, strings.HasPrefix(filepath.Base(paths[0]), "evidence_text_"))

		copied, err := os.ReadFile(paths[1])
		require.NoError(t, err)
		assert.Equal(t, "image-bytes", string(copied))
		assert.Equal(t, "screenshot.png", filepath.Base(paths[1]))
	})

	t.Run("files without a note", func(t *testing.T) {
		src := filepath.Join(t.TempDir(), "recording.aac")
		require.NoError(t, os.WriteFile(src, []byte("audio-bytes"), 0o644))

		paths, err := svc.SaveEvidence(ctx, sessionID, "", []string{src})
		require.NoError(t, err)
		require.Len(t, paths, 1)
		assert.Equal(t, "recording.aac", filepath.Base(paths[0]))
	})

	t.Run("empty request is rejected", func(t *testing.T) {
		_, err := svc.SaveEvidence(ctx, sessionID, "   ", nil)
		assert.ErrorContains(t, err, "no evidence provided")
	})

	t.Run("missing source file", func(t *testing.T) {
		_, err := svc.SaveEvidence(ctx, sessionID, "", []string{filepath.Join(t.TempDir(), "gone.png")})
		assert.ErrorContains(t, err, "failed to vault file gone.png")
	})

	t.Run("invalid session ID", func(t *testing.T) {
		_, err := svc.SaveEvidence(ctx, "not-a-uuid", "note", nil)
		assert.ErrorContains(t, err, "invalid session ID format")
	})
}
