package session

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextCompactor(t *testing.T) {
	sessionID := uuid.New()

	makeMessages := func(n int) []*Message {
		messages := make([]*Message, 0, n)
		for i := 0; i < n; i++ {
			messages = append(messages, NewMessage(sessionID, RoleUser, fmt.Sprintf("message %d", i)))
		}
		return messages
	}

	t.Run("within budget untouched", func(t *testing.T) {
		compactor := NewContextCompactor(10)
		messages := makeMessages(5)

		assert.Equal(t, messages, compactor.Compact(messages))
	})

	t.Run("over budget collapses middle", func(t *testing.T) {
		compactor := NewContextCompactor(5)
		messages := makeMessages(10)

		compacted := compactor.Compact(messages)
		require.Len(t, compacted, 5)

		// Head and tail survive verbatim
		assert.Equal(t, "message 0", compacted[0].Content)
		assert.Equal(t, "message 1", compacted[1].Content)
		assert.Equal(t, "message 8", compacted[3].Content)
		assert.Equal(t, "message 9", compacted[4].Content)

		// Middle becomes one summary
		assert.Equal(t, RoleSummary, compacted[2].Role)
		assert.Contains(t, compacted[2].Content, "Compacted 6 message(s)")
		assert.Equal(t, sessionID, compacted[2].SessionID)
	})

	t.Run("long contents are previewed", func(t *testing.T) {
		compactor := NewContextCompactor(5)
		messages := makeMessages(6)
		messages[2].Content = "this message is far too long to appear in full inside a summary"

		compacted := compactor.Compact(messages)
		assert.Contains(t, compacted[2].Content, "...")
	})

	t.Run("tiny budget raised to floor", func(t *testing.T) {
		compactor := NewContextCompactor(1)
		messages := makeMessages(10)

		assert.Len(t, compactor.Compact(messages), 5)
	})
}
