package session

import (
	"fmt"
	"strings"
)

// RoleSummary marks a synthetic message produced by compaction
const RoleSummary = "summary"

// Compaction boundaries: how many original messages survive on each end
const (
	compactHead = 2
	compactTail = 2
)

// ContextCompactor shrinks long conversation histories so downstream
// analysis stays within a message budget. The oldest and newest turns
// are kept verbatim and the middle collapses into one summary message
type ContextCompactor struct {
	maxMessages int
}

// NewContextCompactor creates a compactor with the given budget. Budgets
// below the head+tail+summary floor are raised to it
func NewContextCompactor(maxMessages int) *ContextCompactor {
	if maxMessages < compactHead+compactTail+1 {
		maxMessages = compactHead + compactTail + 1
	}
	return &ContextCompactor{maxMessages: maxMessages}
}

// Compact returns the message list unchanged while within budget,
// otherwise head + summary + tail
func (c *ContextCompactor) Compact(messages []*Message) []*Message {
	if len(messages) <= c.maxMessages {
		return messages
	}

	head := messages[:compactHead]
	tail := messages[len(messages)-compactTail:]
	middle := messages[compactHead : len(messages)-compactTail]

	summary := &Message{
		Role:    RoleSummary,
		Content: summarize(middle),
	}
	if len(middle) > 0 {
		summary.SessionID = middle[0].SessionID
		summary.CreatedAt = middle[len(middle)-1].CreatedAt
	}

	compacted := make([]*Message, 0, compactHead+1+compactTail)
	compacted = append(compacted, head...)
	compacted = append(compacted, summary)
	compacted = append(compacted, tail...)
	return compacted
}

// summarize renders the collapsed middle as a single line with short
// previews of each turn
func summarize(messages []*Message) string {
	previews := make([]string, 0, len(messages))
	for _, message := range messages {
		content := message.Content
		if len(content) > 30 {
			content = content[:30] + "..."
		}
		previews = append(previews, content)
	}

	return fmt.Sprintf("[Compacted %d message(s): %s]", len(messages), strings.Join(previews, " | "))
}
