package conversation

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/maripally-gautam/smartpad-assistant/pkg/protocol"
)

const (
	titleMaxLength = 30
	untitled       = "New Conversation"
)

// Conversation is one persisted transcript. The protocol session the agent
// loop consumes is held separately by the Store and rebuilt from Messages
// when a conversation is re-selected.
type Conversation struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Messages      []Message `json:"messages"`
	CreatedAt     time.Time `json:"createdAt"`
	LastMessageAt time.Time `json:"lastMessageAt"`
}

func newConversation() *Conversation {
	now := time.Now()
	return &Conversation{
		ID:        uuid.New().String(),
		Title:     untitled,
		CreatedAt: now,
	}
}

// deriveTitle builds a conversation title from its first user message:
// newlines collapsed to spaces, truncated to 30 characters with an ellipsis.
// Truncation counts runes so a multi-byte character is never split.
func deriveTitle(text string) string {
	flat := strings.Join(strings.Fields(text), " ")
	if flat == "" {
		return untitled
	}
	if runes := []rune(flat); len(runes) > titleMaxLength {
		return string(runes[:titleMaxLength]) + "..."
	}
	return flat
}

// rebuildSession reconstructs the protocol history from the transcript.
// Only user and assistant text survives the round trip: system notices are
// local to the transcript, and function exchanges are not reconstructed, so
// a re-selected conversation gives the model text context only.
func (c *Conversation) rebuildSession() []protocol.Turn {
	session := make([]protocol.Turn, 0, len(c.Messages))
	for _, m := range c.Messages {
		if turn, ok := protocol.FromMessage(m.Role, m.Content); ok {
			session = append(session, turn)
		}
	}
	return session
}
