// Package conversation owns the chat state between the user and the agent:
// an append-only transcript plus a driver that keeps replies in send order
// even when the backend answers out of order.
package conversation

import (
	"time"

	"github.com/google/uuid"

	"github.com/agenthub-io/agenthub/internal/api"
)

// Role identifies the author of a transcript message.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Message is one transcript entry. Seq orders messages by insertion; user
// messages and their replies share the same Seq so a reply can be matched
// back to the send that produced it.
type Message struct {
	ID        uuid.UUID
	Seq       int
	Role      Role
	Content   string
	Timestamp time.Time
	// Failed marks a user message whose send never produced a reply.
	Failed bool
	// Metadata carries the structured part of an agent reply, nil otherwise.
	Metadata *api.ReplyMetadata
}

// Transcript is the append-only message log. Entries are never removed or
// reordered; clearing the conversation replaces the whole transcript.
type Transcript struct {
	messages []Message
}

// Messages returns the log in insertion order. The returned slice must not
// be mutated.
func (t *Transcript) Messages() []Message {
	return t.messages
}

// Len returns the number of entries.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Last returns the most recent entry, if any.
func (t *Transcript) Last() (Message, bool) {
	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}

func (t *Transcript) append(seq int, role Role, content string, meta *api.ReplyMetadata) Message {
	msg := Message{
		ID:        uuid.New(),
		Seq:       seq,
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
		Metadata:  meta,
	}
	t.messages = append(t.messages, msg)
	return msg
}

// markFailed flags the user message with the given seq.
func (t *Transcript) markFailed(seq int) {
	for i := len(t.messages) - 1; i >= 0; i-- {
		if t.messages[i].Seq == seq && t.messages[i].Role == RoleUser {
			t.messages[i].Failed = true
			return
		}
	}
}
