package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatRole identifies the author of a conversation turn.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is a single conversation turn. Turns are append-only within a
// session and cleared only by an explicit reset.
type ChatMessage struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"session_id"`
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatEventType identifies the kind of event emitted while answering a turn.
type ChatEventType string

const (
	// ChatEventTyping carries a monotonically growing prefix of the answer.
	ChatEventTyping ChatEventType = "typing"
	// ChatEventAnswer carries the complete answer text.
	ChatEventAnswer ChatEventType = "answer"
	ChatEventError  ChatEventType = "error"
	ChatEventDone   ChatEventType = "done"
)

// ChatEvent is one element of the per-turn event stream sent to the UI
// shell. The stream contract: zero or more typing events whose Content
// fields are growing prefixes of the final text, then exactly one answer or
// error event, then done.
type ChatEvent struct {
	Type    ChatEventType `json:"type"`
	Content string        `json:"content,omitempty"`
}

// NewTypingEvent creates a typing-prefix event.
func NewTypingEvent(prefix string) ChatEvent {
	return ChatEvent{Type: ChatEventTyping, Content: prefix}
}

// NewAnswerEvent creates the final answer event.
func NewAnswerEvent(text string) ChatEvent {
	return ChatEvent{Type: ChatEventAnswer, Content: text}
}

// NewErrorEvent creates an error event.
func NewErrorEvent(message string) ChatEvent {
	return ChatEvent{Type: ChatEventError, Content: message}
}

// NewDoneEvent creates the terminal event.
func NewDoneEvent() ChatEvent {
	return ChatEvent{Type: ChatEventDone}
}
