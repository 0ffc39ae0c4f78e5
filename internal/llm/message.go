package llm

import "context"

type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// ChatMessage is one entry of a chat-style request. Order is significant.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

func SystemMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleSystem, Content: content}
}

func UserMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleUser, Content: content}
}

// Completer issues exactly one completion request against one model.
// Transport failures, non-2xx responses and responses without choices are errors.
type Completer interface {
	Complete(ctx context.Context, model string, messages []ChatMessage, temperature float32) (string, error)
}
