// Package model holds the chat conversation types shared by the HTTP server
// and the assistant.
package model

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Conversation is a chat thread with the user the functions run for.
type Conversation struct {
	ID       string     `json:"id,omitempty"`
	UserID   string     `json:"user"`
	Messages []*Message `json:"messages"`
}
