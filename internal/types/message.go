package types

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

func NewUserMessage(content string, now time.Time) Message {
	return Message{
		Role:      RoleUser,
		Content:   content,
		Timestamp: now.UTC().Format(time.RFC3339Nano),
	}
}
