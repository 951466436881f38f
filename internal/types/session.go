package types

import "strings"

// Session covers both wire shapes: spreadsheet sessions carry SheetName and
// message counters, document sessions carry SessionName and Filename.
type Session struct {
	ID            string `json:"sessionId"`
	FileID        string `json:"fileId"`
	SheetName     string `json:"sheetName,omitempty"`
	SessionName   string `json:"sessionName,omitempty"`
	Filename      string `json:"filename,omitempty"`
	CreatedAt     string `json:"createdAt"`
	MessagesCount int    `json:"messagesCount,omitempty"`
	LastMessageAt string `json:"lastMessageAt,omitempty"`
}

func (s Session) Source() string {
	if name := strings.TrimSpace(s.SheetName); name != "" {
		return name
	}
	return strings.TrimSpace(s.SessionName)
}

type History struct {
	SessionID   string    `json:"sessionId"`
	FileID      string    `json:"fileId"`
	SheetName   string    `json:"sheetName,omitempty"`
	SessionName string    `json:"sessionName,omitempty"`
	Messages    []Message `json:"messages"`
}

func (h History) Source() string {
	if name := strings.TrimSpace(h.SheetName); name != "" {
		return name
	}
	return strings.TrimSpace(h.SessionName)
}
