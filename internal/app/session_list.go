package app

import (
	tea "charm.land/bubbletea/v2"

	"sheetchat/internal/client"
	"sheetchat/internal/types"
)

// SessionListController mirrors the server's session list. Every refresh
// replaces the list wholesale; only the latest refresh is applied.
type SessionListController struct {
	backend  ChatBackend
	sessions []types.Session
	selected int
	seq      int
	scope    string
	loading  bool
	err      string
}

func NewSessionListController(backend ChatBackend) *SessionListController {
	return &SessionListController{backend: backend}
}

// Refresh lists the sessions of fileID, or all sessions when fileID is empty.
func (c *SessionListController) Refresh(fileID string) tea.Cmd {
	if c == nil || c.backend == nil {
		return nil
	}
	c.seq++
	c.scope = fileID
	c.loading = true
	return fetchSessionsCmd(c.backend, c.seq, fileID)
}

func (c *SessionListController) Update(msg tea.Msg) bool {
	listed, ok := msg.(sessionsListedMsg)
	if !ok || c == nil || c.backend == nil || listed.kind != c.backend.Kind() {
		return false
	}
	if listed.seq != c.seq {
		return true
	}
	c.loading = false
	if listed.err != nil {
		c.err = client.ErrorMessage(listed.err, "Load sessions failed")
		return true
	}
	c.err = ""
	selectedID := ""
	if current, ok := c.Selected(); ok {
		selectedID = current.ID
	}
	c.sessions = append([]types.Session(nil), listed.sessions...)
	c.selected = 0
	if selectedID != "" {
		c.SelectID(selectedID)
	}
	return true
}

func (c *SessionListController) Remove(sessionID string) bool {
	for i, session := range c.sessions {
		if session.ID != sessionID {
			continue
		}
		c.sessions = append(c.sessions[:i], c.sessions[i+1:]...)
		if c.selected >= len(c.sessions) {
			c.selected = max(0, len(c.sessions)-1)
		}
		return true
	}
	return false
}

func (c *SessionListController) Move(delta int) {
	if len(c.sessions) == 0 {
		c.selected = 0
		return
	}
	c.selected = clamp(c.selected+delta, 0, len(c.sessions)-1)
}

func (c *SessionListController) SelectID(sessionID string) bool {
	for i, session := range c.sessions {
		if session.ID == sessionID {
			c.selected = i
			return true
		}
	}
	return false
}

func (c *SessionListController) Selected() (types.Session, bool) {
	if c == nil || c.selected < 0 || c.selected >= len(c.sessions) {
		return types.Session{}, false
	}
	return c.sessions[c.selected], true
}

func (c *SessionListController) SelectedIndex() int {
	return c.selected
}

func (c *SessionListController) Sessions() []types.Session {
	if c == nil {
		return nil
	}
	return c.sessions
}

func (c *SessionListController) Scope() string {
	return c.scope
}

func (c *SessionListController) Loading() bool {
	return c.loading
}

func (c *SessionListController) Err() string {
	return c.err
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
