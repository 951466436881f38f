package app

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"sheetchat/internal/client"
	"sheetchat/internal/logging"
	"sheetchat/internal/types"
)

const (
	startFailedMessage  = "Start session failed"
	sendFailedMessage   = "Send failed"
	loadFailedMessage   = "Load session failed"
	deleteFailedMessage = "Delete session failed"
)

// ChatController owns the one active chat of a view: the selected source, the
// active session, its transcript, the loading flag and the current error.
// Operations change local state at once and return a command for the network
// part; Update applies the result.
type ChatController struct {
	backend    ChatBackend
	sessions   *SessionListController
	transcript Transcript
	logger     logging.Logger
	now        func() time.Time

	fileID    string
	fileName  string
	source    string
	sources   []string
	sessionID string
	question  string
	loading   bool
	err       string

	generation int
	loadSeq    int
}

func NewChatController(backend ChatBackend, logger logging.Logger) *ChatController {
	if logger == nil {
		logger = logging.Nop()
	}
	return &ChatController{
		backend:  backend,
		sessions: NewSessionListController(backend),
		logger:   logger.With(logging.F("view", backend.Kind().String())),
		now:      time.Now,
	}
}

func (c *ChatController) Kind() SourceKind {
	return c.backend.Kind()
}

// SelectFile selects file and its first sheet.
func (c *ChatController) SelectFile(file types.UploadedFile) {
	source := ""
	if c.Kind() == SourceSheet {
		source = file.DefaultSheet()
	}
	c.SelectSource(file.FileID, source)
	c.fileName = file.Filename
	c.sources = append([]string(nil), file.SheetNames...)
}

func (c *ChatController) SelectSource(fileID, source string) {
	fileID = strings.TrimSpace(fileID)
	if fileID != c.fileID {
		c.sources = nil
		c.fileName = ""
	}
	c.fileID = fileID
	c.source = strings.TrimSpace(source)
	c.clearSession()
	c.err = ""
}

// CycleSource moves to the next or previous sheet of the selected file.
func (c *ChatController) CycleSource(delta int) {
	if len(c.sources) < 2 {
		return
	}
	idx := 0
	for i, source := range c.sources {
		if source == c.source {
			idx = i
			break
		}
	}
	idx = (idx + delta%len(c.sources) + len(c.sources)) % len(c.sources)
	sources := c.sources
	fileName := c.fileName
	c.SelectSource(c.fileID, sources[idx])
	c.sources = sources
	c.fileName = fileName
}

func (c *ChatController) CanStart() bool {
	return !c.loading && c.fileID != "" && c.source != ""
}

func (c *ChatController) CanSend() bool {
	return !c.loading && c.sessionID != "" && strings.TrimSpace(c.question) != ""
}

func (c *ChatController) StartSession() tea.Cmd {
	if !c.CanStart() {
		return nil
	}
	c.clearSession()
	c.loading = true
	c.err = ""
	c.logger.Debug("starting session", logging.F("file_id", c.fileID), logging.F("source", c.source))
	return startSessionCmd(c.backend, c.generation, c.fileID, c.source)
}

func (c *ChatController) SetQuestion(text string) {
	c.question = text
}

func (c *ChatController) SendMessage(text string) tea.Cmd {
	question := strings.TrimSpace(text)
	if question == "" || c.sessionID == "" || c.loading {
		return nil
	}
	c.question = ""
	token := c.transcript.Apply(types.NewUserMessage(question, c.now()))
	c.loading = true
	c.err = ""
	return sendMessageCmd(c.backend, c.generation, token, c.sessionID, question)
}

// Submit sends the buffered question.
func (c *ChatController) Submit() tea.Cmd {
	return c.SendMessage(c.question)
}

func (c *ChatController) LoadSession(sessionID string) tea.Cmd {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil
	}
	c.loadSeq++
	c.loading = true
	c.err = ""
	return loadSessionCmd(c.backend, c.generation, c.loadSeq, sessionID)
}

// NewSession leaves the active session but keeps the selected source.
func (c *ChatController) NewSession() {
	c.clearSession()
	c.question = ""
	c.err = ""
}

func (c *ChatController) Reset() {
	c.NewSession()
	c.fileID = ""
	c.fileName = ""
	c.source = ""
	c.sources = nil
}

// DeleteSession must only be called after the user confirmed the delete.
func (c *ChatController) DeleteSession(sessionID string) tea.Cmd {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil
	}
	c.err = ""
	return deleteSessionCmd(c.backend, sessionID)
}

func (c *ChatController) RefreshSessions() tea.Cmd {
	return c.sessions.Refresh(c.fileID)
}

func (c *ChatController) Update(msg tea.Msg) (bool, tea.Cmd) {
	if c.sessions.Update(msg) {
		return true, nil
	}
	switch msg := msg.(type) {
	case sessionStartedMsg:
		if msg.kind != c.Kind() {
			return false, nil
		}
		return true, c.onSessionStarted(msg)
	case messageSentMsg:
		if msg.kind != c.Kind() {
			return false, nil
		}
		return true, c.onMessageSent(msg)
	case sessionLoadedMsg:
		if msg.kind != c.Kind() {
			return false, nil
		}
		c.onSessionLoaded(msg)
		return true, nil
	case sessionDeletedMsg:
		if msg.kind != c.Kind() {
			return false, nil
		}
		return true, c.onSessionDeleted(msg)
	}
	return false, nil
}

func (c *ChatController) onSessionStarted(msg sessionStartedMsg) tea.Cmd {
	if msg.generation != c.generation {
		c.logger.Debug("discarding stale session start")
		return nil
	}
	c.loading = false
	var refresh tea.Cmd
	if msg.session != nil {
		refresh = c.RefreshSessions()
	}
	if msg.err != nil {
		c.err = client.ErrorMessage(msg.err, startFailedMessage)
		c.logger.Warn("start session failed", logging.F("file_id", c.fileID), logging.F("error", msg.err))
		return refresh
	}
	c.sessionID = msg.session.ID
	var messages []types.Message
	if msg.history != nil {
		messages = msg.history.Messages
	}
	c.transcript.Reset(messages)
	c.sessions.SelectID(c.sessionID)
	c.logger.Info("session started", logging.F("session_id", c.sessionID))
	return refresh
}

func (c *ChatController) onMessageSent(msg messageSentMsg) tea.Cmd {
	if msg.generation != c.generation {
		c.logger.Debug("discarding stale reply", logging.F("session_id", msg.sessionID))
		return nil
	}
	c.loading = false
	if msg.err != nil || msg.reply == nil {
		c.transcript.Revert(msg.token)
		c.err = client.ErrorMessage(msg.err, sendFailedMessage)
		if c.err == "" {
			c.err = sendFailedMessage
		}
		c.logger.Warn("send failed", logging.F("session_id", msg.sessionID), logging.F("error", msg.err))
		return nil
	}
	c.transcript.Confirm(msg.token, *msg.reply)
	return c.RefreshSessions()
}

func (c *ChatController) onSessionLoaded(msg sessionLoadedMsg) {
	if msg.seq != c.loadSeq || msg.generation != c.generation {
		c.logger.Debug("discarding stale history", logging.F("session_id", msg.sessionID))
		return
	}
	c.loading = false
	if msg.err != nil || msg.history == nil {
		c.err = client.ErrorMessage(msg.err, loadFailedMessage)
		if c.err == "" {
			c.err = loadFailedMessage
		}
		if client.IsNotFound(msg.err) {
			c.sessions.Remove(msg.sessionID)
		}
		c.logger.Warn("load session failed", logging.F("session_id", msg.sessionID), logging.F("error", msg.err))
		return
	}
	history := msg.history
	if history.FileID != c.fileID {
		c.sources = nil
		c.fileName = ""
	}
	c.generation++
	c.sessionID = history.SessionID
	if c.sessionID == "" {
		c.sessionID = msg.sessionID
	}
	c.fileID = history.FileID
	c.source = history.Source()
	c.transcript.Reset(history.Messages)
	c.sessions.SelectID(c.sessionID)
}

func (c *ChatController) onSessionDeleted(msg sessionDeletedMsg) tea.Cmd {
	if msg.err != nil {
		c.err = client.ErrorMessage(msg.err, deleteFailedMessage)
		c.logger.Warn("delete session failed", logging.F("session_id", msg.sessionID), logging.F("error", msg.err))
		return nil
	}
	c.sessions.Remove(msg.sessionID)
	if msg.sessionID == c.sessionID {
		c.NewSession()
	}
	c.logger.Info("session deleted", logging.F("session_id", msg.sessionID))
	return c.RefreshSessions()
}

// clearSession drops the active session. Bumping the generation discards
// responses still in flight for it, so loading is cleared with it.
func (c *ChatController) clearSession() {
	c.generation++
	c.sessionID = ""
	c.loading = false
	c.transcript.Reset(nil)
}

func (c *ChatController) FileID() string            { return c.fileID }
func (c *ChatController) FileName() string          { return c.fileName }
func (c *ChatController) Source() string            { return c.source }
func (c *ChatController) Sources() []string         { return c.sources }
func (c *ChatController) SessionID() string         { return c.sessionID }
func (c *ChatController) Question() string          { return c.question }
func (c *ChatController) Loading() bool             { return c.loading }
func (c *ChatController) Err() string               { return c.err }
func (c *ChatController) Messages() []types.Message { return c.transcript.Messages() }

func (c *ChatController) Entries() []TranscriptEntry {
	return c.transcript.Entries()
}

func (c *ChatController) LastReply() (types.Message, bool) {
	return c.transcript.LastReply()
}

func (c *ChatController) Sessions() *SessionListController {
	return c.sessions
}

// ChatState is a snapshot of the observable controller state.
type ChatState struct {
	FileID    string
	Source    string
	SessionID string
	Messages  []types.Message
	Question  string
	Loading   bool
	Err       string
}

func (c *ChatController) State() ChatState {
	return ChatState{
		FileID:    c.fileID,
		Source:    c.source,
		SessionID: c.sessionID,
		Messages:  c.Messages(),
		Question:  c.question,
		Loading:   c.loading,
		Err:       c.err,
	}
}
