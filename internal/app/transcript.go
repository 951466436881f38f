package app

import "sheetchat/internal/types"

// Transcript is the message list of one session. Entries added with Apply
// stay pending until Confirm or Revert is called with the token Apply
// returned.
type Transcript struct {
	entries   []transcriptEntry
	nextToken int
}

type transcriptEntry struct {
	token   int
	pending bool
	message types.Message
}

// TranscriptEntry is a read-only view of one rendered message.
type TranscriptEntry struct {
	Message types.Message
	Pending bool
}

func (t *Transcript) Reset(messages []types.Message) {
	t.entries = make([]transcriptEntry, 0, len(messages))
	for _, msg := range messages {
		t.entries = append(t.entries, transcriptEntry{message: msg})
	}
}

func (t *Transcript) Apply(msg types.Message) int {
	t.nextToken++
	t.entries = append(t.entries, transcriptEntry{
		token:   t.nextToken,
		pending: true,
		message: msg,
	})
	return t.nextToken
}

// Confirm settles the pending entry and places reply directly after it.
// It reports false when token is unknown or already settled.
func (t *Transcript) Confirm(token int, reply types.Message) bool {
	idx := t.pendingIndex(token)
	if idx < 0 {
		return false
	}
	t.entries[idx].pending = false
	t.entries[idx].token = 0
	entry := transcriptEntry{message: reply}
	t.entries = append(t.entries, transcriptEntry{})
	copy(t.entries[idx+2:], t.entries[idx+1:])
	t.entries[idx+1] = entry
	return true
}

// Revert removes exactly the pending entry identified by token.
func (t *Transcript) Revert(token int) bool {
	idx := t.pendingIndex(token)
	if idx < 0 {
		return false
	}
	t.entries = append(t.entries[:idx], t.entries[idx+1:]...)
	return true
}

func (t *Transcript) Messages() []types.Message {
	out := make([]types.Message, 0, len(t.entries))
	for _, entry := range t.entries {
		out = append(out, entry.message)
	}
	return out
}

func (t *Transcript) Entries() []TranscriptEntry {
	out := make([]TranscriptEntry, 0, len(t.entries))
	for _, entry := range t.entries {
		out = append(out, TranscriptEntry{Message: entry.message, Pending: entry.pending})
	}
	return out
}

func (t *Transcript) Pending() int {
	count := 0
	for _, entry := range t.entries {
		if entry.pending {
			count++
		}
	}
	return count
}

func (t *Transcript) Len() int {
	return len(t.entries)
}

func (t *Transcript) LastReply() (types.Message, bool) {
	for i := len(t.entries) - 1; i >= 0; i-- {
		if t.entries[i].message.Role == types.RoleAssistant {
			return t.entries[i].message, true
		}
	}
	return types.Message{}, false
}

func (t *Transcript) pendingIndex(token int) int {
	if token <= 0 {
		return -1
	}
	for i, entry := range t.entries {
		if entry.pending && entry.token == token {
			return i
		}
	}
	return -1
}
