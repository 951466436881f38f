package app

import "sheetchat/internal/types"

// Chat results carry the generation they were issued under; the controller
// drops any whose generation is no longer current.

type sessionStartedMsg struct {
	kind       SourceKind
	generation int
	session    *types.Session
	history    *types.History
	err        error
}

type messageSentMsg struct {
	kind       SourceKind
	generation int
	token      int
	sessionID  string
	reply      *types.Message
	err        error
}

type sessionLoadedMsg struct {
	kind       SourceKind
	generation int
	seq        int
	sessionID  string
	history    *types.History
	err        error
}

type sessionDeletedMsg struct {
	kind      SourceKind
	sessionID string
	err       error
}

type sessionsListedMsg struct {
	kind     SourceKind
	seq      int
	sessions []types.Session
	err      error
}

type filesListedMsg struct {
	kind  SourceKind
	seq   int
	files []types.UploadedFile
	err   error
}

type fileUploadedMsg struct {
	kind SourceKind
	file *types.UploadedFile
	err  error
}

type fileDescribedMsg struct {
	kind SourceKind
	seq  int
	file *types.UploadedFile
	err  error
}

type fileDeletedMsg struct {
	kind   SourceKind
	fileID string
	err    error
}
