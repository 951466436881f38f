package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"sheetchat/internal/types"
)

func startSessionCmd(backend ChatBackend, generation int, fileID, source string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		session, err := backend.CreateSession(ctx, fileID, source)
		if err != nil {
			return sessionStartedMsg{kind: backend.Kind(), generation: generation, err: err}
		}
		history, err := backend.History(ctx, session.ID)
		return sessionStartedMsg{
			kind:       backend.Kind(),
			generation: generation,
			session:    session,
			history:    history,
			err:        err,
		}
	}
}

func sendMessageCmd(backend ChatBackend, generation, token int, sessionID, question string) tea.Cmd {
	return func() tea.Msg {
		reply, err := backend.Ask(context.Background(), sessionID, question)
		return messageSentMsg{
			kind:       backend.Kind(),
			generation: generation,
			token:      token,
			sessionID:  sessionID,
			reply:      reply,
			err:        err,
		}
	}
}

func loadSessionCmd(backend ChatBackend, generation, seq int, sessionID string) tea.Cmd {
	return func() tea.Msg {
		history, err := backend.History(context.Background(), sessionID)
		return sessionLoadedMsg{
			kind:       backend.Kind(),
			generation: generation,
			seq:        seq,
			sessionID:  sessionID,
			history:    history,
			err:        err,
		}
	}
}

func deleteSessionCmd(backend ChatBackend, sessionID string) tea.Cmd {
	return func() tea.Msg {
		err := backend.DeleteSession(context.Background(), sessionID)
		return sessionDeletedMsg{kind: backend.Kind(), sessionID: sessionID, err: err}
	}
}

func fetchSessionsCmd(backend ChatBackend, seq int, fileID string) tea.Cmd {
	return func() tea.Msg {
		sessions, err := backend.ListSessions(context.Background(), fileID)
		return sessionsListedMsg{kind: backend.Kind(), seq: seq, sessions: sessions, err: err}
	}
}

func fetchFilesCmd(backend FileBackend, seq int) tea.Cmd {
	return func() tea.Msg {
		files, err := backend.ListFiles(context.Background())
		return filesListedMsg{kind: backend.Kind(), seq: seq, files: files, err: err}
	}
}

func uploadFileCmd(backend FileBackend, path string) tea.Cmd {
	return func() tea.Msg {
		file, err := backend.Upload(context.Background(), path)
		return fileUploadedMsg{kind: backend.Kind(), file: file, err: err}
	}
}

func describeFileCmd(backend FileBackend, seq int, file types.UploadedFile) tea.Cmd {
	return func() tea.Msg {
		described, err := backend.Describe(context.Background(), file)
		return fileDescribedMsg{kind: backend.Kind(), seq: seq, file: described, err: err}
	}
}

func deleteFileCmd(backend FileBackend, fileID string) tea.Cmd {
	return func() tea.Msg {
		err := backend.DeleteFile(context.Background(), fileID)
		return fileDeletedMsg{kind: backend.Kind(), fileID: fileID, err: err}
	}
}
