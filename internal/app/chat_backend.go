package app

import (
	"context"
	"strings"

	"sheetchat/internal/types"
)

type SourceKind int

const (
	SourceSheet SourceKind = iota
	SourceDocument
)

func (k SourceKind) String() string {
	switch k {
	case SourceDocument:
		return "documents"
	default:
		return "sheets"
	}
}

// ChatBackend is the session surface one chat view talks to. The source
// argument is a sheet name for spreadsheets and a session name for documents.
type ChatBackend interface {
	Kind() SourceKind
	CreateSession(ctx context.Context, fileID, source string) (*types.Session, error)
	History(ctx context.Context, sessionID string) (*types.History, error)
	Ask(ctx context.Context, sessionID, question string) (*types.Message, error)
	ListSessions(ctx context.Context, fileID string) ([]types.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type FileBackend interface {
	Kind() SourceKind
	ListFiles(ctx context.Context) ([]types.UploadedFile, error)
	Upload(ctx context.Context, path string) (*types.UploadedFile, error)
	Describe(ctx context.Context, file types.UploadedFile) (*types.UploadedFile, error)
	DeleteFile(ctx context.Context, fileID string) error
}

type SheetBackend struct {
	api SheetAPI
}

func NewSheetBackend(api SheetAPI) *SheetBackend {
	return &SheetBackend{api: api}
}

func (b *SheetBackend) Kind() SourceKind { return SourceSheet }

func (b *SheetBackend) CreateSession(ctx context.Context, fileID, source string) (*types.Session, error) {
	return b.api.CreateSession(ctx, fileID, source)
}

func (b *SheetBackend) History(ctx context.Context, sessionID string) (*types.History, error) {
	return b.api.History(ctx, sessionID)
}

func (b *SheetBackend) Ask(ctx context.Context, sessionID, question string) (*types.Message, error) {
	return b.api.Ask(ctx, sessionID, question)
}

func (b *SheetBackend) ListSessions(ctx context.Context, fileID string) ([]types.Session, error) {
	return b.api.ListSessions(ctx, fileID)
}

func (b *SheetBackend) DeleteSession(ctx context.Context, sessionID string) error {
	return b.api.DeleteSession(ctx, sessionID)
}

func (b *SheetBackend) ListFiles(ctx context.Context) ([]types.UploadedFile, error) {
	return b.api.ListFiles(ctx)
}

func (b *SheetBackend) Upload(ctx context.Context, path string) (*types.UploadedFile, error) {
	return b.api.UploadSpreadsheetFile(ctx, path)
}

// Describe fetches sheet names, which the file listing does not carry.
func (b *SheetBackend) Describe(ctx context.Context, file types.UploadedFile) (*types.UploadedFile, error) {
	return b.api.FileInfo(ctx, file.FileID)
}

func (b *SheetBackend) DeleteFile(ctx context.Context, fileID string) error {
	return b.api.DeleteFile(ctx, fileID)
}

type DocumentBackend struct {
	api DocumentAPI
}

func NewDocumentBackend(api DocumentAPI) *DocumentBackend {
	return &DocumentBackend{api: api}
}

func (b *DocumentBackend) Kind() SourceKind { return SourceDocument }

func (b *DocumentBackend) CreateSession(ctx context.Context, fileID, source string) (*types.Session, error) {
	return b.api.CreateDocumentSession(ctx, fileID, source)
}

// History joins the session record with its messages; the document routes
// serve them separately.
func (b *DocumentBackend) History(ctx context.Context, sessionID string) (*types.History, error) {
	session, err := b.api.DocumentSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	messages, err := b.api.DocumentMessages(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &types.History{
		SessionID:   session.ID,
		FileID:      session.FileID,
		SessionName: session.SessionName,
		Messages:    messages,
	}, nil
}

func (b *DocumentBackend) Ask(ctx context.Context, sessionID, question string) (*types.Message, error) {
	return b.api.AskDocument(ctx, sessionID, question)
}

// ListSessions filters client side; the document listing has no file filter.
func (b *DocumentBackend) ListSessions(ctx context.Context, fileID string) ([]types.Session, error) {
	sessions, err := b.api.ListDocumentSessions(ctx)
	if err != nil {
		return nil, err
	}
	fileID = strings.TrimSpace(fileID)
	if fileID == "" {
		return sessions, nil
	}
	out := make([]types.Session, 0, len(sessions))
	for _, session := range sessions {
		if session.FileID == fileID {
			out = append(out, session)
		}
	}
	return out, nil
}

func (b *DocumentBackend) DeleteSession(ctx context.Context, sessionID string) error {
	return b.api.DeleteDocumentSession(ctx, sessionID)
}

func (b *DocumentBackend) ListFiles(ctx context.Context) ([]types.UploadedFile, error) {
	return b.api.ListDocuments(ctx)
}

func (b *DocumentBackend) Upload(ctx context.Context, path string) (*types.UploadedFile, error) {
	uploaded, err := b.api.UploadDocumentFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return &types.UploadedFile{FileID: uploaded.FileID, Filename: uploaded.Filename}, nil
}

func (b *DocumentBackend) Describe(_ context.Context, file types.UploadedFile) (*types.UploadedFile, error) {
	out := file
	return &out, nil
}

func (b *DocumentBackend) DeleteFile(ctx context.Context, fileID string) error {
	return b.api.DeleteDocument(ctx, fileID)
}
