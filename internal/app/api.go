package app

import (
	"context"

	"sheetchat/internal/client"
	"sheetchat/internal/types"
)

type SheetAPI interface {
	UploadSpreadsheetFile(ctx context.Context, path string) (*types.UploadedFile, error)
	FileInfo(ctx context.Context, fileID string) (*types.UploadedFile, error)
	ListFiles(ctx context.Context) ([]types.UploadedFile, error)
	DeleteFile(ctx context.Context, fileID string) error
	CreateSession(ctx context.Context, fileID, sheetName string) (*types.Session, error)
	History(ctx context.Context, sessionID string) (*types.History, error)
	Ask(ctx context.Context, sessionID, question string) (*types.Message, error)
	ListSessions(ctx context.Context, fileID string) ([]types.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type DocumentAPI interface {
	UploadDocumentFile(ctx context.Context, path string) (*types.DocumentUpload, error)
	ListDocuments(ctx context.Context) ([]types.UploadedFile, error)
	DeleteDocument(ctx context.Context, fileID string) error
	CreateDocumentSession(ctx context.Context, fileID, sessionName string) (*types.Session, error)
	ListDocumentSessions(ctx context.Context) ([]types.Session, error)
	DocumentSession(ctx context.Context, sessionID string) (*types.Session, error)
	DocumentMessages(ctx context.Context, sessionID string) ([]types.Message, error)
	AskDocument(ctx context.Context, sessionID, question string) (*types.Message, error)
	DeleteDocumentSession(ctx context.Context, sessionID string) error
}

type ClientAPI interface {
	SheetAPI
	DocumentAPI
}

var _ ClientAPI = (*client.Client)(nil)
