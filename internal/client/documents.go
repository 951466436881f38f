package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"sheetchat/internal/types"
)

var documentExtensions = []string{".txt", ".docx", ".pdf"}

func ValidateDocumentName(name string) error {
	return validateExtension(name, documentExtensions, "Only .txt, .docx, and .pdf files are supported for RAG")
}

func (c *Client) UploadDocument(ctx context.Context, filename string, content io.Reader) (*types.DocumentUpload, error) {
	if err := ValidateDocumentName(filename); err != nil {
		return nil, err
	}
	var resp types.DocumentUpload
	if err := c.doMultipart(ctx, "/rag/upload", filepath.Base(filename), content, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UploadDocumentFile(ctx context.Context, path string) (*types.DocumentUpload, error) {
	if err := ValidateDocumentName(path); err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return c.UploadDocument(ctx, filepath.Base(path), file)
}

func (c *Client) ListDocuments(ctx context.Context) ([]types.UploadedFile, error) {
	var resp []types.UploadedFile
	if err := c.doJSON(ctx, http.MethodGet, "/rag/files", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) DeleteDocument(ctx context.Context, fileID string) error {
	if err := required("file id", fileID); err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodDelete, "/rag/file/"+escape(fileID), nil, nil)
}

func (c *Client) CreateDocumentSession(ctx context.Context, fileID, sessionName string) (*types.Session, error) {
	if err := required("file id", fileID); err != nil {
		return nil, err
	}
	if err := required("session name", sessionName); err != nil {
		return nil, err
	}
	req := CreateDocumentSessionRequest{
		FileID:      strings.TrimSpace(fileID),
		SessionName: strings.TrimSpace(sessionName),
	}
	var resp types.Session
	if err := c.doJSON(ctx, http.MethodPost, "/rag/session", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListDocumentSessions(ctx context.Context) ([]types.Session, error) {
	var resp []types.Session
	if err := c.doJSON(ctx, http.MethodGet, "/rag/sessions", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) DocumentSession(ctx context.Context, sessionID string) (*types.Session, error) {
	if err := required("session id", sessionID); err != nil {
		return nil, err
	}
	var resp types.Session
	if err := c.doJSON(ctx, http.MethodGet, "/rag/session/"+escape(sessionID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DocumentMessages(ctx context.Context, sessionID string) ([]types.Message, error) {
	if err := required("session id", sessionID); err != nil {
		return nil, err
	}
	var resp []types.Message
	path := fmt.Sprintf("/rag/session/%s/messages", escape(sessionID))
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) AskDocument(ctx context.Context, sessionID, question string) (*types.Message, error) {
	if err := required("session id", sessionID); err != nil {
		return nil, err
	}
	if err := required("question", question); err != nil {
		return nil, err
	}
	var resp types.Message
	path := fmt.Sprintf("/rag/session/%s/ask", escape(sessionID))
	if err := c.doJSON(ctx, http.MethodPost, path, AskRequest{Question: question}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteDocumentSession(ctx context.Context, sessionID string) error {
	if err := required("session id", sessionID); err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodDelete, "/rag/session/"+escape(sessionID), nil, nil)
}

// QueryDocument asks a one-off question against a document without a session.
func (c *Client) QueryDocument(ctx context.Context, fileID, question string) (string, error) {
	if err := required("file id", fileID); err != nil {
		return "", err
	}
	if err := required("question", question); err != nil {
		return "", err
	}
	req := QueryDocumentRequest{FileID: strings.TrimSpace(fileID), Question: question}
	var resp QueryDocumentResponse
	if err := c.doJSON(ctx, http.MethodPost, "/rag/query", req, &resp); err != nil {
		return "", err
	}
	return resp.Answer, nil
}
