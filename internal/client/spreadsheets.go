package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"sheetchat/internal/types"
)

var spreadsheetExtensions = []string{".xlsx", ".xls"}

func ValidateSpreadsheetName(name string) error {
	return validateExtension(name, spreadsheetExtensions, "Only .xlsx or .xls files are supported")
}

func (c *Client) UploadSpreadsheet(ctx context.Context, filename string, content io.Reader) (*types.UploadedFile, error) {
	if err := ValidateSpreadsheetName(filename); err != nil {
		return nil, err
	}
	var resp types.UploadedFile
	if err := c.doMultipart(ctx, "/upload", filepath.Base(filename), content, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UploadSpreadsheetFile(ctx context.Context, path string) (*types.UploadedFile, error) {
	if err := ValidateSpreadsheetName(path); err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return c.UploadSpreadsheet(ctx, filepath.Base(path), file)
}

func (c *Client) FileInfo(ctx context.Context, fileID string) (*types.UploadedFile, error) {
	if err := required("file id", fileID); err != nil {
		return nil, err
	}
	var resp types.UploadedFile
	if err := c.doJSON(ctx, http.MethodGet, "/files/"+escape(fileID)+"/info", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListFiles(ctx context.Context) ([]types.UploadedFile, error) {
	var resp []types.UploadedFile
	if err := c.doJSON(ctx, http.MethodGet, "/files", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// DeleteFile also removes every session of the file; the backend cascades.
func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	if err := required("file id", fileID); err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodDelete, "/files/"+escape(fileID), nil, nil)
}

func (c *Client) CreateSession(ctx context.Context, fileID, sheetName string) (*types.Session, error) {
	if err := required("file id", fileID); err != nil {
		return nil, err
	}
	if err := required("sheet name", sheetName); err != nil {
		return nil, err
	}
	req := CreateSessionRequest{FileID: strings.TrimSpace(fileID), SheetName: sheetName}
	var resp types.Session
	if err := c.doJSON(ctx, http.MethodPost, "/session", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) History(ctx context.Context, sessionID string) (*types.History, error) {
	if err := required("session id", sessionID); err != nil {
		return nil, err
	}
	var resp types.History
	if err := c.doJSON(ctx, http.MethodGet, "/session/"+escape(sessionID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Ask(ctx context.Context, sessionID, question string) (*types.Message, error) {
	if err := required("session id", sessionID); err != nil {
		return nil, err
	}
	if err := required("question", question); err != nil {
		return nil, err
	}
	var resp types.Message
	path := fmt.Sprintf("/session/%s/ask", escape(sessionID))
	if err := c.doJSON(ctx, http.MethodPost, path, AskRequest{Question: question}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListSessions lists every spreadsheet session, or only those of fileID when
// it is non-empty.
func (c *Client) ListSessions(ctx context.Context, fileID string) ([]types.Session, error) {
	path := "/sessions"
	if id := strings.TrimSpace(fileID); id != "" {
		path += "?" + url.Values{"fileId": []string{id}}.Encode()
	}
	var resp []types.Session
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	if err := required("session id", sessionID); err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodDelete, "/session/"+escape(sessionID), nil, nil)
}

// Analyze asks a one-off question about a sheet without creating a session.
func (c *Client) Analyze(ctx context.Context, fileID, sheetName, question string) (string, error) {
	if err := required("file id", fileID); err != nil {
		return "", err
	}
	if err := required("sheet name", sheetName); err != nil {
		return "", err
	}
	if err := required("question", question); err != nil {
		return "", err
	}
	req := AnalyzeRequest{FileID: strings.TrimSpace(fileID), SheetName: sheetName, Question: question}
	var resp AnalyzeResponse
	if err := c.doJSON(ctx, http.MethodPost, "/analyze", req, &resp); err != nil {
		return "", err
	}
	return resp.Output, nil
}

func validateExtension(name string, allowed []string, message string) error {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(name)))
	for _, candidate := range allowed {
		if ext == candidate {
			return nil
		}
	}
	return &ValidationError{Field: "file", Message: message}
}
