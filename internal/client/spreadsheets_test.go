package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetchat/internal/types"
)

func TestUploadSpreadsheetSendsMultipart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/upload" {
			http.NotFound(w, r)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		body, _ := io.ReadAll(file)
		if header.Filename != "report.xlsx" || string(body) != "xlsx-bytes" {
			http.Error(w, "bad upload", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"fileId":"f1","filename":"report.xlsx","sheetNames":["Sheet1","Sheet2"]}`)
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("xlsx-bytes"), 0o600))

	c := NewWithBaseURL(server.URL + "/api/")
	file, err := c.UploadSpreadsheetFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "f1", file.FileID)
	assert.Equal(t, []string{"Sheet1", "Sheet2"}, file.SheetNames)
	assert.Equal(t, "Sheet1", file.DefaultSheet())
}

func TestSessionLifecycleRoutes(t *testing.T) {
	var seen []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.RequestURI())
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/session":
			var req CreateSessionRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			_ = json.NewEncoder(w).Encode(types.Session{ID: "s1", FileID: req.FileID, SheetName: req.SheetName, CreatedAt: "2024-01-01T00:00:00+00:00"})
		case r.Method == http.MethodGet && r.URL.Path == "/session/s1":
			_, _ = io.WriteString(w, `{"sessionId":"s1","fileId":"f1","sheetName":"Sheet1","messages":[]}`)
		case r.Method == http.MethodPost && r.URL.Path == "/session/s1/ask":
			var req AskRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			_ = json.NewEncoder(w).Encode(types.Message{Role: types.RoleAssistant, Content: "answer to " + req.Question, Timestamp: "t"})
		case r.Method == http.MethodGet && r.URL.Path == "/sessions":
			_, _ = io.WriteString(w, `[{"sessionId":"s1","fileId":"f1","sheetName":"Sheet1","createdAt":"c","messagesCount":2,"lastMessageAt":"l"}]`)
		case r.Method == http.MethodDelete && r.URL.Path == "/session/s1":
			_, _ = io.WriteString(w, `{"message":"Session deleted successfully"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := NewWithBaseURL(server.URL)
	ctx := context.Background()

	session, err := c.CreateSession(ctx, "f1", "Sheet1")
	require.NoError(t, err)
	assert.Equal(t, "s1", session.ID)
	assert.Equal(t, "Sheet1", session.SheetName)

	history, err := c.History(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "f1", history.FileID)
	assert.Empty(t, history.Messages)

	reply, err := c.Ask(ctx, "s1", "total?")
	require.NoError(t, err)
	assert.Equal(t, types.RoleAssistant, reply.Role)
	assert.Equal(t, "answer to total?", reply.Content)

	sessions, err := c.ListSessions(ctx, "f1")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, 2, sessions[0].MessagesCount)

	require.NoError(t, c.DeleteSession(ctx, "s1"))

	assert.Equal(t, []string{
		"POST /session",
		"GET /session/s1",
		"POST /session/s1/ask",
		"GET /sessions?fileId=f1",
		"DELETE /session/s1",
	}, seen)
}

func TestListSessionsWithoutFileOmitsQuery(t *testing.T) {
	var seenPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenPath = r.URL.RequestURI()
		_, _ = io.WriteString(w, `[]`)
	}))
	defer server.Close()

	_, err := NewWithBaseURL(server.URL).ListSessions(context.Background(), "  ")
	require.NoError(t, err)
	assert.Equal(t, "/sessions", seenPath)
}

func TestDeleteFileAcceptsNoContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/files/f1" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	require.NoError(t, NewWithBaseURL(server.URL).DeleteFile(context.Background(), "f1"))
}

func TestAnalyzePostsQuestion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req AnalyzeRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if r.URL.Path != "/analyze" || req.SheetName != "Sheet2" || !strings.Contains(req.Question, "revenue") {
			http.Error(w, "bad analyze", http.StatusBadRequest)
			return
		}
		_, _ = io.WriteString(w, `{"output":"42"}`)
	}))
	defer server.Close()

	out, err := NewWithBaseURL(server.URL).Analyze(context.Background(), "f1", "Sheet2", "total revenue")
	require.NoError(t, err)
	assert.Equal(t, "42", out)
}
