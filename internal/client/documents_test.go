package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentRoutes(t *testing.T) {
	var seen []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/rag/upload":
			_, header, err := r.FormFile("file")
			if err != nil || header.Filename != "contract.pdf" {
				http.Error(w, "bad upload", http.StatusBadRequest)
				return
			}
			_, _ = io.WriteString(w, `{"fileId":"d1","filename":"contract.pdf","message":"processed"}`)
		case r.Method == http.MethodGet && r.URL.Path == "/rag/files":
			_, _ = io.WriteString(w, `[{"fileId":"d1","filename":"contract.pdf","fileType":"pdf","size":2048,"uploadedAt":"u"}]`)
		case r.Method == http.MethodPost && r.URL.Path == "/rag/session":
			var req CreateDocumentSessionRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			_, _ = io.WriteString(w, `{"sessionId":"r1","sessionName":"`+req.SessionName+`","fileId":"d1","filename":"contract.pdf","createdAt":"c"}`)
		case r.Method == http.MethodGet && r.URL.Path == "/rag/sessions":
			_, _ = io.WriteString(w, `[{"sessionId":"r1","sessionName":"Terms","fileId":"d1","filename":"contract.pdf","createdAt":"c"}]`)
		case r.Method == http.MethodGet && r.URL.Path == "/rag/session/r1":
			_, _ = io.WriteString(w, `{"sessionId":"r1","sessionName":"Terms","fileId":"d1","filename":"contract.pdf","createdAt":"c"}`)
		case r.Method == http.MethodGet && r.URL.Path == "/rag/session/r1/messages":
			_, _ = io.WriteString(w, `[{"role":"user","content":"q","timestamp":"t1"},{"role":"assistant","content":"a","timestamp":"t2"}]`)
		case r.Method == http.MethodPost && r.URL.Path == "/rag/session/r1/ask":
			_, _ = io.WriteString(w, `{"role":"assistant","content":"clause 4","timestamp":"t3"}`)
		case r.Method == http.MethodPost && r.URL.Path == "/rag/query":
			_, _ = io.WriteString(w, `{"answer":"one-shot"}`)
		case r.Method == http.MethodDelete && (r.URL.Path == "/rag/session/r1" || r.URL.Path == "/rag/file/d1"):
			_, _ = io.WriteString(w, `{"message":"deleted"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := NewWithBaseURL(server.URL)
	ctx := context.Background()

	upload, err := c.UploadDocument(ctx, "contract.pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, "d1", upload.FileID)

	docs, err := c.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "pdf", docs[0].FileType)
	assert.EqualValues(t, 2048, docs[0].Size)

	session, err := c.CreateDocumentSession(ctx, "d1", " Terms ")
	require.NoError(t, err)
	assert.Equal(t, "Terms", session.SessionName)
	assert.Equal(t, "Terms", session.Source())

	sessions, err := c.ListDocumentSessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	detail, err := c.DocumentSession(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "contract.pdf", detail.Filename)

	messages, err := c.DocumentMessages(ctx, "r1")
	require.NoError(t, err)
	assert.Len(t, messages, 2)

	reply, err := c.AskDocument(ctx, "r1", "which clause?")
	require.NoError(t, err)
	assert.Equal(t, "clause 4", reply.Content)

	answer, err := c.QueryDocument(ctx, "d1", "summary?")
	require.NoError(t, err)
	assert.Equal(t, "one-shot", answer)

	require.NoError(t, c.DeleteDocumentSession(ctx, "r1"))
	require.NoError(t, c.DeleteDocument(ctx, "d1"))
	assert.Len(t, seen, 10)
}

func TestValidateDocumentName(t *testing.T) {
	for _, name := range []string{"a.txt", "B.DOCX", "dir/c.pdf"} {
		assert.NoError(t, ValidateDocumentName(name), name)
	}
	for _, name := range []string{"a.md", "b", "c.pdf.zip"} {
		assert.Error(t, ValidateDocumentName(name), name)
	}
}
