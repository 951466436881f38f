package app

import (
	"context"
	"strings"
	"testing"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	xansi "github.com/charmbracelet/x/ansi"

	"sheetchat/internal/client"
	"sheetchat/internal/config"
	"sheetchat/internal/types"
)

type fakeClientAPI struct {
	files          []types.UploadedFile
	info           map[string]*types.UploadedFile
	uploads        []string
	deletedFiles   []string
	sessions       []types.Session
	history        map[string]*types.History
	deletedSession []string
	reply          string
}

func newFakeClientAPI() *fakeClientAPI {
	return &fakeClientAPI{
		info:    map[string]*types.UploadedFile{},
		history: map[string]*types.History{},
		reply:   "42,000",
	}
}

func (f *fakeClientAPI) UploadSpreadsheetFile(_ context.Context, path string) (*types.UploadedFile, error) {
	if err := client.ValidateSpreadsheetName(path); err != nil {
		return nil, err
	}
	f.uploads = append(f.uploads, path)
	file := types.UploadedFile{FileID: "f1", Filename: "report.xlsx", SheetNames: []string{"Sheet1", "Sheet2"}}
	f.files = append(f.files, file)
	f.info["f1"] = &file
	return &file, nil
}

func (f *fakeClientAPI) FileInfo(_ context.Context, fileID string) (*types.UploadedFile, error) {
	return f.info[fileID], nil
}

func (f *fakeClientAPI) ListFiles(context.Context) ([]types.UploadedFile, error) {
	return f.files, nil
}

func (f *fakeClientAPI) DeleteFile(_ context.Context, fileID string) error {
	f.deletedFiles = append(f.deletedFiles, fileID)
	kept := f.files[:0]
	for _, file := range f.files {
		if file.FileID != fileID {
			kept = append(kept, file)
		}
	}
	f.files = kept
	f.sessions = nil
	return nil
}

func (f *fakeClientAPI) CreateSession(_ context.Context, fileID, sheetName string) (*types.Session, error) {
	session := types.Session{ID: "s1", FileID: fileID, SheetName: sheetName, CreatedAt: "2024-03-01T09:00:00"}
	f.sessions = append(f.sessions, session)
	f.history["s1"] = &types.History{SessionID: "s1", FileID: fileID, SheetName: sheetName, Messages: []types.Message{}}
	return &session, nil
}

func (f *fakeClientAPI) History(_ context.Context, sessionID string) (*types.History, error) {
	return f.history[sessionID], nil
}

func (f *fakeClientAPI) Ask(context.Context, string, string) (*types.Message, error) {
	return &types.Message{Role: types.RoleAssistant, Content: f.reply, Timestamp: "2024-03-01T10:00:00"}, nil
}

func (f *fakeClientAPI) ListSessions(context.Context, string) ([]types.Session, error) {
	return f.sessions, nil
}

func (f *fakeClientAPI) DeleteSession(_ context.Context, sessionID string) error {
	f.deletedSession = append(f.deletedSession, sessionID)
	f.sessions = nil
	return nil
}

func (f *fakeClientAPI) UploadDocumentFile(context.Context, string) (*types.DocumentUpload, error) {
	return &types.DocumentUpload{FileID: "d1", Filename: "contract.pdf"}, nil
}

func (f *fakeClientAPI) ListDocuments(context.Context) ([]types.UploadedFile, error) {
	return nil, nil
}

func (f *fakeClientAPI) DeleteDocument(context.Context, string) error { return nil }

func (f *fakeClientAPI) CreateDocumentSession(_ context.Context, fileID, sessionName string) (*types.Session, error) {
	return &types.Session{ID: "r1", FileID: fileID, SessionName: sessionName}, nil
}

func (f *fakeClientAPI) ListDocumentSessions(context.Context) ([]types.Session, error) {
	return nil, nil
}

func (f *fakeClientAPI) DocumentSession(_ context.Context, sessionID string) (*types.Session, error) {
	return &types.Session{ID: sessionID, FileID: "d1", SessionName: "Contract Q&A"}, nil
}

func (f *fakeClientAPI) DocumentMessages(context.Context, string) ([]types.Message, error) {
	return []types.Message{}, nil
}

func (f *fakeClientAPI) AskDocument(context.Context, string, string) (*types.Message, error) {
	return &types.Message{Role: types.RoleAssistant, Content: "the tenant"}, nil
}

func (f *fakeClientAPI) DeleteDocumentSession(context.Context, string) error { return nil }

func newTestModel(api *fakeClientAPI) *Model {
	m := NewModel(config.DefaultConfig(), api, nil)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

// drive runs cmd through the model until no command is left. Spinner ticks
// and quit are not followed.
func drive(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 100 {
			t.Fatalf("command loop did not settle")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		switch msg := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
			continue
		case spinner.TickMsg, tea.QuitMsg:
			continue
		}
		_, follow := m.Update(msg)
		queue = append(queue, follow)
	}
}

func press(t *testing.T, m *Model, msg tea.KeyPressMsg) {
	t.Helper()
	_, cmd := m.Update(msg)
	drive(t, m, cmd)
}

var (
	keyEnter = tea.KeyPressMsg{Code: tea.KeyEnter}
	keyTab   = tea.KeyPressMsg{Code: tea.KeyTab}
)

func keyRune(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func keyCtrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func uploadReport(t *testing.T, m *Model) {
	t.Helper()
	m.view = viewFiles
	press(t, m, keyRune('u'))
	if m.mode != uiModeUploadPath {
		t.Fatalf("expected upload prompt")
	}
	m.pathInput.SetValue("report.xlsx")
	press(t, m, keyEnter)
}

func TestModelUploadSelectStartAndSend(t *testing.T) {
	api := newFakeClientAPI()
	m := newTestModel(api)

	uploadReport(t, m)
	if m.view != viewSheets {
		t.Fatalf("expected sheets view after upload, got %v", m.view)
	}
	if m.sheets.FileID() != "f1" || m.sheets.Source() != "Sheet1" {
		t.Fatalf("expected f1/Sheet1 selected, got %q/%q", m.sheets.FileID(), m.sheets.Source())
	}

	press(t, m, keyEnter)
	if m.sheets.SessionID() != "s1" || len(m.sheets.Messages()) != 0 {
		t.Fatalf("expected empty session s1, got %#v", m.sheets.State())
	}

	m.input.SetValue("What is total revenue?")
	press(t, m, keyEnter)
	messages := m.sheets.Messages()
	if len(messages) != 2 || messages[0].Content != "What is total revenue?" || messages[1].Content != "42,000" {
		t.Fatalf("unexpected transcript: %#v", messages)
	}
	if m.input.Value() != "" {
		t.Fatalf("expected input cleared after send")
	}
	view := xansi.Strip(m.render())
	if !strings.Contains(view, "42,000") || !strings.Contains(view, "report.xlsx / Sheet1") {
		t.Fatalf("expected transcript and context in view:\n%s", view)
	}
}

func TestModelDeleteSessionHonorsConfirmation(t *testing.T) {
	api := newFakeClientAPI()
	m := newTestModel(api)
	uploadReport(t, m)
	press(t, m, keyEnter)

	press(t, m, keyCtrl('d'))
	if !m.confirm.IsOpen() {
		t.Fatalf("expected confirm dialog")
	}
	if !strings.Contains(xansi.Strip(m.render()), "Delete Session") {
		t.Fatalf("expected dialog in view")
	}
	press(t, m, keyRune('n'))
	if len(api.deletedSession) != 0 || m.sheets.SessionID() != "s1" {
		t.Fatalf("expected decline to abort silently")
	}
	if m.sheets.Err() != "" {
		t.Fatalf("expected no error on decline, got %q", m.sheets.Err())
	}

	press(t, m, keyCtrl('d'))
	press(t, m, keyRune('y'))
	if len(api.deletedSession) != 1 || api.deletedSession[0] != "s1" {
		t.Fatalf("expected delete of s1, got %#v", api.deletedSession)
	}
	if m.sheets.SessionID() != "" || len(m.sheets.Messages()) != 0 {
		t.Fatalf("expected chat cleared after deleting the active session")
	}
	if len(m.sheets.Sessions().Sessions()) != 0 {
		t.Fatalf("expected list synced after delete")
	}
}

func TestModelDeleteFileResetsActiveChat(t *testing.T) {
	api := newFakeClientAPI()
	m := newTestModel(api)
	uploadReport(t, m)
	press(t, m, keyEnter)

	m.view = viewFiles
	press(t, m, keyRune('d'))
	if request, ok := m.confirm.Pending(); !ok || request.ID != "f1" || request.Kind != SourceSheet {
		t.Fatalf("expected pending delete of f1, got %#v", request)
	}
	press(t, m, keyTab)
	press(t, m, keyEnter)
	if len(api.deletedFiles) != 1 || api.deletedFiles[0] != "f1" {
		t.Fatalf("expected delete of f1, got %#v", api.deletedFiles)
	}
	if m.sheets.FileID() != "" || m.sheets.SessionID() != "" {
		t.Fatalf("expected chat reset after its file was deleted, got %#v", m.sheets.State())
	}
	if len(m.sheetLib.Files()) != 0 {
		t.Fatalf("expected file list refreshed")
	}
}

func TestModelTabCyclesViews(t *testing.T) {
	m := newTestModel(newFakeClientAPI())
	want := []viewMode{viewDocuments, viewFiles, viewSheets}
	for _, next := range want {
		press(t, m, keyTab)
		if m.view != next {
			t.Fatalf("expected %v, got %v", next, m.view)
		}
	}
	if !strings.Contains(xansi.Strip(m.render()), "Documents") {
		t.Fatalf("expected tab titles in header")
	}
}

func TestModelDocumentSessionTakesNameFromInput(t *testing.T) {
	api := newFakeClientAPI()
	m := newTestModel(api)
	m.documents.SelectFile(types.UploadedFile{FileID: "d1", Filename: "contract.pdf"})
	m.view = viewDocuments

	press(t, m, keyEnter)
	if m.documents.SessionID() != "" {
		t.Fatalf("expected no session without a name")
	}
	m.input.SetValue("Contract Q&A")
	press(t, m, keyEnter)
	if m.documents.SessionID() != "r1" || m.documents.Source() != "Contract Q&A" {
		t.Fatalf("unexpected document chat state: %#v", m.documents.State())
	}
	if m.documents.FileName() != "contract.pdf" {
		t.Fatalf("expected file name kept, got %q", m.documents.FileName())
	}
}

func TestModelDocumentStartIgnoredWhileStartInFlight(t *testing.T) {
	api := newFakeClientAPI()
	m := newTestModel(api)
	m.documents.SelectFile(types.UploadedFile{FileID: "d1", Filename: "contract.pdf"})
	m.view = viewDocuments

	m.input.SetValue("First")
	_, first := m.Update(keyEnter)
	if first == nil || !m.documents.Loading() {
		t.Fatalf("expected first start to be in flight")
	}
	m.input.SetValue("Second")
	if _, second := m.Update(keyEnter); second != nil {
		t.Fatalf("expected no second start while the first is in flight")
	}
	if !m.documents.Loading() || m.documents.Source() != "First" {
		t.Fatalf("expected first start to stay pending, got %#v", m.documents.State())
	}
	drive(t, m, first)
	if m.documents.SessionID() != "r1" || m.documents.Source() != "First" {
		t.Fatalf("expected first start to land, got %#v", m.documents.State())
	}
}

func TestModelUploadRejectsWrongExtension(t *testing.T) {
	api := newFakeClientAPI()
	m := newTestModel(api)
	m.view = viewFiles
	press(t, m, keyRune('u'))
	m.pathInput.SetValue("notes.txt")
	press(t, m, keyEnter)
	if len(api.uploads) != 0 {
		t.Fatalf("expected no upload")
	}
	if !strings.Contains(xansi.Strip(m.render()), "Only .xlsx or .xls files are supported") {
		t.Fatalf("expected validation banner")
	}
}
