package app

import (
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"sheetchat/internal/config"
	"sheetchat/internal/logging"
	"sheetchat/internal/types"
)

const (
	minListWidth     = 24
	maxListWidth     = 40
	minViewportWidth = 20
	minContentHeight = 6
)

type viewMode int

const (
	viewSheets viewMode = iota
	viewDocuments
	viewFiles
)

func (v viewMode) title() string {
	switch v {
	case viewDocuments:
		return "Documents"
	case viewFiles:
		return "Files"
	default:
		return "Sheets"
	}
}

type uiMode int

const (
	uiModeNormal uiMode = iota
	uiModeUploadPath
)

type Model struct {
	keys      *types.Keymap
	logger    logging.Logger
	sheets    *ChatController
	documents *ChatController
	sheetLib  *FileListController
	docLib    *FileListController
	filesKind SourceKind
	view      viewMode
	mode      uiMode
	input     *LineInput
	pathInput *LineInput
	viewport  viewport.Model
	loader    spinner.Model
	confirm   *ConfirmController
	markdown  *MarkdownRenderer
	status    string
	width     int
	height    int
}

func NewModel(cfg config.Config, api ClientAPI, logger logging.Logger) *Model {
	if logger == nil {
		logger = logging.Nop()
	}
	sheetBackend := NewSheetBackend(api)
	docBackend := NewDocumentBackend(api)
	loader := spinner.New()
	loader.Spinner = spinner.Line
	m := &Model{
		keys:      cfg.Keymap(),
		logger:    logger,
		sheets:    NewChatController(sheetBackend, logger),
		documents: NewChatController(docBackend, logger),
		sheetLib:  NewFileListController(sheetBackend, logger),
		docLib:    NewFileListController(docBackend, logger),
		input:     NewLineInput("> ", "", minViewportWidth),
		pathInput: NewLineInput("", "path to file", minViewportWidth),
		viewport:  viewport.New(viewport.WithWidth(minViewportWidth), viewport.WithHeight(minContentHeight)),
		loader:    loader,
		confirm:   NewConfirmController(),
		markdown:  NewMarkdownRenderer(cfg.MarkdownStyle()),
	}
	m.input.Focus()
	switch cfg.DefaultView() {
	case config.ViewDocuments:
		m.view = viewDocuments
	case config.ViewFiles:
		m.view = viewFiles
	}
	m.syncPlaceholder()
	return m
}

func Run(cfg config.Config, api ClientAPI, logger logging.Logger) error {
	p := tea.NewProgram(NewModel(cfg, api, logger))
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.sheets.RefreshSessions(),
		m.documents.RefreshSessions(),
		m.sheetLib.Refresh(),
		m.docLib.Refresh(),
		m.loader.Tick,
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case spinner.TickMsg:
		m.loader, cmd = m.loader.Update(msg)
	case tea.KeyPressMsg:
		cmd = m.handleKey(msg)
	default:
		cmd = m.handleResult(msg)
	}
	m.refreshViewport()
	return m, cmd
}

func (m *Model) handleResult(msg tea.Msg) tea.Cmd {
	for _, files := range []*FileListController{m.sheetLib, m.docLib} {
		handled, event, cmd := files.Update(msg)
		if !handled {
			continue
		}
		return tea.Batch(cmd, m.applyFileEvent(files.Kind(), event))
	}
	for _, chat := range []*ChatController{m.sheets, m.documents} {
		if handled, cmd := chat.Update(msg); handled {
			return cmd
		}
	}
	return nil
}

func (m *Model) applyFileEvent(kind SourceKind, event FileEvent) tea.Cmd {
	chat := m.chatFor(kind)
	switch {
	case event.Selected != nil:
		chat.SelectFile(*event.Selected)
		m.view = viewFor(kind)
		m.status = "selected " + event.Selected.Filename
		m.syncPlaceholder()
		return chat.RefreshSessions()
	case event.Deleted != "":
		if chat.FileID() == event.Deleted {
			chat.Reset()
		}
		return chat.RefreshSessions()
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	if m.confirm.IsOpen() {
		if request, ok := m.confirm.HandleKey(key); ok {
			return m.applyDelete(request)
		}
		return nil
	}
	if m.keys.Matches(key, types.KeyActionQuit) {
		return tea.Quit
	}
	if m.mode == uiModeUploadPath {
		return m.handleUploadKey(msg)
	}
	if m.keys.Matches(key, types.KeyActionCycleView) {
		m.view = (m.view + 1) % 3
		m.status = ""
		m.syncPlaceholder()
		return nil
	}
	if m.view == viewFiles {
		return m.handleFilesKey(key)
	}
	return m.handleChatKey(msg)
}

func (m *Model) handleUploadKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.pathInput.Clear()
		m.closeUploadPrompt()
		return nil
	case "enter":
		path := m.pathInput.Take()
		m.closeUploadPrompt()
		return m.activeLibrary().Upload(path)
	}
	return m.pathInput.Update(msg)
}

func (m *Model) closeUploadPrompt() {
	m.mode = uiModeNormal
	m.pathInput.Blur()
	m.input.Focus()
}

func (m *Model) handleFilesKey(key string) tea.Cmd {
	lib := m.activeLibrary()
	switch {
	case m.keys.Matches(key, types.KeyActionMoveUp):
		lib.Move(-1)
	case m.keys.Matches(key, types.KeyActionMoveDown):
		lib.Move(1)
	case m.keys.Matches(key, types.KeyActionSwitchFiles):
		if m.filesKind == SourceSheet {
			m.filesKind = SourceDocument
		} else {
			m.filesKind = SourceSheet
		}
	case m.keys.Matches(key, types.KeyActionSelectFile):
		return lib.Describe()
	case m.keys.Matches(key, types.KeyActionRefresh):
		return lib.Refresh()
	case m.keys.Matches(key, types.KeyActionUploadFile):
		m.mode = uiModeUploadPath
		m.input.Blur()
		m.pathInput.Focus()
	case m.keys.Matches(key, types.KeyActionDeleteFile):
		file, ok := lib.Selected()
		if !ok {
			return nil
		}
		m.confirm.Open(fileDeleteRequest(lib.Kind(), file.FileID, file.Filename))
	}
	return nil
}

func (m *Model) handleChatKey(msg tea.KeyPressMsg) tea.Cmd {
	chat := m.activeChat()
	key := msg.String()
	switch {
	case m.keys.Matches(key, types.KeyActionSubmit):
		if chat.SessionID() == "" {
			return m.startSession(chat)
		}
		chat.SetQuestion(m.input.Value())
		cmd := chat.Submit()
		if cmd != nil {
			m.input.Clear()
		}
		return cmd
	case m.keys.Matches(key, types.KeyActionStartSession):
		return m.startSession(chat)
	case m.keys.Matches(key, types.KeyActionNewSession):
		chat.NewSession()
		m.input.Clear()
		m.syncPlaceholder()
	case m.keys.Matches(key, types.KeyActionReset):
		chat.Reset()
		m.input.Clear()
		m.syncPlaceholder()
		return chat.RefreshSessions()
	case m.keys.Matches(key, types.KeyActionPrevSheet):
		chat.CycleSource(-1)
	case m.keys.Matches(key, types.KeyActionNextSheet):
		chat.CycleSource(1)
	case m.keys.Matches(key, types.KeyActionMoveUp):
		chat.Sessions().Move(-1)
	case m.keys.Matches(key, types.KeyActionMoveDown):
		chat.Sessions().Move(1)
	case m.keys.Matches(key, types.KeyActionLoadSession):
		if session, ok := chat.Sessions().Selected(); ok {
			return chat.LoadSession(session.ID)
		}
	case m.keys.Matches(key, types.KeyActionDeleteSession):
		session, ok := chat.Sessions().Selected()
		if !ok {
			return nil
		}
		m.confirm.Open(sessionDeleteRequest(chat.Kind(), session.ID, session.Source()))
	case m.keys.Matches(key, types.KeyActionCopyReply):
		m.copyLastReply(chat)
	case key == "pgup" || key == "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	default:
		return m.input.Update(msg)
	}
	return nil
}

// startSession starts a session for the selected source. Document sessions
// take their name from the input line.
func (m *Model) startSession(chat *ChatController) tea.Cmd {
	if chat.Loading() {
		return nil
	}
	if chat.Kind() == SourceDocument {
		name := strings.TrimSpace(m.input.Value())
		if name == "" || chat.FileID() == "" {
			return nil
		}
		chat.SelectSource(chat.FileID(), name)
	}
	cmd := chat.StartSession()
	if cmd != nil {
		m.input.Clear()
		m.syncPlaceholder()
	}
	return cmd
}

func (m *Model) copyLastReply(chat *ChatController) {
	reply, ok := chat.LastReply()
	if !ok {
		m.status = "nothing to copy"
		return
	}
	method, err := copyTextToClipboard(reply.Content)
	if err != nil {
		m.status = "copy failed: " + err.Error()
		m.logger.Warn("copy failed", logging.F("error", err))
		return
	}
	if method == clipboardMethodOSC52 {
		m.status = "copied reply (osc52)"
		return
	}
	m.status = "copied reply"
}

func (m *Model) syncPlaceholder() {
	chat := m.activeChat()
	if chat == nil {
		return
	}
	switch {
	case chat.SessionID() != "":
		m.input.SetPlaceholder("Ask a question")
	case chat.Kind() == SourceDocument && chat.FileID() != "":
		m.input.SetPlaceholder("Name the session and press enter")
	case chat.FileID() != "":
		m.input.SetPlaceholder("Press enter to start a session")
	default:
		m.input.SetPlaceholder("Select a file in the Files view")
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	listWidth := m.listWidth()
	bodyWidth := max(minViewportWidth, width-listWidth-1)
	m.viewport.SetWidth(bodyWidth)
	m.viewport.SetHeight(max(minContentHeight, height-5))
	m.input.Resize(bodyWidth)
	m.pathInput.Resize(max(minViewportWidth, width-2))
}

func (m *Model) listWidth() int {
	if m.width <= 0 {
		return minListWidth
	}
	return clamp(m.width/3, minListWidth, maxListWidth)
}

func (m *Model) activeChat() *ChatController {
	switch m.view {
	case viewSheets:
		return m.sheets
	case viewDocuments:
		return m.documents
	}
	return m.chatFor(m.filesKind)
}

func (m *Model) activeLibrary() *FileListController {
	if m.view == viewFiles {
		return m.libraryFor(m.filesKind)
	}
	return m.libraryFor(m.activeChat().Kind())
}

// applyDelete runs a delete the user confirmed.
func (m *Model) applyDelete(request deleteRequest) tea.Cmd {
	switch request.Target {
	case deleteFile:
		return m.libraryFor(request.Kind).Delete(request.ID)
	case deleteSession:
		return m.chatFor(request.Kind).DeleteSession(request.ID)
	}
	return nil
}

func (m *Model) libraryFor(kind SourceKind) *FileListController {
	if kind == SourceDocument {
		return m.docLib
	}
	return m.sheetLib
}

func (m *Model) chatFor(kind SourceKind) *ChatController {
	if kind == SourceDocument {
		return m.documents
	}
	return m.sheets
}

func viewFor(kind SourceKind) viewMode {
	if kind == SourceDocument {
		return viewDocuments
	}
	return viewSheets
}
