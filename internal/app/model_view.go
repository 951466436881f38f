package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"sheetchat/internal/types"
)

func (m *Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m *Model) render() string {
	header := m.renderTabs()
	var body string
	if m.view == viewFiles {
		body = m.renderFiles()
	} else {
		body = m.renderChat()
	}
	lines := []string{header, body}
	if banner := m.renderBanner(); banner != "" {
		lines = append(lines, banner)
	}
	if m.mode == uiModeUploadPath {
		lines = append(lines, "Upload "+m.activeLibrary().Kind().String()+": "+m.pathInput.View())
	} else if m.view != viewFiles {
		lines = append(lines, m.input.View())
	}
	lines = append(lines, helpStyle.Render(m.helpLine()))
	screen := strings.Join(lines, "\n")
	if m.confirm.IsOpen() {
		dialog, row := m.confirm.View(m.width, m.height)
		screen = overlayBlock(screen, dialog, row)
	}
	return screen
}

func (m *Model) renderTabs() string {
	tabs := make([]string, 0, 3)
	for _, view := range []viewMode{viewSheets, viewDocuments, viewFiles} {
		style := tabStyle
		if view == m.view {
			style = tabActiveStyle
		}
		tabs = append(tabs, style.Render(view.title()))
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if m.activeChat().Loading() || m.activeLibrary().Busy() {
		line += " " + activityStyle.Render(m.loader.View())
	}
	if label := m.contextLabel(); label != "" {
		line += "  " + headerStyle.Render(label)
	}
	return line
}

func (m *Model) contextLabel() string {
	if m.view == viewFiles {
		return "Stored " + m.filesKind.String()
	}
	chat := m.activeChat()
	if chat.FileID() == "" {
		return ""
	}
	name := chat.FileName()
	if name == "" {
		name = chat.FileID()
	}
	if source := chat.Source(); source != "" {
		name += " / " + source
	}
	if len(chat.Sources()) > 1 {
		name += fmt.Sprintf(" (%d sheets)", len(chat.Sources()))
	}
	return name
}

func (m *Model) renderChat() string {
	sidebar := m.renderSidebar(m.listWidth(), m.viewport.Height())
	divider := dividerStyle.Render(strings.TrimRight(strings.Repeat("│\n", max(1, m.viewport.Height())), "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, divider, m.viewport.View())
}

func (m *Model) renderSidebar(width, height int) string {
	chat := m.activeChat()
	list := chat.Sessions()
	lines := []string{headerStyle.Render(truncateToWidth("Sessions", width))}
	sessions := list.Sessions()
	if len(sessions) == 0 {
		lines = append(lines, statusStyle.Render(truncateToWidth("no sessions", width)))
	}
	for i, session := range sessions {
		label := truncateToWidth(sessionLabel(session), width)
		switch {
		case i == list.SelectedIndex():
			label = selectedStyle.Render(padToWidth(label, width))
		case session.ID == chat.SessionID():
			label = activeSessionStyle.Render(label)
		default:
			label = sessionStyle.Render(label)
		}
		lines = append(lines, label)
	}
	if len(lines) > height && height > 0 {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return padLines(lines, width)
}

func sessionLabel(session types.Session) string {
	name := session.Source()
	if name == "" {
		name = session.ID
	}
	if session.MessagesCount > 0 {
		name += fmt.Sprintf(" · %d msgs", session.MessagesCount)
	}
	if session.Filename != "" {
		name += " · " + session.Filename
	}
	return name
}

func (m *Model) renderFiles() string {
	lib := m.activeLibrary()
	width := max(minViewportWidth, m.width)
	lines := []string{headerStyle.Render(padToWidth("File", width/2) + padToWidth("Size", 12) + "Uploaded")}
	files := lib.Files()
	if len(files) == 0 {
		status := "no files uploaded"
		if lib.Loading() {
			status = "loading files"
		}
		lines = append(lines, statusStyle.Render(status))
	}
	for i, file := range files {
		row := padToWidth(truncateToWidth(file.Filename, width/2-1), width/2) +
			padToWidth(FormatFileSize(file.Size), 12) +
			FormatFileTime(file.UploadedAt)
		if i == lib.SelectedIndex() {
			row = selectedStyle.Render(padToWidth(row, width))
		}
		lines = append(lines, row)
	}
	height := m.viewport.Height()
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBanner() string {
	if m.view == viewFiles {
		lib := m.activeLibrary()
		if err := lib.Err(); err != "" {
			return errorBannerStyle.Render(" " + err + " ")
		}
		if status := lib.Status(); status != "" {
			return infoBannerStyle.Render(" " + status + " ")
		}
		return ""
	}
	chat := m.activeChat()
	if err := chat.Err(); err != "" {
		return errorBannerStyle.Render(" " + err + " ")
	}
	if err := chat.Sessions().Err(); err != "" {
		return errorBannerStyle.Render(" " + err + " ")
	}
	if m.status != "" {
		return infoBannerStyle.Render(" " + m.status + " ")
	}
	return ""
}

func (m *Model) helpLine() string {
	k := m.keys
	if m.mode == uiModeUploadPath {
		return "enter upload · esc cancel"
	}
	if m.view == viewFiles {
		return fmt.Sprintf("%s select · %s upload · %s delete · %s refresh · %s sheets/documents · %s view · %s quit",
			k.Key(types.KeyActionSelectFile), k.Key(types.KeyActionUploadFile), k.Key(types.KeyActionDeleteFile),
			k.Key(types.KeyActionRefresh), k.Key(types.KeyActionSwitchFiles), k.Key(types.KeyActionCycleView),
			k.Key(types.KeyActionQuit))
	}
	return fmt.Sprintf("%s send · %s new · %s reset · %s/%s sheet · %s load · %s delete · %s copy · %s view · %s quit",
		k.Key(types.KeyActionSubmit), k.Key(types.KeyActionNewSession), k.Key(types.KeyActionReset),
		k.Key(types.KeyActionPrevSheet), k.Key(types.KeyActionNextSheet), k.Key(types.KeyActionLoadSession),
		k.Key(types.KeyActionDeleteSession), k.Key(types.KeyActionCopyReply), k.Key(types.KeyActionCycleView),
		k.Key(types.KeyActionQuit))
}

func (m *Model) refreshViewport() {
	if m.view == viewFiles {
		return
	}
	m.viewport.SetContent(m.renderTranscript(m.activeChat(), m.viewport.Width()))
	m.viewport.GotoBottom()
}

func (m *Model) renderTranscript(chat *ChatController, width int) string {
	entries := chat.Entries()
	if len(entries) == 0 {
		switch {
		case chat.SessionID() != "":
			return statusStyle.Render("No messages yet. Ask a question.")
		case chat.FileID() != "":
			return statusStyle.Render("No active session.")
		default:
			return statusStyle.Render("No file selected.")
		}
	}
	bubbleWidth := max(minViewportWidth, width-2)
	blocks := make([]string, 0, len(entries))
	for _, entry := range entries {
		blocks = append(blocks, m.renderEntry(entry, bubbleWidth))
	}
	return strings.Join(blocks, "\n")
}

func (m *Model) renderEntry(entry TranscriptEntry, width int) string {
	msg := entry.Message
	meta := "You"
	if msg.Role == types.RoleAssistant {
		meta = "Assistant"
	}
	if clock := formatClock(msg.Timestamp); clock != "" {
		meta += " · " + clock
	}
	if entry.Pending {
		meta += " · sending"
	}
	contentWidth := max(1, width-2-2*chatBubblePaddingHorizontal)
	var bubble string
	switch {
	case entry.Pending:
		bubble = pendingBubbleStyle.Width(width).Render(msg.Content)
	case msg.Role == types.RoleAssistant:
		bubble = agentBubbleStyle.Width(width).Render(m.markdown.Render(msg.Content, contentWidth))
	default:
		bubble = userBubbleStyle.Width(width).Render(msg.Content)
	}
	return chatMetaStyle.Render(meta) + "\n" + bubble
}

// overlayBlock replaces the lines of base starting at row with block.
func overlayBlock(base, block string, row int) string {
	baseLines := strings.Split(base, "\n")
	for i, line := range strings.Split(block, "\n") {
		idx := row + i
		if idx < 0 {
			continue
		}
		for idx >= len(baseLines) {
			baseLines = append(baseLines, "")
		}
		baseLines[idx] = line
	}
	return strings.Join(baseLines, "\n")
}
