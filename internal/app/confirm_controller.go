package app

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	xansi "github.com/charmbracelet/x/ansi"
)

type deleteTarget int

const (
	deleteSession deleteTarget = iota + 1
	deleteFile
)

// deleteRequest names what a confirmed dialog removes.
type deleteRequest struct {
	Target deleteTarget
	Kind   SourceKind
	ID     string
	Label  string
}

func sessionDeleteRequest(kind SourceKind, id, label string) deleteRequest {
	return deleteRequest{Target: deleteSession, Kind: kind, ID: id, Label: label}
}

func fileDeleteRequest(kind SourceKind, id, label string) deleteRequest {
	return deleteRequest{Target: deleteFile, Kind: kind, ID: id, Label: label}
}

func (r deleteRequest) title() string {
	if r.Target == deleteFile {
		if r.Kind == SourceDocument {
			return "Delete Document"
		}
		return "Delete Spreadsheet"
	}
	return "Delete Session"
}

func (r deleteRequest) message() string {
	label := strings.TrimSpace(r.Label)
	if label == "" {
		label = r.ID
	}
	if r.Target == deleteFile {
		return fmt.Sprintf("Delete %q and all of its sessions?", label)
	}
	return fmt.Sprintf("Delete session %q? Its messages cannot be recovered.", label)
}

type confirmButton int

const (
	buttonCancel confirmButton = iota
	buttonDelete
)

const (
	confirmMinWidth = 28
	confirmMaxWidth = 60
)

// ConfirmController gates deletes. Focus starts on Cancel, so a stray enter
// never deletes anything; declining closes the dialog and nothing else.
type ConfirmController struct {
	request deleteRequest
	open    bool
	focus   confirmButton
}

func NewConfirmController() *ConfirmController {
	return &ConfirmController{}
}

func (c *ConfirmController) IsOpen() bool {
	return c != nil && c.open
}

func (c *ConfirmController) Open(request deleteRequest) {
	if c == nil || strings.TrimSpace(request.ID) == "" {
		return
	}
	c.request = request
	c.open = true
	c.focus = buttonCancel
}

func (c *ConfirmController) Pending() (deleteRequest, bool) {
	if !c.IsOpen() {
		return deleteRequest{}, false
	}
	return c.request, true
}

func (c *ConfirmController) Close() {
	if c == nil {
		return
	}
	*c = ConfirmController{}
}

// HandleKey consumes every key while open. It reports the request once the
// user confirms it; the dialog is closed by then.
func (c *ConfirmController) HandleKey(key string) (deleteRequest, bool) {
	if !c.IsOpen() {
		return deleteRequest{}, false
	}
	switch key {
	case "esc", "n":
		c.Close()
	case "y":
		return c.confirm()
	case "left", "right", "tab", "shift+tab":
		c.focus = 1 - c.focus
	case "enter":
		if c.focus == buttonDelete {
			return c.confirm()
		}
		c.Close()
	}
	return deleteRequest{}, false
}

func (c *ConfirmController) confirm() (deleteRequest, bool) {
	request := c.request
	c.Close()
	return request, true
}

// View renders the dialog centered in maxWidth and returns the screen row it
// should be drawn at.
func (c *ConfirmController) View(maxWidth, maxHeight int) (string, int) {
	if !c.IsOpen() {
		return "", 0
	}
	inner := max(1, c.width(maxWidth)-4)
	lines := []string{
		contextMenuHeaderStyle.Render(truncateToWidth(c.request.title(), inner)),
		"",
	}
	for _, line := range strings.Split(xansi.Hardwrap(c.request.message(), inner, true), "\n") {
		lines = append(lines, truncateToWidth(line, inner))
	}
	lines = append(lines, "", c.renderButtons(inner))

	block := confirmDialogBorderStyle.Padding(0, 1).Render(strings.Join(lines, "\n"))
	x := 0
	if maxWidth > 0 {
		x = max(0, (maxWidth-lipgloss.Width(block))/2)
	}
	row := 1
	if maxHeight > 0 {
		row = max(1, (maxHeight-lipgloss.Height(block))/2)
	}
	return indentBlock(block, x), row
}

func (c *ConfirmController) renderButtons(width int) string {
	cancel, remove := menuDropStyle, menuDropStyle
	if c.focus == buttonDelete {
		remove = selectedStyle
	} else {
		cancel = selectedStyle
	}
	half := width / 2
	left := padToWidth(truncateToWidth("[Cancel]", half), half)
	right := truncateToWidth("[Delete]", width-half)
	return cancel.Render(left) + remove.Render(right)
}

func (c *ConfirmController) width(maxWidth int) int {
	want := max(xansi.StringWidth(c.request.title()), xansi.StringWidth(c.request.message())) + 4
	width := clamp(want, confirmMinWidth, confirmMaxWidth)
	if maxWidth > 0 && width > maxWidth {
		width = maxWidth
	}
	return width
}
