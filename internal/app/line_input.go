package app

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	xansi "github.com/charmbracelet/x/ansi"
)

// LineInput is a single-line prompt: the question line in the chat views and
// the path prompt when uploading.
type LineInput struct {
	model textinput.Model
}

func NewLineInput(prompt, placeholder string, width int) *LineInput {
	model := textinput.New()
	model.Prompt = prompt
	model.Placeholder = placeholder
	model.CharLimit = 0
	line := &LineInput{model: model}
	line.Resize(width)
	return line
}

func (l *LineInput) Resize(width int) {
	l.model.SetWidth(max(1, width-xansi.StringWidth(l.model.Prompt)))
}

func (l *LineInput) Focus() {
	l.model.Focus()
}

func (l *LineInput) Blur() {
	l.model.Blur()
}

func (l *LineInput) SetPlaceholder(value string) {
	l.model.Placeholder = value
}

func (l *LineInput) SetValue(value string) {
	l.model.SetValue(value)
}

func (l *LineInput) Value() string {
	return l.model.Value()
}

// Take returns the trimmed text and empties the line.
func (l *LineInput) Take() string {
	value := strings.TrimSpace(l.model.Value())
	l.model.Reset()
	return value
}

func (l *LineInput) Clear() {
	l.model.Reset()
}

func (l *LineInput) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.model, cmd = l.model.Update(msg)
	return cmd
}

func (l *LineInput) View() string {
	return l.model.View()
}
