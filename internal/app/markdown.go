package app

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	glamouransi "github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	xansi "github.com/charmbracelet/x/ansi"

	"sheetchat/internal/config"
)

// MarkdownRenderer renders assistant replies. Renderers are built per wrap
// width and reused.
type MarkdownRenderer struct {
	mu        sync.Mutex
	style     string
	renderers map[int]*glamour.TermRenderer
}

func NewMarkdownRenderer(style string) *MarkdownRenderer {
	return &MarkdownRenderer{
		style:     style,
		renderers: map[int]*glamour.TermRenderer{},
	}
}

func (r *MarkdownRenderer) Render(input string, width int) string {
	input = strings.TrimRight(input, "\n")
	if input == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	renderer := r.renderer(width)
	if renderer == nil {
		return xansi.Hardwrap(input, width, true)
	}
	out, err := renderer.Render(input)
	if err != nil {
		return xansi.Hardwrap(input, width, true)
	}
	out = strings.TrimRight(out, "\n")
	out = xansi.Hardwrap(out, width, true)
	return strings.TrimRight(out, "\n")
}

func (r *MarkdownRenderer) renderer(width int) *glamour.TermRenderer {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if renderer, ok := r.renderers[width]; ok {
		return renderer
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(buildStyleConfig(r.style)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	r.renderers[width] = renderer
	return renderer
}

func buildStyleConfig(style string) glamouransi.StyleConfig {
	var base glamouransi.StyleConfig
	switch style {
	case config.MarkdownLight:
		base = styles.LightStyleConfig
	case config.MarkdownASCII:
		base = styles.ASCIIStyleConfig
	default:
		base = styles.DarkStyleConfig
	}
	// Bubble padding comes from lipgloss, not the document margins.
	base.Document.StylePrimitive.BlockPrefix = ""
	base.Document.StylePrimitive.BlockSuffix = ""
	zero := uint(0)
	base.Document.Margin = &zero
	return base
}
