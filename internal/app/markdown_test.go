package app

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"

	"sheetchat/internal/config"
)

func TestMarkdownRendererWrapsToWidth(t *testing.T) {
	renderer := NewMarkdownRenderer(config.MarkdownDark)
	out := renderer.Render("Total revenue is **42,000** across "+strings.Repeat("many ", 20)+"rows.", 30)
	if out == "" {
		t.Fatalf("expected rendered output")
	}
	for _, line := range strings.Split(out, "\n") {
		if w := xansi.StringWidth(line); w > 30 {
			t.Fatalf("line exceeds width: %d %q", w, xansi.Strip(line))
		}
	}
	if !strings.Contains(xansi.Strip(out), "42,000") {
		t.Fatalf("expected content to survive rendering: %q", xansi.Strip(out))
	}
}

func TestMarkdownRendererReusesRendererPerWidth(t *testing.T) {
	renderer := NewMarkdownRenderer(config.MarkdownASCII)
	renderer.Render("one", 40)
	renderer.Render("two", 40)
	renderer.Render("three", 50)
	if len(renderer.renderers) != 2 {
		t.Fatalf("expected one renderer per width, got %d", len(renderer.renderers))
	}
	if renderer.Render("\n\n", 40) != "" {
		t.Fatalf("expected blank input to render empty")
	}
}
