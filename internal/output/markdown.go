package output

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders clipboard text as terminal markdown.
type MarkdownRenderer struct {
	glamourRenderer *glamour.TermRenderer
}

// NewMarkdownRenderer creates a renderer themed after the style provider.
// The returned renderer falls back to raw text when glamour is unavailable.
func NewMarkdownRenderer(styleProvider StyleProvider, width int) *MarkdownRenderer {
	themeStyle := "auto"
	if styleProvider != nil && styleProvider.IsAvailable() {
		themeStyle = styleProvider.GetThemeType()
	}
	if width <= 0 {
		width = 80
	}

	var renderer *glamour.TermRenderer
	var err error

	if themeStyle != "" && themeStyle != "auto" {
		renderer, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(themeStyle),
			glamour.WithWordWrap(width),
		)
	}

	if renderer == nil || err != nil {
		renderer, err = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
			glamour.WithEnvironmentConfig(),
		)
	}

	if err != nil {
		renderer, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			renderer = nil
		}
	}

	return &MarkdownRenderer{glamourRenderer: renderer}
}

// Render returns md rendered for the terminal, or md unchanged.
func (m *MarkdownRenderer) Render(md string) string {
	if m.glamourRenderer == nil {
		return md
	}
	rendered, err := m.glamourRenderer.Render(md)
	if err != nil || strings.TrimSpace(rendered) == "" {
		return md
	}
	return rendered
}

// IsAvailable reports whether glamour rendering is active.
func (m *MarkdownRenderer) IsAvailable() bool {
	return m.glamourRenderer != nil
}

// Markdown prints md rendered through glamour when the printer is stylable.
// Plain and structured modes print the raw text.
func (p *Printer) Markdown(md string) {
	if p.mode.IsStructured() || !p.IsStylable() {
		p.Println(md)
		return
	}
	p.Print(NewMarkdownRenderer(p.styleProvider, 0).Render(md))
}
