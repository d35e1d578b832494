// Package output provides console output for clipbridge commands.
// A Printer renders messages and clipboard payloads as plain text, styled
// text, JSON or YAML.
package output

import (
	"fmt"
	"strings"
)

// StyleProvider supplies text styles by semantic type.
type StyleProvider interface {
	// GetStyle returns a TextStyle for the given semantic type.
	// Semantic types include: "info", "success", "warning", "error", "label", etc.
	GetStyle(semantic string) TextStyle

	// IsAvailable returns true if the style provider is ready to provide styles.
	// The printer falls back to plain text otherwise.
	IsAvailable() bool

	// GetThemeType returns "dark", "light" or "auto" for markdown rendering.
	GetThemeType() string
}

// TextStyle represents the capability to render text with styling.
// This interface is implemented by lipgloss.Style.
type TextStyle interface {
	Render(text string) string
}

// Mode defines different output modes the printer can operate in.
type Mode int

const (
	// ModeAuto picks styled or plain output from the terminal capabilities
	ModeAuto Mode = iota

	// ModeStyled forces styled output (with colors, formatting)
	ModeStyled

	// ModePlain forces plain text output (no colors, minimal formatting)
	ModePlain

	// ModeJSON outputs structured JSON for machine consumption
	ModeJSON

	// ModeYAML outputs structured YAML documents
	ModeYAML
)

var modeNames = map[Mode]string{
	ModeAuto:   "auto",
	ModeStyled: "styled",
	ModePlain:  "plain",
	ModeJSON:   "json",
	ModeYAML:   "yaml",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// IsStructured reports whether the mode emits machine-readable documents.
func (m Mode) IsStructured() bool {
	return m == ModeJSON || m == ModeYAML
}

// ParseMode parses an --output value. The empty string is ModeAuto.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ModeAuto, nil
	}
	for mode, name := range modeNames {
		if name == s {
			return mode, nil
		}
	}
	return ModeAuto, fmt.Errorf("unknown output mode %q (want auto, styled, plain, json or yaml)", s)
}

// SemanticType defines the semantic meaning of output for consistent styling.
type SemanticType string

const (
	// SemanticPlain represents plain text without any semantic meaning.
	SemanticPlain SemanticType = "plain"
	// SemanticInfo represents informational text.
	SemanticInfo SemanticType = "info"
	// SemanticSuccess represents success or completion text.
	SemanticSuccess SemanticType = "success"
	// SemanticWarning represents warning text.
	SemanticWarning SemanticType = "warning"
	// SemanticError represents error text.
	SemanticError SemanticType = "error"

	// SemanticLabel represents the key half of a key/value line.
	SemanticLabel SemanticType = "label"
	// SemanticPath represents a file-system path.
	SemanticPath SemanticType = "path"
	// SemanticHighlight represents highlighted or emphasized text.
	SemanticHighlight SemanticType = "highlight"
)
