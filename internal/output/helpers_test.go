package output

import (
	"bytes"
	"strings"
)

type captureBuffer struct {
	bytes.Buffer
}

func newCaptureBuffer() *captureBuffer {
	return &captureBuffer{}
}

// lines splits the captured output, dropping the final newline.
func (c *captureBuffer) lines() []string {
	if c.Len() == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
}

// captureOutput runs fn against a test-mode printer and returns what it wrote.
func captureOutput(fn func(*Printer)) string {
	buffer := newCaptureBuffer()
	fn(NewPrinter(WithWriter(buffer), TestMode()))
	return buffer.String()
}

// markerStyles wraps text in [semantic]...[/semantic] so tests can see
// which style was applied.
type markerStyles struct {
	unavailable bool
}

func newMarkerStyles() *markerStyles {
	return &markerStyles{}
}

func (m *markerStyles) GetStyle(semantic string) TextStyle {
	return markerStyle(semantic)
}

func (m *markerStyles) IsAvailable() bool {
	return !m.unavailable
}

func (m *markerStyles) GetThemeType() string {
	return "dark"
}

type markerStyle string

func (s markerStyle) Render(text string) string {
	return "[" + string(s) + "]" + text + "[/" + string(s) + "]"
}
