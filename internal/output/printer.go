package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Printer is the main output handler. It writes plain or styled lines,
// or one structured document per call in JSON and YAML modes.
type Printer struct {
	styleProvider StyleProvider
	writer        io.Writer
	mode          Mode
	forcePlain    bool
	testMode      bool
	silent        bool
	prefix        string

	mu  sync.Mutex
	err error // first write failure
}

// message is the structured form of a single text line.
type message struct {
	Type    SemanticType `json:"type" yaml:"type"`
	Message string       `json:"message" yaml:"message"`
}

// NewPrinter creates a new Printer with the given options.
// By default, it writes to os.Stdout with automatic mode detection.
func NewPrinter(options ...Option) *Printer {
	p := &Printer{
		writer: os.Stdout,
		mode:   ModeAuto,
	}

	for _, opt := range options {
		opt(p)
	}

	return p
}

// Print outputs text without any semantic styling.
func (p *Printer) Print(text string) {
	p.output(SemanticPlain, text, false)
}

// Printf outputs formatted text without any semantic styling.
func (p *Printer) Printf(format string, args ...interface{}) {
	p.output(SemanticPlain, fmt.Sprintf(format, args...), false)
}

// Println outputs text with a newline without any semantic styling.
func (p *Printer) Println(text string) {
	p.output(SemanticPlain, text, true)
}

// Info outputs informational text with info styling.
func (p *Printer) Info(text string) {
	p.output(SemanticInfo, text, true)
}

// Success outputs success text with success styling (typically green).
func (p *Printer) Success(text string) {
	p.output(SemanticSuccess, text, true)
}

// Warning outputs warning text with warning styling (typically yellow).
func (p *Printer) Warning(text string) {
	p.output(SemanticWarning, text, true)
}

// Error outputs error text with error styling (typically red).
func (p *Printer) Error(text string) {
	p.output(SemanticError, text, true)
}

// Highlight outputs text with highlight styling.
func (p *Printer) Highlight(text string) {
	p.output(SemanticHighlight, text, true)
}

// Path outputs a file-system path on its own line.
func (p *Printer) Path(path string) {
	p.output(SemanticPath, path, true)
}

// Field outputs a "label: value" line. In structured modes it is emitted
// as a one-key document. The returned error is the printer's Err.
func (p *Printer) Field(label, value string) error {
	if p.mode.IsStructured() {
		return p.Record(map[string]string{label: value})
	}
	p.mu.Lock()
	styled := p.style(SemanticLabel, label+":")
	p.mu.Unlock()
	p.output(SemanticPlain, styled+" "+value, true)
	return p.Err()
}

// Record writes v as one structured document. In text modes v is
// printed with %v.
func (p *Printer) Record(v any) error {
	if p.silent {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var out string
	switch p.mode {
	case ModeJSON:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		out = string(b) + "\n"
	case ModeYAML:
		b, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		out = "---\n" + string(b)
	default:
		out = p.prefix + fmt.Sprintf("%v", v) + "\n"
	}

	return p.write(out)
}

// write sends s to the writer and keeps the first failure for Err.
// Callers hold p.mu.
func (p *Printer) write(s string) error {
	if _, err := fmt.Fprint(p.writer, s); err != nil {
		if p.err == nil {
			p.err = fmt.Errorf("write output: %w", err)
		}
		return p.err
	}
	return nil
}

// Err returns the first error met while writing output.
func (p *Printer) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// output is the core output method that handles all rendering logic.
func (p *Printer) output(semantic SemanticType, text string, addNewline bool) {
	if p.silent {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var finalText string

	switch p.mode {
	case ModeJSON, ModeYAML:
		finalText = p.renderStructured(semantic, text)
	case ModePlain, ModeAuto:
		finalText = p.renderText(semantic, text, addNewline)
	case ModeStyled:
		finalText = p.renderStyled(semantic, text, addNewline)
	}

	if p.prefix != "" && !p.mode.IsStructured() {
		finalText = p.prefix + finalText
	}

	_ = p.write(finalText) // kept for Err
}

// style renders text with the active provider, or the plain provider.
func (p *Printer) style(semantic SemanticType, text string) string {
	if !p.forcePlain && p.styleProvider != nil && p.styleProvider.IsAvailable() {
		return p.styleProvider.GetStyle(string(semantic)).Render(text)
	}
	return NewPlainStyleProvider().GetStyle(string(semantic)).Render(text)
}

// renderText renders text in plain or auto mode.
func (p *Printer) renderText(semantic SemanticType, text string, addNewline bool) string {
	result := p.style(semantic, text)
	if addNewline && !strings.HasSuffix(result, "\n") {
		result += "\n"
	}
	return result
}

// renderStyled renders text with forced styling.
func (p *Printer) renderStyled(semantic SemanticType, text string, addNewline bool) string {
	if p.styleProvider != nil && p.styleProvider.IsAvailable() {
		result := p.styleProvider.GetStyle(string(semantic)).Render(text)
		if addNewline && !strings.HasSuffix(result, "\n") {
			result += "\n"
		}
		return result
	}

	// Fall back to plain if no styling available
	return p.renderText(semantic, text, addNewline)
}

// renderStructured renders a text line as a JSON object or YAML document.
func (p *Printer) renderStructured(semantic SemanticType, text string) string {
	m := message{Type: semantic, Message: text}

	if p.mode == ModeYAML {
		b, err := yaml.Marshal(m)
		if err != nil {
			return text + "\n"
		}
		return "---\n" + string(b)
	}

	b, err := json.Marshal(m)
	if err != nil {
		// Fall back to plain text if JSON encoding fails
		return text + "\n"
	}
	return string(b) + "\n"
}

// Mode returns the printer's output mode.
func (p *Printer) Mode() Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode
}

// Structured reports whether the printer emits JSON or YAML.
func (p *Printer) Structured() bool {
	return p.Mode().IsStructured()
}

// SetWriter changes the output writer. This is useful for testing or redirecting output.
func (p *Printer) SetWriter(writer io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.writer = writer
}

// SetMode changes the output mode.
func (p *Printer) SetMode(mode Mode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = mode
}

// IsStylable returns true if the printer can apply styles.
func (p *Printer) IsStylable() bool {
	return !p.forcePlain && p.styleProvider != nil && p.styleProvider.IsAvailable()
}

// String returns a string representation for debugging.
func (p *Printer) String() string {
	hasStyles := "no"
	if p.IsStylable() {
		hasStyles = "yes"
	}
	return fmt.Sprintf("Printer{mode: %v, styles: %s, writer: %T}", p.mode, hasStyles, p.writer)
}
