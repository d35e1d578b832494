package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme is a lipgloss StyleProvider bound to one output stream.
type Theme struct {
	renderer *lipgloss.Renderer
	dark     bool

	Info      lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Label     lipgloss.Style
	Path      lipgloss.Style
	Highlight lipgloss.Style
}

// lipglossStyle adapts lipgloss.Style to TextStyle.
type lipglossStyle struct {
	style lipgloss.Style
}

func (l lipglossStyle) Render(text string) string {
	return l.style.Render(text)
}

// NewTheme creates a Theme whose colors are degraded to what w supports.
func NewTheme(w io.Writer) *Theme {
	r := lipgloss.NewRenderer(w)
	return newTheme(r)
}

func newTheme(r *lipgloss.Renderer) *Theme {
	return &Theme{
		renderer:  r,
		dark:      r.HasDarkBackground(),
		Info:      r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#5FAFFF"}),
		Success:   r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#008700", Dark: "#5FD75F"}).Bold(true),
		Warning:   r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD75F"}),
		Error:     r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"}).Bold(true),
		Label:     r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5F5F87", Dark: "#AFAFD7"}),
		Path:      r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#005F87", Dark: "#87D7FF"}).Underline(true),
		Highlight: r.NewStyle().Bold(true),
	}
}

// GetStyle implements StyleProvider.
func (t *Theme) GetStyle(semantic string) TextStyle {
	switch SemanticType(semantic) {
	case SemanticInfo:
		return lipglossStyle{t.Info}
	case SemanticSuccess:
		return lipglossStyle{t.Success}
	case SemanticWarning:
		return lipglossStyle{t.Warning}
	case SemanticError:
		return lipglossStyle{t.Error}
	case SemanticLabel:
		return lipglossStyle{t.Label}
	case SemanticPath:
		return lipglossStyle{t.Path}
	case SemanticHighlight:
		return lipglossStyle{t.Highlight}
	default:
		return lipglossStyle{t.renderer.NewStyle()}
	}
}

// IsAvailable implements StyleProvider.
func (t *Theme) IsAvailable() bool {
	return t.renderer.ColorProfile() != termenv.Ascii
}

// GetThemeType implements StyleProvider.
func (t *Theme) GetThemeType() string {
	if t.dark {
		return "dark"
	}
	return "light"
}

// New builds a printer for an --output value. Auto mode styles output only
// when w is a color-capable terminal.
func New(mode string, w io.Writer, testMode bool) (*Printer, error) {
	m, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}

	opts := []Option{WithWriter(w)}
	switch {
	case testMode && !m.IsStructured():
		opts = append(opts, TestMode())
	case m == ModePlain:
		opts = append(opts, PlainText())
	case m == ModeStyled:
		theme := NewTheme(w)
		theme.renderer.SetColorProfile(termenv.ANSI256)
		opts = append(opts, WithMode(ModeStyled), WithStyles(theme))
	case m == ModeAuto:
		if SupportsColor(w) {
			opts = append(opts, WithStyles(NewTheme(w)))
		}
	default:
		opts = append(opts, WithMode(m))
	}
	return NewPrinter(opts...), nil
}

// SupportsColor reports whether w is a terminal that renders ANSI color.
// NO_COLOR and TERM=dumb are honoured by termenv.
func SupportsColor(w io.Writer) bool {
	return termenv.NewOutput(w).EnvColorProfile() != termenv.Ascii
}
