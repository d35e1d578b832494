package clipboard

import "errors"

var (
	// ErrUnavailable is returned when the clipboard cannot be opened,
	// usually because another process holds it. Callers may retry.
	ErrUnavailable = errors.New("clipboard unavailable")
	// ErrFormatAbsent is returned when the requested format is not on the
	// clipboard.
	ErrFormatAbsent = errors.New("clipboard format not present")
	// ErrUnsupportedFormat is returned by backends that cannot carry a
	// format at all.
	ErrUnsupportedFormat = errors.New("clipboard format not supported on this platform")
	// ErrNotOpen is returned when a transfer is attempted outside of an
	// open/close bracket.
	ErrNotOpen = errors.New("clipboard not open")
)
