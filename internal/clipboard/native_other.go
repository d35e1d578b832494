//go:build !windows && !darwin

package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"

	"clipbridge/pkg/cliptypes"
)

const (
	platformName       = "xclip/xsel/wl-clipboard"
	platformAllFormats = false
)

// commandNative shells out to the clipboard utilities atotto/clipboard
// finds on PATH. Only text is carried.
type commandNative struct{}

func newPlatformNative() (Native, error) {
	if clipboard.Unsupported {
		return nil, fmt.Errorf("%w: no clipboard utility found (install xclip, xsel or wl-clipboard)", ErrUnavailable)
	}
	return commandNative{}, nil
}

func (commandNative) Open() error  { return nil }
func (commandNative) Close() error { return nil }

// Empty is a no-op: every write replaces the selection.
func (commandNative) Empty() error { return nil }

func (commandNative) SetData(format cliptypes.Format, data []byte) error {
	if format != cliptypes.FormatUnicodeText {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	text, err := decodeText(data)
	if err != nil {
		return err
	}
	if err := clipboard.WriteAll(text); err != nil {
		return errors.Join(ErrUnavailable, err)
	}
	return nil
}

func (commandNative) Data(format cliptypes.Format) ([]byte, error) {
	if format != cliptypes.FormatUnicodeText {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return nil, errors.Join(ErrUnavailable, err)
	}
	return encodeText(text)
}

func (commandNative) IsAvailable(format cliptypes.Format) bool {
	return format == cliptypes.FormatUnicodeText
}
