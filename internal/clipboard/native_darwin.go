//go:build darwin

package clipboard

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"

	"clipbridge/internal/dib"
	"clipbridge/pkg/cliptypes"
)

const (
	platformName       = "pasteboard"
	platformAllFormats = false
)

var (
	initOnce sync.Once
	initErr  error
)

// pasteboardNative maps text and bitmaps onto the macOS pasteboard. CF_DIB
// travels as PNG there, file lists are not supported.
type pasteboardNative struct{}

func newPlatformNative() (Native, error) {
	return pasteboardNative{}, nil
}

func (pasteboardNative) Open() error {
	initOnce.Do(func() { initErr = clipboard.Init() })
	if initErr != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, initErr)
	}
	return nil
}

func (pasteboardNative) Close() error { return nil }

// Empty is a no-op: every write replaces the pasteboard contents.
func (pasteboardNative) Empty() error { return nil }

func (pasteboardNative) SetData(format cliptypes.Format, data []byte) error {
	switch format {
	case cliptypes.FormatUnicodeText:
		text, err := decodeText(data)
		if err != nil {
			return err
		}
		clipboard.Write(clipboard.FmtText, []byte(text))
		return nil
	case cliptypes.FormatDIB:
		png, err := dib.ToPNG(data)
		if err != nil {
			return err
		}
		clipboard.Write(clipboard.FmtImage, png)
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func (pasteboardNative) Data(format cliptypes.Format) ([]byte, error) {
	switch format {
	case cliptypes.FormatUnicodeText:
		b := clipboard.Read(clipboard.FmtText)
		if b == nil {
			return nil, fmt.Errorf("%w: %s", ErrFormatAbsent, format)
		}
		return encodeText(string(b))
	case cliptypes.FormatDIB:
		b := clipboard.Read(clipboard.FmtImage)
		if b == nil {
			return nil, fmt.Errorf("%w: %s", ErrFormatAbsent, format)
		}
		return dib.EncodeBytes(b)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func (pasteboardNative) IsAvailable(format cliptypes.Format) bool {
	switch format {
	case cliptypes.FormatUnicodeText:
		return clipboard.Read(clipboard.FmtText) != nil
	case cliptypes.FormatDIB:
		return clipboard.Read(clipboard.FmtImage) != nil
	default:
		return false
	}
}
