// Package clipboard reads and writes the system clipboard in three formats:
// file lists (CF_HDROP), device-independent bitmaps (CF_DIB) and Unicode
// text (CF_UNICODETEXT).
//
// Every Bridge operation opens the clipboard, performs one transfer and
// closes it again, on every exit path.
package clipboard

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"clipbridge/internal/dib"
	"clipbridge/internal/dropfiles"
	"clipbridge/internal/logger"
	"clipbridge/pkg/cliptypes"
)

// Bridge translates between Go values and native clipboard formats.
// It holds no state besides its backend.
type Bridge struct {
	native Native
	log    *log.Logger
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger replaces the component logger.
func WithLogger(l *log.Logger) Option {
	return func(b *Bridge) {
		if l != nil {
			b.log = l
		}
	}
}

// New creates a Bridge over the given backend.
func New(native Native, opts ...Option) *Bridge {
	b := &Bridge{
		native: native,
		log:    logger.NewStyledLogger("clipboard"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewSystem creates a Bridge over the platform clipboard.
func NewSystem(opts ...Option) (*Bridge, error) {
	native, err := newPlatformNative()
	if err != nil {
		return nil, err
	}
	return New(native, opts...), nil
}

// with runs fn inside an open/close bracket. Close runs even when fn
// fails or panics; a close error is reported only if fn succeeded.
func (b *Bridge) with(op string, fn func() error) (err error) {
	id := logger.OperationID()
	if err := b.native.Open(); err != nil {
		b.log.Debug("Open failed", "op", op, "id", id, "error", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	b.log.Debug("Opened clipboard", "op", op, "id", id)

	defer func() {
		if cerr := b.native.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%s: close: %w", op, cerr)
		}
		b.log.Debug("Closed clipboard", "op", op, "id", id)
	}()

	if err := fn(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (b *Bridge) set(op string, format cliptypes.Format, data []byte) error {
	return b.with(op, func() error {
		if err := b.native.Empty(); err != nil {
			return fmt.Errorf("empty: %w", err)
		}
		if err := b.native.SetData(format, data); err != nil {
			return err
		}
		b.log.Debug("Set data", "format", format, "size", humanize.Bytes(uint64(len(data))))
		return nil
	})
}

func (b *Bridge) get(op string, format cliptypes.Format) ([]byte, error) {
	var data []byte
	err := b.with(op, func() error {
		if !b.native.IsAvailable(format) {
			return fmt.Errorf("%w: %s", ErrFormatAbsent, format)
		}
		var err error
		data, err = b.native.Data(format)
		if err != nil {
			return err
		}
		b.log.Debug("Got data", "format", format, "size", humanize.Bytes(uint64(len(data))))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// SetFilePaths puts paths on the clipboard as CF_HDROP. Forward slashes
// are normalized to backslashes.
func (b *Bridge) SetFilePaths(paths []string) error {
	data, err := dropfiles.Encode(paths)
	if err != nil {
		return fmt.Errorf("set file paths: %w", err)
	}
	return b.set("set file paths", cliptypes.FormatHDrop, data)
}

// FilePaths reads the CF_HDROP path list.
func (b *Bridge) FilePaths() ([]string, error) {
	data, err := b.get("get file paths", cliptypes.FormatHDrop)
	if err != nil {
		return nil, err
	}
	_, paths, err := dropfiles.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("get file paths: %w", err)
	}
	return paths, nil
}

// ImageBytes reads the raw CF_DIB bytes.
func (b *Bridge) ImageBytes() ([]byte, error) {
	return b.get("get image", cliptypes.FormatDIB)
}

// Image reads CF_DIB and decodes it.
func (b *Bridge) Image() (image.Image, error) {
	data, err := b.ImageBytes()
	if err != nil {
		return nil, err
	}
	return dib.Decode(data)
}

// Text reads CF_UNICODETEXT. The result ends at the first NUL character,
// as CF_UNICODETEXT readers on Windows treat it as the terminator.
func (b *Bridge) Text() (string, error) {
	data, err := b.get("get text", cliptypes.FormatUnicodeText)
	if err != nil {
		return "", err
	}
	return decodeText(data)
}

// SetImageFromFile decodes the image at path and puts it on the clipboard
// as CF_DIB. The file is decoded before the clipboard is opened.
func (b *Bridge) SetImageFromFile(path string) error {
	data, err := dib.EncodeFile(path)
	if err != nil {
		return fmt.Errorf("set image: %w", err)
	}
	return b.set("set image", cliptypes.FormatDIB, data)
}

// SetText puts text on the clipboard as CF_UNICODETEXT. Text containing
// NUL reads back truncated at the first NUL.
func (b *Bridge) SetText(text string) error {
	data, err := encodeText(text)
	if err != nil {
		return fmt.Errorf("set text: %w", err)
	}
	return b.set("set text", cliptypes.FormatUnicodeText, data)
}

// Clear empties the clipboard.
func (b *Bridge) Clear() error {
	return b.with("clear", b.native.Empty)
}

// Formats reports which of the known formats are on the clipboard.
func (b *Bridge) Formats() ([]cliptypes.Format, error) {
	var formats []cliptypes.Format
	err := b.with("list formats", func() error {
		for _, f := range cliptypes.KnownFormats {
			if b.native.IsAvailable(f) {
				formats = append(formats, f)
			}
		}
		return nil
	})
	return formats, err
}

// IsImage reports whether path decodes as an image. An unrecognized
// format is false with a nil error.
func IsImage(path string) (bool, error) {
	return dib.IsImage(path)
}

// Set dispatches items to the clipboard and returns what was read back:
//
//   - no items: an empty payload, the clipboard is not touched;
//   - asText: the items joined with joiner, as text;
//   - a single decodable image: its CF_DIB bytes;
//   - anything else: the items as a file list.
func (b *Bridge) Set(items []string, asText bool, joiner string) (cliptypes.Payload, error) {
	switch {
	case len(items) == 0:
		return cliptypes.Payload{}, nil

	case asText:
		if err := b.SetText(strings.Join(items, joiner)); err != nil {
			return cliptypes.Payload{}, err
		}
		text, err := b.Text()
		if err != nil {
			return cliptypes.Payload{}, err
		}
		return cliptypes.TextPayload(text), nil

	case len(items) == 1 && b.isImage(items[0]):
		if err := b.SetImageFromFile(items[0]); err != nil {
			return cliptypes.Payload{}, err
		}
		data, err := b.ImageBytes()
		if err != nil {
			return cliptypes.Payload{}, err
		}
		return cliptypes.ImagePayload(data), nil

	default:
		if err := b.SetFilePaths(items); err != nil {
			return cliptypes.Payload{}, err
		}
		paths, err := b.FilePaths()
		if err != nil {
			return cliptypes.Payload{}, err
		}
		return cliptypes.PathsPayload(paths), nil
	}
}

// isImage treats any detection error as "not an image" so that the item
// falls through to the file-list branch.
func (b *Bridge) isImage(path string) bool {
	ok, err := IsImage(path)
	if err != nil {
		b.log.Debug("Image detection failed", "path", path, "error", err)
		return false
	}
	return ok
}
