// Package cliptypes defines the value types shared between the clipboard
// bridge and its callers: native format identifiers and the payload union
// returned by a dispatched set.
package cliptypes

import "fmt"

// Format is a native clipboard format identifier.
// The numeric values are the Win32 CF_* constants.
type Format uint32

const (
	// FormatUnicodeText is CF_UNICODETEXT: NUL-terminated UTF-16LE text.
	FormatUnicodeText Format = 13
	// FormatHDrop is CF_HDROP: a DROPFILES header followed by a path list.
	FormatHDrop Format = 15
	// FormatDIB is CF_DIB: BITMAPINFOHEADER plus pixel data, no file header.
	FormatDIB Format = 8
)

// KnownFormats lists the formats the bridge transfers, in reporting order.
var KnownFormats = []Format{FormatHDrop, FormatDIB, FormatUnicodeText}

// String returns the Win32 name of the format.
func (f Format) String() string {
	switch f {
	case FormatUnicodeText:
		return "CF_UNICODETEXT"
	case FormatHDrop:
		return "CF_HDROP"
	case FormatDIB:
		return "CF_DIB"
	default:
		return fmt.Sprintf("CF_%d", uint32(f))
	}
}

// PayloadKind tags which member of a Payload is set.
type PayloadKind int

const (
	// KindNone is the empty payload returned for empty input.
	KindNone PayloadKind = iota
	// KindPaths carries a file path list.
	KindPaths
	// KindImage carries raw CF_DIB bytes.
	KindImage
	// KindText carries a Unicode string.
	KindText
)

func (k PayloadKind) String() string {
	switch k {
	case KindPaths:
		return "paths"
	case KindImage:
		return "image"
	case KindText:
		return "text"
	default:
		return "none"
	}
}

// Payload is the tagged union read back from the clipboard after a set.
// Only the member matching Kind is meaningful.
type Payload struct {
	Kind  PayloadKind `json:"kind" yaml:"kind"`
	Paths []string    `json:"paths,omitempty" yaml:"paths,omitempty"`
	Image []byte      `json:"-" yaml:"-"`
	Text  string      `json:"text,omitempty" yaml:"text,omitempty"`
}

// PathsPayload wraps a path list.
func PathsPayload(paths []string) Payload {
	return Payload{Kind: KindPaths, Paths: paths}
}

// ImagePayload wraps CF_DIB bytes.
func ImagePayload(dib []byte) Payload {
	return Payload{Kind: KindImage, Image: dib}
}

// TextPayload wraps a string.
func TextPayload(text string) Payload {
	return Payload{Kind: KindText, Text: text}
}

// IsEmpty reports whether the payload is the empty list returned for
// empty input.
func (p Payload) IsEmpty() bool {
	return p.Kind == KindNone
}
