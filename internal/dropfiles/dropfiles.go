// Package dropfiles encodes and decodes the CF_HDROP clipboard payload: a
// DROPFILES header followed by a double-NUL-terminated list of paths.
//
// The header is serialized field by field in little endian. Go struct
// layout is never relied on.
package dropfiles

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// HeaderSize is the byte size of DROPFILES: DWORD pFiles, POINT pt,
// BOOL fNC, BOOL fWide. Win32 BOOL is four bytes wide.
const HeaderSize = 20

var (
	// ErrSizeMismatch is returned when the bytes written differ from the
	// size computed up front.
	ErrSizeMismatch = errors.New("dropfiles: size mismatch")
	// ErrMalformed is returned when a buffer cannot be a DROPFILES payload.
	ErrMalformed = errors.New("dropfiles: malformed payload")
)

var (
	utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	nul     = []byte{0, 0}
)

// Header mirrors the DROPFILES record.
type Header struct {
	FileListOffset uint32
	X              int32
	Y              int32
	NonClient      bool
	Wide           bool
}

// appendTo serializes the header onto b.
func (h Header) appendTo(b []byte) []byte {
	b = binary.LittleEndian.AppendUint32(b, h.FileListOffset)
	b = binary.LittleEndian.AppendUint32(b, uint32(h.X))
	b = binary.LittleEndian.AppendUint32(b, uint32(h.Y))
	b = binary.LittleEndian.AppendUint32(b, boolToWin(h.NonClient))
	b = binary.LittleEndian.AppendUint32(b, boolToWin(h.Wide))
	return b
}

func boolToWin(v bool) uint32 {
	if v {
		return 1
	}
	return 0
}

// NormalizePath rewrites forward slashes to the backslash separator.
func NormalizePath(p string) string {
	return strings.ReplaceAll(p, "/", `\`)
}

// Size returns the exact buffer size Encode produces for paths.
func Size(paths []string) int {
	units := 1 // list terminator
	for _, p := range paths {
		units += utf16Len(NormalizePath(p)) + 1
	}
	return HeaderSize + units*2
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// Encode builds a wide-character CF_HDROP payload for paths. Separators
// are normalized. Each path is NUL-terminated and the list ends with one
// more NUL code unit.
func Encode(paths []string) ([]byte, error) {
	size := Size(paths)
	buf := make([]byte, 0, size)
	buf = Header{FileListOffset: HeaderSize, Wide: true}.appendTo(buf)

	enc := utf16le.NewEncoder()
	for _, p := range paths {
		if strings.ContainsRune(p, 0) {
			return nil, fmt.Errorf("%w: path %q contains NUL", ErrMalformed, p)
		}
		wide, err := enc.Bytes([]byte(NormalizePath(p)))
		if err != nil {
			return nil, fmt.Errorf("encode path %q: %w", p, err)
		}
		buf = append(buf, wide...)
		buf = append(buf, nul...)
	}
	buf = append(buf, nul...)

	if len(buf) != size {
		return nil, fmt.Errorf("%w: wrote %d bytes, computed %d", ErrSizeMismatch, len(buf), size)
	}
	return buf, nil
}

// Decode parses a CF_HDROP payload. Trailing bytes after the list
// terminator are ignored, since GlobalSize may round allocations up.
func Decode(data []byte) (Header, []string, error) {
	if len(data) < HeaderSize {
		return Header{}, nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrMalformed, len(data))
	}
	h := Header{
		FileListOffset: binary.LittleEndian.Uint32(data[0:4]),
		X:              int32(binary.LittleEndian.Uint32(data[4:8])),
		Y:              int32(binary.LittleEndian.Uint32(data[8:12])),
		NonClient:      binary.LittleEndian.Uint32(data[12:16]) != 0,
		Wide:           binary.LittleEndian.Uint32(data[16:20]) != 0,
	}
	if h.FileListOffset < HeaderSize || int(h.FileListOffset) > len(data) {
		return h, nil, fmt.Errorf("%w: file list offset %d out of range", ErrMalformed, h.FileListOffset)
	}

	list := data[h.FileListOffset:]
	var (
		paths []string
		err   error
	)
	if h.Wide {
		paths, err = decodeWide(list)
	} else {
		paths, err = decodeANSI(list)
	}
	if err != nil {
		return h, nil, err
	}
	return h, paths, nil
}

func decodeWide(list []byte) ([]string, error) {
	dec := utf16le.NewDecoder()
	paths := []string{}
	for {
		end := indexWideNUL(list)
		if end < 0 {
			return nil, fmt.Errorf("%w: unterminated wide path list", ErrMalformed)
		}
		if end == 0 {
			return paths, nil
		}
		s, err := dec.Bytes(list[:end])
		if err != nil {
			return nil, fmt.Errorf("decode wide path: %w", err)
		}
		paths = append(paths, string(s))
		list = list[end+2:]
	}
}

// indexWideNUL returns the byte index of the first aligned NUL code unit.
func indexWideNUL(b []byte) int {
	for i := 0; i+1 < len(b); i += 2 {
		if b[i] == 0 && b[i+1] == 0 {
			return i
		}
	}
	return -1
}

func decodeANSI(list []byte) ([]string, error) {
	dec := charmap.Windows1252.NewDecoder()
	paths := []string{}
	for {
		end := bytes.IndexByte(list, 0)
		if end < 0 {
			return nil, fmt.Errorf("%w: unterminated ANSI path list", ErrMalformed)
		}
		if end == 0 {
			return paths, nil
		}
		s, err := dec.Bytes(list[:end])
		if err != nil {
			return nil, fmt.Errorf("decode ANSI path: %w", err)
		}
		paths = append(paths, string(s))
		list = list[end+1:]
	}
}
