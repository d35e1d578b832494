package clipboard

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// encodeText returns s as NUL-terminated UTF-16LE, the CF_UNICODETEXT layout.
func encodeText(s string) ([]byte, error) {
	b, err := utf16le.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("encode text: %w", err)
	}
	return append(b, 0, 0), nil
}

// decodeText reads CF_UNICODETEXT bytes up to the first NUL code unit.
func decodeText(b []byte) (string, error) {
	n := len(b) &^ 1
	for i := 0; i < n; i += 2 {
		if b[i] == 0 && b[i+1] == 0 {
			n = i
			break
		}
	}
	s, err := utf16le.NewDecoder().Bytes(b[:n])
	if err != nil {
		return "", fmt.Errorf("decode text: %w", err)
	}
	return string(s), nil
}
