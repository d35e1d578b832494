package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeText_Layout(t *testing.T) {
	b, err := encodeText("Hi")
	require.NoError(t, err)
	assert.Equal(t, []byte{'H', 0, 'i', 0, 0, 0}, b)
}

func TestEncodeText_SurrogatePair(t *testing.T) {
	b, err := encodeText("😀")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x3D, 0xD8, 0x00, 0xDE, 0, 0}, b)
}

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"terminated", []byte{'o', 0, 'k', 0, 0, 0}, "ok"},
		{"unterminated", []byte{'o', 0, 'k', 0}, "ok"},
		{"stops at first NUL", []byte{'a', 0, 0, 0, 'b', 0, 0, 0}, "a"},
		{"odd trailing byte", []byte{'a', 0, 'b'}, "a"},
		{"empty", nil, ""},
		{"rounded allocation", []byte{'x', 0, 0, 0, 0xCD, 0xCD, 0xCD, 0xCD}, "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeText(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
