package dib

import (
	"encoding/binary"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// packedDIB builds a DIB with the given header size, masks and raw rows.
// Rows are written in storage order.
func packedDIB(infoSize uint32, width, height int32, bitCount uint16, compression uint32, masks []uint32, rows ...[]byte) []byte {
	h := make([]byte, 0, infoSize)
	h = binary.LittleEndian.AppendUint32(h, infoSize)
	h = binary.LittleEndian.AppendUint32(h, uint32(width))
	h = binary.LittleEndian.AppendUint32(h, uint32(height))
	h = binary.LittleEndian.AppendUint16(h, 1)
	h = binary.LittleEndian.AppendUint16(h, bitCount)
	h = binary.LittleEndian.AppendUint32(h, compression)
	h = append(h, make([]byte, InfoHeaderSize-len(h))...)

	for _, m := range masks {
		h = binary.LittleEndian.AppendUint32(h, m)
	}
	if uint32(len(h)) < infoSize {
		h = append(h, make([]byte, int(infoSize)-len(h))...)
	}
	for _, r := range rows {
		h = append(h, r...)
	}
	return h
}

func bgrx(px ...uint32) []byte {
	var b []byte
	for _, p := range px {
		b = binary.LittleEndian.AppendUint32(b, p)
	}
	return b
}

func TestDecode_Bitfields32(t *testing.T) {
	// Bottom-up: the first stored row is the bottom of the image.
	data := packedDIB(InfoHeaderSize, 2, 2, 32, biBitfields,
		[]uint32{0xFF0000, 0x00FF00, 0x0000FF},
		bgrx(0x0000FF, 0xFFFFFF),
		bgrx(0xFF0000, 0x00FF00),
	)

	h, err := FileHeader(data)
	require.NoError(t, err)
	assert.Equal(t, uint32(FileHeaderSize+InfoHeaderSize+12), binary.LittleEndian.Uint32(h[10:14]))

	img, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, 2, img.Bounds().Dx())
	require.Equal(t, 2, img.Bounds().Dy())

	nrgba := func(x, y int) color.NRGBA {
		return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	}
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, nrgba(0, 0))
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, nrgba(1, 0))
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, nrgba(0, 1))
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, nrgba(1, 1))
}

func TestDecode_Bitfields32IgnoresUnmaskedByte(t *testing.T) {
	// Screenshots often leave garbage in the unused high byte.
	data := packedDIB(InfoHeaderSize, 1, 1, 32, biBitfields,
		[]uint32{0xFF0000, 0x00FF00, 0x0000FF},
		bgrx(0xAB102030),
	)

	img, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 255},
		color.NRGBAModel.Convert(img.At(0, 0)))
}

func TestDecode_Bitfields32V5AlphaTopDown(t *testing.T) {
	data := packedDIB(124, 1, -2, 32, biBitfields,
		[]uint32{0x00FF0000, 0x0000FF00, 0x000000FF, 0xFF000000},
		bgrx(0x80FF0000),
		bgrx(0xFF0000FF),
	)

	img, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 255, A: 0x80}, color.NRGBAModel.Convert(img.At(0, 0)))
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, color.NRGBAModel.Convert(img.At(0, 1)))
}

func TestDecode_RGB565(t *testing.T) {
	row := binary.LittleEndian.AppendUint16(nil, 0xF800)
	row = binary.LittleEndian.AppendUint16(row, 0x07E0)
	data := packedDIB(InfoHeaderSize, 2, 1, 16, biBitfields,
		[]uint32{0xF800, 0x07E0, 0x001F}, row)

	img, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, color.NRGBAModel.Convert(img.At(0, 0)))
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, color.NRGBAModel.Convert(img.At(1, 0)))
}

func TestDecode_RGB555(t *testing.T) {
	row := binary.LittleEndian.AppendUint16(nil, 0x001F)
	row = append(row, 0, 0) // pad to 4 bytes
	data := packedDIB(InfoHeaderSize, 1, 1, 16, biRGB, nil, row)

	img, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, color.NRGBAModel.Convert(img.At(0, 0)))
}

func TestDecode_BitfieldsTruncated(t *testing.T) {
	data := packedDIB(InfoHeaderSize, 2, 2, 32, biBitfields,
		[]uint32{0xFF0000, 0x00FF00, 0x0000FF},
		bgrx(0, 0),
	)
	_, err := Decode(data)
	assert.ErrorContains(t, err, "truncated")
}
