package dib

import (
	"encoding/binary"
	"fmt"
	"image"
	"math/bits"
)

const biRGB = 0

// channel extracts one color component from a packed pixel.
type channel struct {
	mask  uint32
	shift int
	max   uint32
}

func newChannel(mask uint32) channel {
	if mask == 0 {
		return channel{}
	}
	shift := bits.TrailingZeros32(mask)
	width := bits.OnesCount32(mask >> shift)
	return channel{mask: mask, shift: shift, max: 1<<width - 1}
}

func (c channel) value(px uint32, fallback uint8) uint8 {
	if c.mask == 0 {
		return fallback
	}
	v := (px & c.mask) >> c.shift
	if c.max == 255 {
		return uint8(v)
	}
	return uint8((v*255 + c.max/2) / c.max)
}

// needsMaskDecode reports whether the DIB stores packed pixels that
// x/image/bmp does not read: 16-bit pixels, or BI_BITFIELDS masks other
// than the default BGRA layout behind a V4 or V5 header.
func needsMaskDecode(dib []byte) bool {
	if len(dib) < InfoHeaderSize {
		return false
	}
	bitCount := binary.LittleEndian.Uint16(dib[14:16])
	compression := binary.LittleEndian.Uint32(dib[16:20])
	switch {
	case bitCount == 16 && (compression == biRGB || compression == biBitfields):
		return true
	case bitCount == 32 && compression == biBitfields:
		return true
	}
	return false
}

// decodeMasked unpacks 16- and 32-bit DIBs whose channels are described by
// color masks. Masks follow a BITMAPINFOHEADER or sit inside the larger
// V4/V5 headers at the same offset. Without an alpha mask pixels are opaque.
func decodeMasked(dib []byte) (image.Image, error) {
	infoSize := binary.LittleEndian.Uint32(dib[0:4])
	width := int(int32(binary.LittleEndian.Uint32(dib[4:8])))
	height := int(int32(binary.LittleEndian.Uint32(dib[8:12])))
	bitCount := int(binary.LittleEndian.Uint16(dib[14:16]))
	compression := binary.LittleEndian.Uint32(dib[16:20])
	clrUsed := binary.LittleEndian.Uint32(dib[32:36])

	topDown := height < 0
	if topDown {
		height = -height
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("dib: invalid dimensions %dx%d", width, height)
	}

	var r, g, b, a uint32
	offset := int(infoSize)
	if compression == biBitfields {
		if len(dib) < InfoHeaderSize+12 {
			return nil, fmt.Errorf("dib: missing color masks")
		}
		r = binary.LittleEndian.Uint32(dib[40:44])
		g = binary.LittleEndian.Uint32(dib[44:48])
		b = binary.LittleEndian.Uint32(dib[48:52])
		if infoSize == InfoHeaderSize {
			offset += 12
		} else if infoSize >= 56 {
			a = binary.LittleEndian.Uint32(dib[52:56])
		}
	} else {
		// BI_RGB 16-bit is 5-5-5.
		r, g, b = 0x7C00, 0x03E0, 0x001F
	}
	offset += int(clrUsed) * 4

	stride := ((width*bitCount + 31) / 32) * 4
	if offset > len(dib) || stride*height > len(dib)-offset {
		return nil, fmt.Errorf("dib: pixel data truncated: need %d bytes, have %d",
			stride*height, max(len(dib)-offset, 0))
	}

	rc, gc, bc, ac := newChannel(r), newChannel(g), newChannel(b), newChannel(a)
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	bpp := bitCount / 8
	for y := 0; y < height; y++ {
		row := dib[offset+y*stride:]
		dy := height - 1 - y
		if topDown {
			dy = y
		}
		pix := img.Pix[dy*img.Stride:]
		for x := 0; x < width; x++ {
			var px uint32
			if bpp == 2 {
				px = uint32(binary.LittleEndian.Uint16(row[x*2:]))
			} else {
				px = binary.LittleEndian.Uint32(row[x*4:])
			}
			pix[x*4+0] = rc.value(px, 0)
			pix[x*4+1] = gc.value(px, 0)
			pix[x*4+2] = bc.value(px, 0)
			pix[x*4+3] = ac.value(px, 255)
		}
	}
	return img, nil
}
