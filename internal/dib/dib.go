// Package dib converts between image files and CF_DIB clipboard bytes.
//
// A CF_DIB payload is a BMP file without its 14-byte BITMAPFILEHEADER: the
// BITMAPINFOHEADER, an optional color table and the pixel rows.
package dib

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
	_ "golang.org/x/image/webp" // register webp with image.Decode
)

const (
	// FileHeaderSize is the BITMAPFILEHEADER size stripped from BMP output.
	FileHeaderSize = 14
	// InfoHeaderSize is the BITMAPINFOHEADER size at the start of a DIB.
	InfoHeaderSize = 40

	biBitfields = 3
)

// ErrUnrecognizedImage marks a file or buffer that no registered decoder
// accepts. It is returned together with image.ErrFormat.
var ErrUnrecognizedImage = errors.New("dib: unrecognized image format")

// IsImage reports whether path decodes as an image. An unrecognized format
// yields false with a nil error; other failures, such as a missing file,
// are returned.
func IsImage(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	if _, _, err := image.DecodeConfig(f); err != nil {
		if errors.Is(err, image.ErrFormat) {
			return false, nil
		}
		// Known header, truncated body and the like.
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, fmt.Errorf("decode %s: %w", path, err)
	}
	return true, nil
}

// Open decodes the image at path, applying EXIF orientation.
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %s: %w", ErrUnrecognizedImage, path, err)
		}
		return nil, err
	}
	return img, nil
}

// Flatten composites img onto an opaque white background so that BMP
// encoding always yields a 24-bit BITMAPINFOHEADER DIB.
func Flatten(img image.Image) *image.NRGBA {
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

// EncodeBMP returns the complete BMP file for img after flattening.
func EncodeBMP(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, Flatten(img)); err != nil {
		return nil, fmt.Errorf("encode bmp: %w", err)
	}
	return buf.Bytes(), nil
}

// Encode returns the CF_DIB bytes for img: the BMP encoding with the file
// header removed.
func Encode(img image.Image) ([]byte, error) {
	data, err := EncodeBMP(img)
	if err != nil {
		return nil, err
	}
	if len(data) < FileHeaderSize+InfoHeaderSize || data[0] != 'B' || data[1] != 'M' {
		return nil, fmt.Errorf("encode bmp: unexpected output of %d bytes", len(data))
	}
	return data[FileHeaderSize:], nil
}

// EncodeFile decodes the image file at path and returns its CF_DIB bytes.
func EncodeFile(path string) ([]byte, error) {
	img, err := Open(path)
	if err != nil {
		return nil, err
	}
	return Encode(img)
}

// EncodeBytes decodes an in-memory image (PNG, JPEG, ...) into CF_DIB bytes.
func EncodeBytes(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %w", ErrUnrecognizedImage, err)
		}
		return nil, err
	}
	return Encode(img)
}

// FileHeader synthesizes the BITMAPFILEHEADER that precedes dib in a
// BMP file.
func FileHeader(dib []byte) ([]byte, error) {
	if len(dib) < InfoHeaderSize {
		return nil, fmt.Errorf("dib: %d bytes is shorter than BITMAPINFOHEADER", len(dib))
	}
	infoSize := binary.LittleEndian.Uint32(dib[0:4])
	if infoSize < InfoHeaderSize || int(infoSize) > len(dib) {
		return nil, fmt.Errorf("dib: header size %d out of range", infoSize)
	}
	bitCount := binary.LittleEndian.Uint16(dib[14:16])
	compression := binary.LittleEndian.Uint32(dib[16:20])
	clrUsed := binary.LittleEndian.Uint32(dib[32:36])

	var paletteSize uint32
	switch {
	case clrUsed != 0:
		paletteSize = clrUsed * 4
	case bitCount <= 8:
		paletteSize = (1 << bitCount) * 4
	}
	var masksSize uint32
	if compression == biBitfields && infoSize == InfoHeaderSize {
		masksSize = 12
	}

	h := make([]byte, 0, FileHeaderSize)
	h = append(h, 'B', 'M')
	h = binary.LittleEndian.AppendUint32(h, uint32(FileHeaderSize+len(dib)))
	h = binary.LittleEndian.AppendUint32(h, 0) // reserved
	h = binary.LittleEndian.AppendUint32(h, FileHeaderSize+infoSize+paletteSize+masksSize)
	return h, nil
}

// Dimensions reads the width and height from the DIB header without
// decoding pixels.
func Dimensions(dib []byte) (width, height int, err error) {
	if _, err := FileHeader(dib); err != nil {
		return 0, 0, err
	}
	width = int(int32(binary.LittleEndian.Uint32(dib[4:8])))
	height = int(int32(binary.LittleEndian.Uint32(dib[8:12])))
	if height < 0 {
		height = -height
	}
	if width <= 0 || height == 0 {
		return 0, 0, fmt.Errorf("dib: invalid dimensions %dx%d", width, height)
	}
	return width, height, nil
}

// Decode parses CF_DIB bytes into an image.
func Decode(dib []byte) (image.Image, error) {
	h, err := FileHeader(dib)
	if err != nil {
		return nil, err
	}
	if needsMaskDecode(dib) {
		return decodeMasked(dib)
	}
	img, err := bmp.Decode(io.MultiReader(bytes.NewReader(h), bytes.NewReader(dib)))
	if err != nil {
		return nil, fmt.Errorf("decode dib: %w", err)
	}
	return img, nil
}

// ToPNG converts CF_DIB bytes to a PNG file.
func ToPNG(dib []byte) ([]byte, error) {
	img, err := Decode(dib)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Sniff returns the MIME type detected from the file's magic bytes, or
// an empty string when the type is unknown.
func Sniff(path string) (string, error) {
	kind, err := filetype.MatchFile(path)
	if err != nil {
		return "", err
	}
	if kind == filetype.Unknown {
		return "", nil
	}
	return kind.MIME.Value, nil
}
