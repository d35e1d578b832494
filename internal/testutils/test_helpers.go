// Package testutils provides fixture helpers for clipbridge tests: small
// image files in several formats and plain text files.
package testutils

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

// FileHelpers provides utilities for working with test files
type FileHelpers struct{}

// NewFileHelpers creates a new file helpers instance
func NewFileHelpers() *FileHelpers {
	return &FileHelpers{}
}

// CreateTempFile creates a temporary file with given content
func (f *FileHelpers) CreateTempFile(t *testing.T, filename, content string) string {
	t.Helper()
	filePath := filepath.Join(t.TempDir(), filename)

	err := os.WriteFile(filePath, []byte(content), 0644)
	require.NoError(t, err, "Should create temp file successfully")

	return filePath
}

// CreateTempImage saves img under filename in a fresh temp dir. The format
// follows the file extension (.png, .jpg, .gif, .bmp, .tif).
func (f *FileHelpers) CreateTempImage(t *testing.T, filename string, img image.Image) string {
	t.Helper()
	filePath := filepath.Join(t.TempDir(), filename)

	err := imaging.Save(img, filePath)
	require.NoError(t, err, "Should save image %s", filename)

	return filePath
}

// SolidImage returns a w x h opaque image filled with c.
func SolidImage(w, h int, c color.Color) *image.NRGBA {
	return imaging.New(w, h, c)
}

// GradientImage returns a w x h image with distinct pixels so that
// encoders cannot collapse rows.
func GradientImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / max(w-1, 1)),
				G: uint8(y * 255 / max(h-1, 1)),
				B: 0x40,
				A: 0xFF,
			})
		}
	}
	return img
}

// TransparentImage returns a w x h image that is fully transparent except
// for an opaque red top-left pixel.
func TransparentImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.SetNRGBA(0, 0, color.NRGBA{R: 0xFF, A: 0xFF})
	return img
}
