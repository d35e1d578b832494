package clipboard

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipbridge/internal/dib"
	"clipbridge/internal/dropfiles"
	"clipbridge/internal/logger"
	"clipbridge/internal/testutils"
	"clipbridge/pkg/cliptypes"
)

func newTestBridge(t *testing.T) (*Bridge, *Memory) {
	t.Helper()
	require.NoError(t, logger.Configure("error", "", true))
	mem := NewMemory()
	return New(mem), mem
}

func TestBridge_FilePathsRoundTrip(t *testing.T) {
	b, mem := newTestBridge(t)

	paths := []string{`C:\one.txt`, `C:\two\three.docx`, `\\host\share\ü.png`}
	require.NoError(t, b.SetFilePaths(paths))

	got, err := b.FilePaths()
	require.NoError(t, err)
	assert.Equal(t, paths, got)
	assert.False(t, mem.IsOpen())
	assert.Equal(t, 2, mem.Opens())
}

func TestBridge_SetFilePathsWritesDropFiles(t *testing.T) {
	b, mem := newTestBridge(t)

	require.NoError(t, b.SetFilePaths([]string{"/a/b.txt"}))

	require.NoError(t, mem.Open())
	raw, err := mem.Data(cliptypes.FormatHDrop)
	require.NoError(t, mem.Close())
	require.NoError(t, err)

	want, err := dropfiles.Encode([]string{`\a\b.txt`})
	require.NoError(t, err)
	assert.Equal(t, want, raw)
}

func TestBridge_TextRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"ascii", "Hello, ClipboardManage!"},
		{"empty", ""},
		{"multiline", "line one\r\nline two\n"},
		{"unicode", "剪贴板 données ✓"},
		{"astral", "emoji 😀 and 𝄞"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := newTestBridge(t)
			require.NoError(t, b.SetText(tt.text))

			got, err := b.Text()
			require.NoError(t, err)
			assert.Equal(t, tt.text, got)
		})
	}
}

func TestBridge_TextWithEmbeddedNUL(t *testing.T) {
	b, mem := newTestBridge(t)
	require.NoError(t, b.SetText("before\x00after"))

	require.NoError(t, mem.Open())
	raw, err := mem.Data(cliptypes.FormatUnicodeText)
	require.NoError(t, mem.Close())
	require.NoError(t, err)
	// All code units are stored; only the reader stops early.
	assert.Len(t, raw, 2*len("before\x00after")+2)

	got, err := b.Text()
	require.NoError(t, err)
	assert.Equal(t, "before", got)
}

func TestBridge_SetReplacesPreviousFormats(t *testing.T) {
	b, _ := newTestBridge(t)

	require.NoError(t, b.SetText("first"))
	require.NoError(t, b.SetFilePaths([]string{`C:\x`}))

	_, err := b.Text()
	assert.ErrorIs(t, err, ErrFormatAbsent)

	formats, err := b.Formats()
	require.NoError(t, err)
	assert.Equal(t, []cliptypes.Format{cliptypes.FormatHDrop}, formats)
}

func TestBridge_GetAbsentFormat(t *testing.T) {
	b, mem := newTestBridge(t)

	_, err := b.FilePaths()
	assert.ErrorIs(t, err, ErrFormatAbsent)
	_, err = b.ImageBytes()
	assert.ErrorIs(t, err, ErrFormatAbsent)
	_, err = b.Text()
	assert.ErrorIs(t, err, ErrFormatAbsent)

	assert.False(t, mem.IsOpen(), "bracket must be released after a failed get")
}

func TestBridge_OpenFailure(t *testing.T) {
	b, mem := newTestBridge(t)
	mem.SetOpenError(errors.New("held by another process"))

	err := b.SetText("x")
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = b.Text()
	assert.ErrorIs(t, err, ErrUnavailable)

	mem.SetOpenError(nil)
	assert.NoError(t, b.SetText("x"))
}

func TestBridge_ReleasesAfterSetFailure(t *testing.T) {
	require.NoError(t, logger.Configure("error", "", true))
	mem := NewMemoryWithFormats(cliptypes.FormatUnicodeText)
	b := New(mem)

	err := b.SetFilePaths([]string{`C:\a`})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.False(t, mem.IsOpen())

	require.NoError(t, b.SetText("still works"))
}

func TestBridge_ReleasesAfterPanic(t *testing.T) {
	b, mem := newTestBridge(t)

	assert.Panics(t, func() {
		_ = b.with("panicking", func() error { panic("boom") })
	})
	assert.False(t, mem.IsOpen())
}

func TestBridge_SetImageFromFile(t *testing.T) {
	b, _ := newTestBridge(t)
	files := testutils.NewFileHelpers()
	img := testutils.GradientImage(6, 5)
	path := files.CreateTempImage(t, "pic.png", img)

	require.NoError(t, b.SetImageFromFile(path))

	got, err := b.ImageBytes()
	require.NoError(t, err)
	full, err := dib.EncodeBMP(img)
	require.NoError(t, err)
	assert.Len(t, got, len(full)-dib.FileHeaderSize)

	decoded, err := b.Image()
	require.NoError(t, err)
	assert.Equal(t, img.Bounds().Size(), decoded.Bounds().Size())
}

func TestBridge_SetImageFromFile_NotAnImage(t *testing.T) {
	b, mem := newTestBridge(t)
	files := testutils.NewFileHelpers()
	path := files.CreateTempFile(t, "a.txt", "text")

	err := b.SetImageFromFile(path)
	assert.ErrorIs(t, err, dib.ErrUnrecognizedImage)
	assert.Equal(t, 0, mem.Opens(), "decode happens before the clipboard is opened")
}

func TestBridge_Clear(t *testing.T) {
	b, _ := newTestBridge(t)
	require.NoError(t, b.SetText("x"))
	require.NoError(t, b.Clear())

	formats, err := b.Formats()
	require.NoError(t, err)
	assert.Empty(t, formats)
}

func TestSet_EmptyInputTouchesNothing(t *testing.T) {
	b, mem := newTestBridge(t)

	for _, asText := range []bool{false, true} {
		payload, err := b.Set(nil, asText, "\n")
		require.NoError(t, err)
		assert.True(t, payload.IsEmpty())
		assert.Empty(t, payload.Paths)

		payload, err = b.Set([]string{}, asText, "\n")
		require.NoError(t, err)
		assert.True(t, payload.IsEmpty())
	}
	assert.Equal(t, 0, mem.Opens())
}

func TestSet_Text(t *testing.T) {
	b, _ := newTestBridge(t)

	payload, err := b.Set([]string{"hello"}, true, ",")
	require.NoError(t, err)
	assert.Equal(t, cliptypes.KindText, payload.Kind)
	assert.Equal(t, "hello", payload.Text)

	text, err := b.Text()
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestSet_TextJoinsItems(t *testing.T) {
	b, _ := newTestBridge(t)

	payload, err := b.Set([]string{"a", "b", "c"}, true, " | ")
	require.NoError(t, err)
	assert.Equal(t, "a | b | c", payload.Text)
}

func TestSet_TextWinsOverImage(t *testing.T) {
	b, _ := newTestBridge(t)
	files := testutils.NewFileHelpers()
	path := files.CreateTempImage(t, "p.png", testutils.SolidImage(2, 2, color.Black))

	payload, err := b.Set([]string{path}, true, "\n")
	require.NoError(t, err)
	assert.Equal(t, cliptypes.KindText, payload.Kind)
	assert.Equal(t, path, payload.Text)
}

func TestSet_SingleImage(t *testing.T) {
	b, _ := newTestBridge(t)
	files := testutils.NewFileHelpers()
	img := testutils.GradientImage(7, 3)
	path := files.CreateTempImage(t, "shot.png", img)

	payload, err := b.Set([]string{path}, false, "\n")
	require.NoError(t, err)
	require.Equal(t, cliptypes.KindImage, payload.Kind)
	require.NotEmpty(t, payload.Image)

	full, err := dib.EncodeBMP(img)
	require.NoError(t, err)
	assert.Len(t, payload.Image, len(full)-dib.FileHeaderSize)

	formats, err := b.Formats()
	require.NoError(t, err)
	assert.Equal(t, []cliptypes.Format{cliptypes.FormatDIB}, formats)
}

func TestSet_SingleJPEG(t *testing.T) {
	b, _ := newTestBridge(t)
	files := testutils.NewFileHelpers()
	path := files.CreateTempImage(t, "photo.jpg", testutils.GradientImage(8, 8))

	payload, err := b.Set([]string{path}, false, "\n")
	require.NoError(t, err)
	assert.Equal(t, cliptypes.KindImage, payload.Kind)
}

func TestSet_FilePaths(t *testing.T) {
	b, _ := newTestBridge(t)

	payload, err := b.Set([]string{"/a/b.txt", "/c/d.txt"}, false, "\n")
	require.NoError(t, err)
	assert.Equal(t, cliptypes.KindPaths, payload.Kind)
	assert.Equal(t, []string{`\a\b.txt`, `\c\d.txt`}, payload.Paths)

	paths, err := b.FilePaths()
	require.NoError(t, err)
	assert.Equal(t, []string{`\a\b.txt`, `\c\d.txt`}, paths)
}

func TestSet_SingleNonImageFile(t *testing.T) {
	b, _ := newTestBridge(t)
	files := testutils.NewFileHelpers()
	path := files.CreateTempFile(t, "notes.txt", "hello")

	payload, err := b.Set([]string{path}, false, "\n")
	require.NoError(t, err)
	assert.Equal(t, cliptypes.KindPaths, payload.Kind)
	assert.Equal(t, []string{dropfiles.NormalizePath(path)}, payload.Paths)
}

func TestSet_MissingSingleFileFallsBackToPaths(t *testing.T) {
	b, _ := newTestBridge(t)
	missing := filepath.Join(t.TempDir(), "gone.png")
	_, statErr := os.Stat(missing)
	require.True(t, os.IsNotExist(statErr))

	payload, err := b.Set([]string{missing}, false, "\n")
	require.NoError(t, err)
	assert.Equal(t, cliptypes.KindPaths, payload.Kind)
}

func TestSet_TwoImagesAreFiles(t *testing.T) {
	b, _ := newTestBridge(t)
	files := testutils.NewFileHelpers()
	a := files.CreateTempImage(t, "a.png", testutils.SolidImage(1, 1, color.White))
	c := files.CreateTempImage(t, "c.png", testutils.SolidImage(1, 1, color.White))

	payload, err := b.Set([]string{a, c}, false, "\n")
	require.NoError(t, err)
	assert.Equal(t, cliptypes.KindPaths, payload.Kind)
	assert.Len(t, payload.Paths, 2)
}

func TestIsImage(t *testing.T) {
	files := testutils.NewFileHelpers()

	ok, err := IsImage(files.CreateTempFile(t, "a.txt", "words"))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = IsImage(files.CreateTempImage(t, "a.jpg", testutils.GradientImage(4, 4)))
	require.NoError(t, err)
	assert.True(t, ok)
}
