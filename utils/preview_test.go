package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExt(t *testing.T) {
	tests := map[string]string{
		"/berkas/1-2-Report.PDF": "pdf",
		"/berkas/archive.tar.gz": "gz",
		"/berkas/README":         "",
		"/berkas/.hidden":        "hidden",
	}
	for in, want := range tests {
		assert.Equal(t, want, FileExt(in), in)
	}
}

func TestPreviewKind(t *testing.T) {
	tests := []struct {
		ext  string
		kind string
	}{
		{"pdf", PreviewIframe},
		{"txt", PreviewIframe},
		{"jpg", PreviewImage},
		{"jpeg", PreviewImage},
		{"png", PreviewImage},
		{"gif", PreviewImage},
		{"webp", PreviewImage},
		{"doc", PreviewOffice},
		{"docx", PreviewOffice},
		{"xls", PreviewOffice},
		{"xlsx", PreviewOffice},
		{"ppt", PreviewOffice},
		{"pptx", PreviewOffice},
		{"zip", PreviewNone},
		{"", PreviewNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.kind, PreviewKind(tt.ext), tt.ext)
	}
}

func TestPreviewSource(t *testing.T) {
	const p = "/berkas/1-2-jadwal kuliah.docx"

	want := "https://view.officeapps.live.com/op/embed.aspx?src=https%3A%2F%2Ffkdk.example.ac.id%2Fberkas%2F1-2-jadwal%20kuliah.docx"
	assert.Equal(t, want, PreviewSource(PreviewOffice, p, "https://fkdk.example.ac.id/"))
	assert.Equal(t, "/berkas/a.pdf", PreviewSource(PreviewIframe, "/berkas/a.pdf", "http://x"))
	assert.Empty(t, PreviewSource(PreviewNone, "/berkas/a.zip", "http://x"))
}

func TestDetectMime(t *testing.T) {
	dir := t.TempDir()
	png := filepath.Join(dir, "image.bin")
	require.NoError(t, os.WriteFile(png, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), 0o644))

	assert.Contains(t, DetectMime("xlsx", ""), "spreadsheetml")
	assert.Equal(t, "image/png", DetectMime("bin", png))
	assert.Equal(t, "application/octet-stream", DetectMime("bin", filepath.Join(dir, "missing")))
	assert.Equal(t, "image/jpeg", MimeFromExt("JPG"))
}
