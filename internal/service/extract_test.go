package service

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/careerbuddy/bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExtractTextPlainFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.txt", "  hello career world  ")

	kind, text := ExtractText(path, 25_000)
	assert.Equal(t, domain.KindText, kind)
	assert.Equal(t, "hello career world", text)
}

func TestExtractTextTruncates(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "big.md", strings.Repeat("a", 200))

	kind, text := ExtractText(path, 100)
	assert.Equal(t, domain.KindText, kind)
	assert.True(t, strings.HasSuffix(text, "\n\n[...truncated...]"))
	assert.Equal(t, strings.Repeat("a", 100), strings.TrimSuffix(text, "\n\n[...truncated...]"))
}

func TestExtractTextMissingFile(t *testing.T) {
	kind, text := ExtractText(filepath.Join(t.TempDir(), "nope.txt"), 100)
	assert.Equal(t, domain.KindMissing, kind)
	assert.Empty(t, text)
}

func TestExtractTextUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "photo.png", "binary")

	kind, text := ExtractText(path, 100)
	assert.Equal(t, domain.KindUnknown, kind)
	assert.Empty(t, text)
}

func TestExtractTextScannedPDFKeepsKind(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "cv.pdf", "%PDF-1.4 fake")

	kind, text := ExtractText(path, 100)
	assert.Equal(t, domain.KindPDF, kind)
	assert.Empty(t, text)
}

func TestExtractTextDOCX(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cv.docx")

	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Jane Doe</w:t></w:r><w:r><w:t> — Engineer</w:t></w:r></w:p>
    <w:p><w:r><w:t>Go, Postgres, Kubernetes</w:t></w:r></w:p>
    <w:p></w:p>
  </w:body>
</w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	kind, text := ExtractText(path, 25_000)
	assert.Equal(t, domain.KindDOCX, kind)
	assert.Equal(t, "Jane Doe — Engineer\nGo, Postgres, Kubernetes", text)
}

func TestExtractTextHTML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "posting.html", `<html><head>
<style>body { color: red }</style>
<script>console.log("hi")</script>
</head><body>
<h1>Backend Engineer</h1>
<p>Remote friendly.</p>
</body></html>`)

	kind, text := ExtractText(path, 25_000)
	assert.Equal(t, domain.KindHTML, kind)
	assert.Contains(t, text, "Backend Engineer")
	assert.Contains(t, text, "Remote friendly.")
	assert.NotContains(t, text, "console.log")
	assert.NotContains(t, text, "color: red")
}
