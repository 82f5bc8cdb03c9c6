package extractor

import (
	"archive/zip"
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"notes-assistant/internal/core/domain"
)

func TestKindForExt(t *testing.T) {
	cases := []struct {
		ext  string
		want fileKind
	}{
		{".png", kindImage},
		{".jpg", kindImage},
		{".jpeg", kindImage},
		{".webp", kindImage},
		{".pdf", kindPDF},
		{".docx", kindDocx},
		{".xlsx", kindXlsx},
		{".txt", kindUnknown},
		{".exe", kindUnknown},
		{"", kindUnknown},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, kindForExt(tc.ext), "ext %q", tc.ext)
	}
}

func TestExtractUnsupportedType(t *testing.T) {
	e := New()
	_, err := e.Extract(context.Background(), "report.unknown_extension")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrUnsupportedType))
	assert.Contains(t, err.Error(), ".unknown_extension")
}

func TestExtractDocx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.docx")
	writeDocx(t, path, []string{"Hello World", "This is a test document."})

	e := New()
	text, err := e.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Contains(t, text, "Hello World")
	assert.Contains(t, text, "This is a test document.")
	assert.Contains(t, text, "\n")
}

func TestExtractDocxCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.docx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip archive"), 0o600))

	e := New()
	_, err := e.Extract(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "docx")
}

func TestExtractPDFCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-nothing"), 0o600))

	e := New()
	_, err := e.Extract(context.Background(), path)
	require.Error(t, err)
}

func TestExtractXlsx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "invoice"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", 42))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "total"))
	require.NoError(t, f.SaveAs(path))

	e := New()
	text, err := e.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Contains(t, text, "invoice 42")
	assert.Contains(t, text, "total")
}

func TestGrayscalePNG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src.Set(1, 1, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	out, err := grayscalePNG(buf.Bytes())
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	_, isGray := decoded.(*image.Gray)
	assert.True(t, isGray)
}

func writeDocx(t *testing.T, path string, paragraphs []string) {
	t.Helper()
	out, err := os.Create(path)
	require.NoError(t, err)
	defer out.Close()

	zw := zip.NewWriter(out)
	doc, err := zw.Create("word/document.xml")
	require.NoError(t, err)

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		sb.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	sb.WriteString(`</w:body></w:document>`)

	_, err = doc.Write([]byte(sb.String()))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
}
