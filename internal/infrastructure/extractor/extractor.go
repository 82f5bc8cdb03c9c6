// Package extractor selects a text-extraction routine by file extension.
package extractor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"notes-assistant/internal/core/domain"
)

type fileKind int

const (
	kindUnknown fileKind = iota
	kindImage
	kindPDF
	kindDocx
	kindXlsx
)

type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// Extract dispatches on the lowercase file extension. Unknown extensions
// fail with ErrUnsupportedType naming the extension; handler failures
// (corrupt files) surface as plain errors.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch kindForExt(ext) {
	case kindImage:
		return extractImage(path)
	case kindPDF:
		return extractPDF(path)
	case kindDocx:
		return extractDocx(path)
	case kindXlsx:
		return extractXlsx(path)
	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedType, ext)
	}
}

func kindForExt(ext string) fileKind {
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp":
		return kindImage
	case ".pdf":
		return kindPDF
	case ".docx":
		return kindDocx
	case ".xlsx":
		return kindXlsx
	default:
		return kindUnknown
	}
}
