package textextract

import (
	"context"
	"strings"

	"github.com/hireflow/hireflow-backend/internal/cvparsing/domain"
)

const utf8BOM = "\ufeff"

// TextExtractor reads plain text uploads
type TextExtractor struct{}

func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

func (e *TextExtractor) Format() domain.Format {
	return domain.FormatTXT
}

// Extract decodes data as UTF-8, dropping undecodable byte sequences.
func (e *TextExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text := strings.ToValidUTF8(string(data), "")
	return strings.TrimPrefix(text, utf8BOM), nil
}
