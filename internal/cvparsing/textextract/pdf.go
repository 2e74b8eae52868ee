package textextract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/hireflow/hireflow-backend/internal/cvparsing/domain"
	"github.com/ledongthuc/pdf"
)

// PDFExtractor reads the text layer of PDF uploads, page by page.
// Scanned PDFs without a text layer yield empty pages, not errors.
type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

func (e *PDFExtractor) Format() domain.Format {
	return domain.FormatPDF
}

// Extract joins the text of every page, in page order, with newlines.
func (e *PDFExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		pages = append(pages, pageText(r.Page(i)))
	}
	return strings.Join(pages, "\n"), nil
}

// pageText returns "" for pages that are missing or cannot be decoded.
func pageText(p pdf.Page) (text string) {
	if p.V.IsNull() {
		return ""
	}
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()
	text, err := p.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}
