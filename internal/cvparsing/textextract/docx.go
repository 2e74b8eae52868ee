package textextract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"code.sajari.com/docconv"
	"github.com/hireflow/hireflow-backend/internal/cvparsing/domain"
)

// DocxExtractor reads Office Open XML documents
type DocxExtractor struct{}

func NewDocxExtractor() *DocxExtractor {
	return &DocxExtractor{}
}

func (e *DocxExtractor) Format() domain.Format {
	return domain.FormatDOCX
}

// Extract returns the paragraph text in document order, one paragraph per line.
func (e *DocxExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	body, _, err := docconv.ConvertDocx(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("convert docx: %w", err)
	}
	return paragraphLines(body), nil
}

// paragraphLines drops the blank lines docconv emits around header, body
// and footer parts and trims trailing whitespace of every paragraph.
func paragraphLines(body string) string {
	lines := strings.Split(normalizeLineEndings(body), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
