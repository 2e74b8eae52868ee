// Package textextract turns the bytes of an uploaded CV into plain text.
// There is one Extractor per supported format; Registry dispatches on the
// declared format of a RawDocument.
package textextract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hireflow/hireflow-backend/internal/cvparsing/domain"
	apperrors "github.com/hireflow/hireflow-backend/pkg/errors"
)

var errEmptyPayload = errors.New("document is empty")

// Extractor decodes one document format into plain UTF-8 text.
type Extractor interface {
	// Format returns the format this extractor decodes
	Format() domain.Format

	// Extract returns the text of data. It must not retain data.
	Extract(ctx context.Context, data []byte) (string, error)
}

// Registry holds one extractor per format
type Registry struct {
	extractors map[domain.Format]Extractor
}

// NewRegistry creates a registry. A later extractor for the same format
// replaces an earlier one.
func NewRegistry(extractors ...Extractor) *Registry {
	r := &Registry{extractors: make(map[domain.Format]Extractor, len(extractors))}
	for _, e := range extractors {
		r.extractors[e.Format()] = e
	}
	return r
}

// NewDefaultRegistry registers the pdf, doc, docx and txt extractors.
func NewDefaultRegistry(scratch *Scratch) *Registry {
	return NewRegistry(
		NewPDFExtractor(),
		NewDocExtractor(scratch),
		NewDocxExtractor(),
		NewTextExtractor(),
	)
}

// Find returns the extractor registered for format, or nil
func (r *Registry) Find(format domain.Format) Extractor {
	return r.extractors[format]
}

// Extract decodes doc into text with normalized line endings.
//
// Errors are *errors.AppError: UNSUPPORTED_FORMAT when no extractor handles
// the format, EXTRACTION_ERROR for empty payloads and decoder failures.
func (r *Registry) Extract(ctx context.Context, doc domain.RawDocument) (text string, err error) {
	if !doc.Format.IsSupported() {
		return "", apperrors.UnsupportedFormat(string(doc.Format))
	}
	ext := r.Find(doc.Format)
	if ext == nil {
		return "", apperrors.UnsupportedFormat(string(doc.Format))
	}
	if len(doc.Content) == 0 {
		return "", apperrors.ExtractionFailed(string(doc.Format), errEmptyPayload)
	}

	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = apperrors.ExtractionFailed(string(doc.Format), fmt.Errorf("decoder panic: %v", rec))
		}
	}()

	raw, err := ext.Extract(ctx, doc.Content)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return "", appErr
		}
		return "", apperrors.ExtractionFailed(string(doc.Format), err)
	}
	return normalizeLineEndings(raw), nil
}

func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.ReplaceAll(s, "\u00a0", " ")
}
