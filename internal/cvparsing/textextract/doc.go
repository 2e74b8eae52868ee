package textextract

import (
	"context"
	"fmt"
	"strings"

	"code.sajari.com/docconv"
	"github.com/hireflow/hireflow-backend/internal/cvparsing/domain"
)

// DocExtractor reads legacy Word 97-2003 documents.
//
// docconv shells out to wvText (from the wv package) for .doc files and
// needs a path on disk, so the upload is copied to a scratch file first.
// Without wvText installed extraction fails with an EXTRACTION_ERROR.
type DocExtractor struct {
	scratch *Scratch
}

func NewDocExtractor(scratch *Scratch) *DocExtractor {
	return &DocExtractor{scratch: scratch}
}

func (e *DocExtractor) Format() domain.Format {
	return domain.FormatDOC
}

func (e *DocExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, release, err := e.scratch.Write(data, string(domain.FormatDOC))
	if err != nil {
		return "", err
	}
	defer release()

	res, err := docconv.ConvertPath(path)
	if err != nil {
		return "", fmt.Errorf("convert doc: %w", err)
	}
	if res.Error != "" {
		return "", fmt.Errorf("convert doc: %s", res.Error)
	}
	if strings.TrimSpace(res.Body) == "" {
		return "", fmt.Errorf("convert doc: no text produced (is wvText installed?)")
	}
	return paragraphLines(res.Body), nil
}
