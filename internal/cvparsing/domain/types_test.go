package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/hireflow/hireflow-backend/internal/cvparsing/domain"
	"github.com/hireflow/hireflow-backend/pkg/errors"
	"github.com/hireflow/hireflow-backend/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFromFilename(t *testing.T) {
	testutil.RunTestCases(t, []testutil.TestCase[string, domain.Format]{
		{Name: "pdf", Input: "cv.pdf", Expected: domain.FormatPDF},
		{Name: "upper case", Input: "CV.DOCX", Expected: domain.FormatDOCX},
		{Name: "final suffix wins", Input: "cv.backup.doc", Expected: domain.FormatDOC},
		{Name: "surrounding space", Input: "  notes.txt ", Expected: domain.FormatTXT},
		{Name: "unknown suffix", Input: "notes.xyz", WantErr: true, ErrMsg: "invalid file format"},
		{Name: "no suffix", Input: "resume", WantErr: true},
		{Name: "empty", Input: "", WantErr: true},
		{Name: "trailing dot", Input: "cv.", WantErr: true},
	}, domain.FormatFromFilename)
}

func TestFormatFromFilename_ErrorKind(t *testing.T) {
	_, err := domain.FormatFromFilename("notes.xyz")
	assert.True(t, errors.Is(err, errors.ErrInvalidFormat))
	assert.Equal(t, errors.CodeInvalidFormat, errors.CodeOf(err))
}

func TestItem(t *testing.T) {
	raw := domain.Raw[domain.ExperienceRecord]("Engineer at Acme")
	_, ok := raw.Record()
	assert.False(t, ok)
	assert.Equal(t, "Engineer at Acme", raw.Text())

	rec := domain.ExperienceRecord{Title: "Engineer", Company: "Acme"}
	structured := domain.Structured(rec)
	got, ok := structured.Record()
	require.True(t, ok)
	assert.Equal(t, rec, got)
	assert.Empty(t, structured.Text())

	data, err := json.Marshal([]domain.ExperienceItem{raw, structured})
	require.NoError(t, err)
	assert.JSONEq(t, `["Engineer at Acme", {"title":"Engineer","company":"Acme","duration":"","description":""}]`, string(data))
}

func TestParsedProfile_Fields(t *testing.T) {
	assert.Empty(t, domain.ParsedProfile{}.Fields())

	p := domain.ParsedProfile{
		Username:  "Jane Roe",
		Languages: []domain.LanguageRecord{{Language: "German", Proficiency: "Fluent"}},
	}
	fields := p.Fields()
	assert.Len(t, fields, 2)
	assert.Equal(t, "Jane Roe", fields["username"])
	assert.Contains(t, fields, "languages")
}
