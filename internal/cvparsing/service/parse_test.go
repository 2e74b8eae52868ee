package service

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/hireflow/hireflow-backend/internal/cvparsing/domain"
	"github.com/hireflow/hireflow-backend/internal/cvparsing/fields"
	"github.com/hireflow/hireflow-backend/internal/cvparsing/normalize"
	"github.com/hireflow/hireflow-backend/internal/cvparsing/repository"
	"github.com/hireflow/hireflow-backend/internal/cvparsing/segment"
	"github.com/hireflow/hireflow-backend/internal/cvparsing/textextract"
	"github.com/hireflow/hireflow-backend/pkg/config"
	"github.com/hireflow/hireflow-backend/pkg/errors"
	"github.com/hireflow/hireflow-backend/pkg/logger"
	"github.com/hireflow/hireflow-backend/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuditor struct {
	mock.Mock
}

func (m *mockAuditor) Create(ctx context.Context, entry *repository.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) PublishCVParsed(ctx context.Context, userID, parseID, filename string, format domain.Format, profile domain.ParsedProfile) {
	m.Called(ctx, userID, parseID, filename, format, profile)
}

// countingExtractor decodes txt and records how often it ran
type countingExtractor struct {
	calls atomic.Int32
}

func (c *countingExtractor) Format() domain.Format { return domain.FormatTXT }

func (c *countingExtractor) Extract(_ context.Context, data []byte) (string, error) {
	c.calls.Add(1)
	return string(data), nil
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewFromConfig(&config.ParserConfig{ScratchDir: t.TempDir()}, logger.Nop())
}

func parseText(t *testing.T, s *Service, text string) *domain.ParseResult {
	t.Helper()
	res, err := s.Parse(context.Background(), Upload{Filename: "cv.txt", Content: []byte(text), UserID: "user-1"})
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func TestParse_FullDocument(t *testing.T) {
	res := parseText(t, newTestService(t), testutil.SampleCVText)
	p := res.Extracted

	assert.Equal(t, "JOHN DOE", p.Username)
	assert.Equal(t, "(555) 123-4567", p.Phone)
	assert.Equal(t, "Python, JavaScript, React, Node.js, SQL", p.Skills)
	assert.Equal(t, "2", p.ExperienceYears)
	assert.Equal(t, "Bachelor", p.EducationLevel)
	assert.Len(t, p.WorkExperience, 2)
	assert.Equal(t, "Senior Developer at Tech Corp (2020-2023)\n- Developed web applications using React and Node.js\n- Led team of 3 developers", p.Headline)
	assert.Equal(t, "john.doe@email.com", res.RawData.Email)
	assert.NotContains(t, p.Fields(), "email")
}

func TestParse_Scenarios(t *testing.T) {
	s := newTestService(t)

	t.Run("A: name, phone and skills", func(t *testing.T) {
		p := parseText(t, s, "JOHN DOE\nPhone: (555) 123-4567\nSKILLS\nPython, JavaScript, React").Extracted

		assert.Equal(t, "JOHN DOE", p.Username)
		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, p.Phone)
		assert.Equal(t, "5551234567", digits)
		assert.Equal(t, "Python, JavaScript, React", p.Skills)
	})

	t.Run("B: two experience entries", func(t *testing.T) {
		p := parseText(t, s, "Jane Roe\nEXPERIENCE\nAcme Corp 2019 - 2021\nBuilt billing APIs\nGlobex 2015 - 2019\nMaintained the data warehouse").Extracted

		require.Len(t, p.WorkExperience, 2)
		for _, e := range p.WorkExperience {
			assert.NotEmpty(t, e.Description)
		}
	})

	t.Run("C: bachelor education level", func(t *testing.T) {
		p := parseText(t, s, "Jane Roe\nEDUCATION\nBachelor of Arts\nState University 2010").Extracted

		assert.Equal(t, "Bachelor", p.EducationLevel)
	})

	t.Run("D: prose only", func(t *testing.T) {
		p := parseText(t, s, testutil.ProseOnlyText).Extracted

		fields := p.Fields()
		delete(fields, "username")
		assert.Empty(t, fields)
	})
}

func TestParse_InvalidFormatRejectedBeforeExtraction(t *testing.T) {
	spy := &countingExtractor{}
	s := NewService(
		textextract.NewRegistry(spy),
		fields.New(fields.DefaultRules(), segment.New(segment.DefaultRules())),
		normalize.New(""),
		logger.Nop(),
	)

	for _, name := range []string{"notes.xyz", "", "resume", "cv.pdf.exe"} {
		_, err := s.Parse(context.Background(), Upload{Filename: name, Content: []byte("JOHN DOE")})
		require.Error(t, err, name)
		assert.Equal(t, errors.CodeInvalidFormat, errors.CodeOf(err), name)
		assert.True(t, errors.Is(err, errors.ErrInvalidFormat), name)
	}
	assert.Zero(t, spy.calls.Load())

	_, err := s.Parse(context.Background(), Upload{Filename: "CV.TXT", Content: []byte("JOHN DOE")})
	require.NoError(t, err)
	assert.Equal(t, int32(1), spy.calls.Load())
}

func TestParse_Errors(t *testing.T) {
	s := newTestService(t)

	tests := []struct {
		name     string
		upload   Upload
		wantCode string
	}{
		{"empty upload", Upload{Filename: "cv.pdf"}, errors.CodeEmptyUpload},
		{"corrupt pdf", Upload{Filename: "cv.pdf", Content: []byte("not a pdf")}, errors.CodeExtractionError},
		{"corrupt docx", Upload{Filename: "cv.docx", Content: []byte("not a zip")}, errors.CodeExtractionError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.Parse(context.Background(), tt.upload)
			require.Error(t, err)
			assert.Nil(t, res)

			var appErr *errors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.wantCode, appErr.Code)
		})
	}
}

func TestParse_UnsupportedWhenNoExtractorRegistered(t *testing.T) {
	s := NewService(
		textextract.NewRegistry(textextract.NewTextExtractor()),
		fields.New(fields.DefaultRules(), segment.New(segment.DefaultRules())),
		normalize.New(""),
		logger.Nop(),
	)

	_, err := s.Parse(context.Background(), Upload{Filename: "cv.pdf", Content: []byte("%PDF-1.4")})
	assert.Equal(t, errors.CodeUnsupportedFormat, errors.CodeOf(err))
}

func TestParse_PanicBecomesInternalError(t *testing.T) {
	s := NewService(
		textextract.NewRegistry(textextract.NewTextExtractor()),
		nil,
		normalize.New(""),
		logger.Nop(),
	)

	res, err := s.Parse(context.Background(), Upload{Filename: "cv.txt", Content: []byte("JOHN DOE")})
	assert.Nil(t, res)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInternalError, errors.CodeOf(err))
	assert.True(t, errors.Is(err, errors.ErrInternal))
}

func TestParse_Deterministic(t *testing.T) {
	s := newTestService(t)

	first := parseText(t, s, testutil.SampleCVText)
	second := parseText(t, s, testutil.SampleCVText)
	assert.Equal(t, first, second)
}

func TestParse_AuditAndEventOnSuccess(t *testing.T) {
	auditor := &mockAuditor{}
	publisher := &mockEventPublisher{}
	s := newTestService(t).WithAuditor(auditor).WithPublisher(publisher)

	var parseID string
	auditor.On("Create", mock.Anything, mock.MatchedBy(func(e *repository.AuditEntry) bool {
		parseID = e.ID
		return e.Status == repository.StatusSucceeded &&
			e.UserID == "user-1" &&
			e.Format == "txt" &&
			e.ErrorCode == "" &&
			e.SizeBytes == int64(len(testutil.SampleCVText)) &&
			assert.ObjectsAreEqual([]string{
				"certifications", "education", "education_level", "experience_years",
				"headline", "languages", "phone", "skills", "summary", "username", "work_experience",
			}, []string(e.ExtractedFields))
	})).Return(nil).Once()
	publisher.On("PublishCVParsed", mock.Anything, "user-1", mock.AnythingOfType("string"), "cv.txt", domain.FormatTXT, mock.AnythingOfType("domain.ParsedProfile")).Once()

	res := parseText(t, s, testutil.SampleCVText)

	auditor.AssertExpectations(t)
	publisher.AssertExpectations(t)
	assert.NotEmpty(t, parseID)
	assert.Equal(t, parseID, publisher.Calls[0].Arguments.String(2))
	assert.Equal(t, res.Extracted, publisher.Calls[0].Arguments.Get(5))
}

func TestParse_AuditOnFailureWithoutEvent(t *testing.T) {
	auditor := &mockAuditor{}
	publisher := &mockEventPublisher{}
	s := newTestService(t).WithAuditor(auditor).WithPublisher(publisher)

	auditor.On("Create", mock.Anything, mock.MatchedBy(func(e *repository.AuditEntry) bool {
		return e.Status == repository.StatusFailed &&
			e.ErrorCode == errors.CodeInvalidFormat &&
			e.Filename == "notes.xyz" &&
			e.Format == "" &&
			len(e.ExtractedFields) == 0
	})).Return(nil).Once()

	_, err := s.Parse(context.Background(), Upload{Filename: "notes.xyz", Content: []byte("x"), UserID: "user-1"})
	require.Error(t, err)

	auditor.AssertExpectations(t)
	publisher.AssertNotCalled(t, "PublishCVParsed", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestParse_AuditFailureDoesNotChangeResult(t *testing.T) {
	auditor := &mockAuditor{}
	s := newTestService(t).WithAuditor(auditor)

	auditor.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

	res, err := s.Parse(context.Background(), Upload{Filename: "cv.txt", Content: []byte(testutil.SampleCVText)})
	require.NoError(t, err)
	assert.Equal(t, "JOHN DOE", res.Extracted.Username)

	_, err = s.Parse(context.Background(), Upload{Filename: "cv.txt"})
	assert.Equal(t, errors.CodeEmptyUpload, errors.CodeOf(err))
}

func TestParse_ConcurrentCallsAreIndependent(t *testing.T) {
	s := newTestService(t)
	texts := []string{testutil.SampleCVText, testutil.ProseOnlyText, "JOHN DOE\nSKILLS\nGo, SQL"}

	want := make([]*domain.ParseResult, len(texts))
	for i, text := range texts {
		want[i] = parseText(t, s, text)
	}

	results := make(chan bool, 30)
	for i := 0; i < 30; i++ {
		go func(i int) {
			text := texts[i%len(texts)]
			res, err := s.Parse(context.Background(), Upload{Filename: "cv.txt", Content: []byte(text), UserID: "user-1"})
			results <- err == nil && assert.ObjectsAreEqual(want[i%len(texts)], res)
		}(i)
	}
	for i := 0; i < 30; i++ {
		assert.True(t, <-results)
	}
}
