package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/hireflow/hireflow-backend/internal/cvparsing/assemble"
	"github.com/hireflow/hireflow-backend/internal/cvparsing/domain"
	"github.com/hireflow/hireflow-backend/internal/cvparsing/fields"
	"github.com/hireflow/hireflow-backend/internal/cvparsing/normalize"
	"github.com/hireflow/hireflow-backend/internal/cvparsing/repository"
	"github.com/hireflow/hireflow-backend/internal/cvparsing/segment"
	"github.com/hireflow/hireflow-backend/internal/cvparsing/textextract"
	"github.com/hireflow/hireflow-backend/pkg/config"
	"github.com/hireflow/hireflow-backend/pkg/errors"
	"github.com/hireflow/hireflow-backend/pkg/logger"
)

// Upload is one CV handed to the pipeline
type Upload struct {
	Filename string
	Content  []byte
	UserID   string
}

// Auditor records the outcome of every parse
type Auditor interface {
	Create(ctx context.Context, entry *repository.AuditEntry) error
}

// EventPublisher announces successful parses
type EventPublisher interface {
	PublishCVParsed(ctx context.Context, userID, parseID, filename string, format domain.Format, profile domain.ParsedProfile)
}

// Service runs the extraction pipeline: format check → text extraction →
// field extraction → normalization → assembly
type Service struct {
	registry   *textextract.Registry
	extractor  *fields.Extractor
	normalizer *normalize.Normalizer
	auditor    Auditor
	publisher  EventPublisher
	log        *logger.Logger
}

// NewService creates a parse service from its pipeline stages
func NewService(registry *textextract.Registry, extractor *fields.Extractor, normalizer *normalize.Normalizer, log *logger.Logger) *Service {
	return &Service{
		registry:   registry,
		extractor:  extractor,
		normalizer: normalizer,
		log:        log.WithComponent("cv-parser"),
	}
}

// NewFromConfig wires the default pipeline tuned by cfg
func NewFromConfig(cfg *config.ParserConfig, log *logger.Logger) *Service {
	segRules := segment.DefaultRules()
	if cfg.HeadingMaxLength > 0 {
		segRules.HeadingMaxLength = cfg.HeadingMaxLength
	}

	fieldRules := fields.DefaultRules()
	if cfg.SummaryMaxLength > 0 {
		fieldRules.SummaryMaxLength = cfg.SummaryMaxLength
	}

	return NewService(
		textextract.NewDefaultRegistry(textextract.NewScratch(cfg.ScratchDir)),
		fields.New(fieldRules, segment.New(segRules)),
		normalize.New(cfg.DefaultProficiency),
		log,
	)
}

// WithAuditor enables the parse audit trail
func (s *Service) WithAuditor(a Auditor) *Service {
	s.auditor = a
	return s
}

// WithPublisher enables cv.parsed events
func (s *Service) WithPublisher(p EventPublisher) *Service {
	s.publisher = p
	return s
}

// Parse turns one uploaded CV into a ParseResult. Every returned error is
// an *errors.AppError. No state survives the call other than the audit
// entry and the published event.
func (s *Service) Parse(ctx context.Context, upload Upload) (*domain.ParseResult, error) {
	start := time.Now()
	parseID := uuid.New().String()
	log := s.log.WithUserID(upload.UserID)

	result, format, err := s.run(ctx, upload)

	entry := &repository.AuditEntry{
		ID:         parseID,
		UserID:     upload.UserID,
		Filename:   upload.Filename,
		Format:     string(format),
		SizeBytes:  int64(len(upload.Content)),
		DurationMS: time.Since(start).Milliseconds(),
	}

	if err != nil {
		code := errors.CodeOf(err)
		entry.Status = repository.StatusFailed
		entry.ErrorCode = code

		event := log.Warn()
		if code == errors.CodeInternalError {
			event = log.Error()
		}
		event.Err(err).
			Str("parse_id", parseID).
			Str("filename", upload.Filename).
			Str("code", code).
			Msg("cv parse failed")

		s.audit(ctx, entry)
		return nil, err
	}

	entry.Status = repository.StatusSucceeded
	entry.ExtractedFields = fieldNames(result.Extracted)

	log.Info().
		Str("parse_id", parseID).
		Str("format", string(format)).
		Strs("fields", entry.ExtractedFields).
		Int64("duration_ms", entry.DurationMS).
		Msg("cv parsed")

	s.audit(ctx, entry)
	if s.publisher != nil {
		s.publisher.PublishCVParsed(ctx, upload.UserID, parseID, upload.Filename, format, result.Extracted)
	}

	return result, nil
}

// run executes the pipeline stages and turns panics into INTERNAL_ERROR.
func (s *Service) run(ctx context.Context, upload Upload) (result *domain.ParseResult, format domain.Format, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = errors.Internal(fmt.Sprintf("cv parsing failed unexpectedly: %v", rec))
		}
	}()

	format, err = domain.FormatFromFilename(upload.Filename)
	if err != nil {
		return nil, "", err
	}
	if len(upload.Content) == 0 {
		return nil, format, errors.EmptyUpload()
	}

	text, err := s.registry.Extract(ctx, domain.RawDocument{Content: upload.Content, Format: format})
	if err != nil {
		return nil, format, err
	}

	raw := s.extractor.Extract(text)
	res := assemble.Assemble(raw, s.normalizer.Normalize(raw))
	return &res, format, nil
}

func (s *Service) audit(ctx context.Context, entry *repository.AuditEntry) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Create(ctx, entry); err != nil {
		s.log.Error().Err(err).Str("parse_id", entry.ID).Msg("failed to record parse audit")
	}
}

// fieldNames lists the populated profile keys in stable order
func fieldNames(p domain.ParsedProfile) []string {
	m := p.Fields()
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
