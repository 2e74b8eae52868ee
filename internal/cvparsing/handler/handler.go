package handler

import (
	"context"
	stderrors "errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hireflow/hireflow-backend/internal/cvparsing/domain"
	"github.com/hireflow/hireflow-backend/internal/cvparsing/repository"
	"github.com/hireflow/hireflow-backend/internal/cvparsing/service"
	"github.com/hireflow/hireflow-backend/pkg/errors"
	"github.com/hireflow/hireflow-backend/pkg/httputil"
	"github.com/hireflow/hireflow-backend/pkg/logger"
	"github.com/hireflow/hireflow-backend/pkg/permissions"
)

// DefaultMaxUploadSize applies when no limit is configured
const DefaultMaxUploadSize = 20 << 20 // 20MB

// Upload form fields, in lookup order
var uploadFields = []string{"file", "resume"}

// Parser runs the CV pipeline
type Parser interface {
	Parse(ctx context.Context, upload service.Upload) (*domain.ParseResult, error)
}

// HistoryLister returns a user's recent parses
type HistoryLister interface {
	ListByUser(ctx context.Context, userID string, limit int) ([]repository.AuditEntry, error)
}

// Handler handles CV parsing endpoints
type Handler struct {
	parser        Parser
	history       HistoryLister
	maxUploadSize int64
	log           *logger.Logger
}

// NewHandler creates a new CV parsing handler. history may be nil when the
// audit trail is disabled.
func NewHandler(parser Parser, history HistoryLister, maxUploadSize int64, log *logger.Logger) *Handler {
	if maxUploadSize <= 0 {
		maxUploadSize = DefaultMaxUploadSize
	}
	return &Handler{
		parser:        parser,
		history:       history,
		maxUploadSize: maxUploadSize,
		log:           log,
	}
}

// Routes registers the CV endpoints. Callers must authenticate requests
// before they reach r.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/cv", func(r chi.Router) {
		r.With(httputil.RequirePermission(permissions.CVParse)).Post("/parse", h.Parse)
		if h.history != nil {
			r.With(httputil.RequirePermission(permissions.CVHistory)).Get("/history", h.History)
		}
	})
}

type uploadMeta struct {
	Filename string `validate:"max=255"`
}

// Parse handles POST /cv/parse
// Accepts a multipart form with the document in "file" (or "resume").
func (h *Handler) Parse(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.maxUploadSize {
		httputil.ErrorLocalized(w, r, errFileTooLarge())
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			httputil.ErrorLocalized(w, r, errFileTooLarge())
			return
		}
		httputil.ErrorLocalized(w, r, errors.BadRequest("invalid multipart form"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := formFile(r)
	if err != nil {
		if hasNamelessUpload(r.MultipartForm) {
			httputil.ErrorLocalized(w, r, errors.InvalidFormat(""))
			return
		}
		httputil.ErrorLocalized(w, r, errors.BadRequest("missing file in request"))
		return
	}
	defer file.Close()

	if err := httputil.Validate(uploadMeta{Filename: header.Filename}); err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		h.log.Error().Err(err).Str("request_id", httputil.GetRequestID(r.Context())).Msg("failed to read uploaded file")
		httputil.ErrorLocalized(w, r, errors.Internal("failed to read uploaded file"))
		return
	}

	result, err := h.parser.Parse(r.Context(), service.Upload{
		Filename: header.Filename,
		Content:  content,
		UserID:   httputil.GetUserID(r.Context()),
	})
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, result)
}

// History handles GET /cv/history
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	entries, err := h.history.ListByUser(r.Context(), httputil.GetUserID(r.Context()), limit)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list parse history")
		httputil.ErrorLocalized(w, r, err)
		return
	}

	httputil.JSONWithMeta(w, http.StatusOK, entries, &httputil.Meta{
		Total: int64(len(entries)),
		Limit: limit,
	})
}

func errFileTooLarge() *errors.AppError {
	return errors.New("FILE_TOO_LARGE", "uploaded file exceeds the size limit", http.StatusRequestEntityTooLarge)
}

func formFile(r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	var lastErr error
	for _, field := range uploadFields {
		file, header, err := r.FormFile(field)
		if err == nil {
			return file, header, nil
		}
		lastErr = err
	}
	return nil, nil, lastErr
}

// hasNamelessUpload reports whether an upload field was sent without a
// filename. multipart stores such parts as plain values.
func hasNamelessUpload(form *multipart.Form) bool {
	if form == nil {
		return false
	}
	for _, field := range uploadFields {
		if _, ok := form.Value[field]; ok {
			return true
		}
	}
	return false
}
