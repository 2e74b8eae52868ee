package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hireflow/hireflow-backend/pkg/database"
	"github.com/lib/pq"
)

// Audit statuses
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Schema creates the parse audit table.
const Schema = `
	CREATE TABLE IF NOT EXISTS cv_parse_audit (
		id UUID PRIMARY KEY,
		user_id VARCHAR(255) NOT NULL DEFAULT '',
		filename VARCHAR(255) NOT NULL,
		format VARCHAR(10) NOT NULL DEFAULT '',
		status VARCHAR(20) NOT NULL,
		error_code VARCHAR(50) NOT NULL DEFAULT '',
		extracted_fields TEXT[] NOT NULL DEFAULT '{}',
		size_bytes BIGINT NOT NULL DEFAULT 0,
		duration_ms BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT cv_parse_audit_status_valid CHECK (status IN ('succeeded', 'failed'))
	);

	CREATE INDEX IF NOT EXISTS idx_cv_parse_audit_user_id ON cv_parse_audit(user_id, created_at DESC);
`

// AuditEntry records the outcome of one parse. The document content and
// the extracted values are never stored, only which fields were found.
type AuditEntry struct {
	ID              string         `db:"id" json:"id"`
	UserID          string         `db:"user_id" json:"user_id"`
	Filename        string         `db:"filename" json:"filename"`
	Format          string         `db:"format" json:"format"`
	Status          string         `db:"status" json:"status"`
	ErrorCode       string         `db:"error_code" json:"error_code,omitempty"`
	ExtractedFields pq.StringArray `db:"extracted_fields" json:"extracted_fields"`
	SizeBytes       int64          `db:"size_bytes" json:"size_bytes"`
	DurationMS      int64          `db:"duration_ms" json:"duration_ms"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
}

// AuditRepository handles parse audit persistence
type AuditRepository struct {
	db *database.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *database.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// EnsureSchema creates the audit table when it does not exist yet
func (r *AuditRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("create parse audit schema: %w", err)
	}
	return nil
}

// Create inserts a new audit entry and fills in ID and CreatedAt
func (r *AuditRepository) Create(ctx context.Context, entry *AuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.ExtractedFields == nil {
		entry.ExtractedFields = pq.StringArray{}
	}

	query := `
		INSERT INTO cv_parse_audit (id, user_id, filename, format, status, error_code,
		                            extracted_fields, size_bytes, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Filename,
		entry.Format,
		entry.Status,
		entry.ErrorCode,
		entry.ExtractedFields,
		entry.SizeBytes,
		entry.DurationMS,
	).Scan(&entry.CreatedAt)
	if err != nil {
		if appErr := database.MapPQError(err); appErr != nil {
			return appErr
		}
		return fmt.Errorf("insert parse audit: %w", err)
	}
	return nil
}

// ListByUser returns the most recent entries of a user, newest first
func (r *AuditRepository) ListByUser(ctx context.Context, userID string, limit int) ([]AuditEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	query := `
		SELECT id, user_id, filename, format, status, error_code, extracted_fields,
		       size_bytes, duration_ms, created_at
		FROM cv_parse_audit
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	entries := []AuditEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, userID, limit); err != nil {
		return nil, fmt.Errorf("list parse audit: %w", err)
	}
	return entries, nil
}
