package domain

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/hireflow/hireflow-backend/pkg/errors"
)

// Format is the declared file format of an uploaded CV
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOC  Format = "doc"
	FormatDOCX Format = "docx"
	FormatTXT  Format = "txt"
)

// SupportedFormats lists every accepted format
var SupportedFormats = []Format{FormatPDF, FormatDOC, FormatDOCX, FormatTXT}

// IsSupported reports whether f is one of SupportedFormats
func (f Format) IsSupported() bool {
	for _, s := range SupportedFormats {
		if f == s {
			return true
		}
	}
	return false
}

// FormatFromFilename derives the declared format from the final dot-suffix
// of name, lower-cased. Empty names and unknown suffixes are InvalidFormat.
func FormatFromFilename(name string) (Format, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.InvalidFormat(name)
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	f := Format(ext)
	if !f.IsSupported() {
		return "", errors.InvalidFormat(name)
	}
	return f, nil
}

// RawDocument is the uploaded byte content plus its declared format.
// It only lives for the duration of one parse.
type RawDocument struct {
	Content []byte
	Format  Format
}

// SectionName identifies a résumé section
type SectionName string

const (
	SectionSkills         SectionName = "skills"
	SectionSummary        SectionName = "summary"
	SectionExperience     SectionName = "experience"
	SectionEducation      SectionName = "education"
	SectionLanguages      SectionName = "languages"
	SectionCertifications SectionName = "certifications"
	SectionProjects       SectionName = "projects"
	SectionAchievements   SectionName = "achievements"
)

// Section is a span of extracted text. StartLine is the first line after the
// heading, EndLine is exclusive; both are zero-based line indexes.
type Section struct {
	Name      SectionName
	StartLine int
	EndLine   int
	Text      string
}

// ExperienceRecord is a normalized work history entry
type ExperienceRecord struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// EducationRecord is a normalized education entry
type EducationRecord struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
	Description string `json:"description"`
}

// LanguageRecord is a normalized spoken language entry
type LanguageRecord struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
}

// CertificationRecord is a normalized certification entry
type CertificationRecord struct {
	Name        string `json:"name"`
	Issuer      string `json:"issuer"`
	Year        string `json:"year"`
	Description string `json:"description"`
}

// Item is either the raw text an extractor produced or an already
// structured record. Items are immutable.
type Item[R any] struct {
	raw    string
	record *R
}

// Raw wraps unstructured extractor output
func Raw[R any](s string) Item[R] {
	return Item[R]{raw: s}
}

// Structured wraps an already structured record
func Structured[R any](r R) Item[R] {
	return Item[R]{record: &r}
}

// Record returns the structured record, if any
func (i Item[R]) Record() (R, bool) {
	if i.record == nil {
		var zero R
		return zero, false
	}
	return *i.record, true
}

// Text returns the raw text; empty for structured items
func (i Item[R]) Text() string {
	return i.raw
}

// MarshalJSON renders raw items as strings and structured items as objects
func (i Item[R]) MarshalJSON() ([]byte, error) {
	if i.record != nil {
		return json.Marshal(*i.record)
	}
	return json.Marshal(i.raw)
}

type (
	ExperienceItem    = Item[ExperienceRecord]
	EducationItem     = Item[EducationRecord]
	LanguageItem      = Item[LanguageRecord]
	CertificationItem = Item[CertificationRecord]
)

// RawFields is the unnormalized output of the field extractors
type RawFields struct {
	Name           string              `json:"name"`
	Phone          string              `json:"phone"`
	Email          string              `json:"email"`
	Skills         []string            `json:"skills"`
	Summary        string              `json:"summary"`
	Experience     []ExperienceItem    `json:"experience"`
	Education      []EducationItem     `json:"education"`
	Languages      []LanguageItem      `json:"languages"`
	Certifications []CertificationItem `json:"certifications"`
}

// ParsedProfile is the assembled, empty-value-stripped result
type ParsedProfile struct {
	Username        string                `json:"username,omitempty"`
	Phone           string                `json:"phone,omitempty"`
	Skills          string                `json:"skills,omitempty"`
	Summary         string                `json:"summary,omitempty"`
	ExperienceYears string                `json:"experience_years,omitempty"`
	EducationLevel  string                `json:"education_level,omitempty"`
	WorkExperience  []ExperienceRecord    `json:"work_experience,omitempty"`
	Education       []EducationRecord     `json:"education,omitempty"`
	Languages       []LanguageRecord      `json:"languages,omitempty"`
	Certifications  []CertificationRecord `json:"certifications,omitempty"`
	Headline        string                `json:"headline,omitempty"`
}

// Fields returns the profile as a field map holding only non-empty values.
// A missing key means "no data".
func (p ParsedProfile) Fields() map[string]any {
	m := make(map[string]any)
	putString := func(k, v string) {
		if v != "" {
			m[k] = v
		}
	}
	putString("username", p.Username)
	putString("phone", p.Phone)
	putString("skills", p.Skills)
	putString("summary", p.Summary)
	putString("experience_years", p.ExperienceYears)
	putString("education_level", p.EducationLevel)
	if len(p.WorkExperience) > 0 {
		m["work_experience"] = p.WorkExperience
	}
	if len(p.Education) > 0 {
		m["education"] = p.Education
	}
	if len(p.Languages) > 0 {
		m["languages"] = p.Languages
	}
	if len(p.Certifications) > 0 {
		m["certifications"] = p.Certifications
	}
	putString("headline", p.Headline)
	return m
}

// ParseResult is returned to the caller on success
type ParseResult struct {
	Extracted ParsedProfile `json:"extracted"`
	RawData   RawFields     `json:"raw_data"`
}
