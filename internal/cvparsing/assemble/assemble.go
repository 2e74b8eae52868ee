// Package assemble merges normalized fields into the final profile and
// drops every empty value.
package assemble

import (
	"strings"

	"github.com/hireflow/hireflow-backend/internal/cvparsing/domain"
	"github.com/hireflow/hireflow-backend/internal/cvparsing/normalize"
)

// Assemble builds the parse result. The raw fields are returned unchanged
// next to the profile for diagnostics.
//
// experience_years is dropped when there are no experience entries, and
// the headline is dropped when the document yielded no section content at
// all: both would otherwise be invented from nothing.
func Assemble(raw domain.RawFields, n normalize.Normalized) domain.ParseResult {
	p := domain.ParsedProfile{
		Username:       strings.TrimSpace(raw.Name),
		Phone:          strings.TrimSpace(raw.Phone),
		Skills:         strings.Join(nonEmpty(raw.Skills), ", "),
		Summary:        strings.TrimSpace(raw.Summary),
		EducationLevel: strings.TrimSpace(n.EducationLevel),
		WorkExperience: nilIfEmpty(n.Experience),
		Education:      nilIfEmpty(n.Education),
		Languages:      nilIfEmpty(n.Languages),
		Certifications: nilIfEmpty(n.Certifications),
	}
	if len(n.Experience) > 0 {
		p.ExperienceYears = n.ExperienceYears
	}
	if hasSectionContent(raw) {
		p.Headline = strings.TrimSpace(n.Headline)
	}
	return domain.ParseResult{Extracted: p, RawData: raw}
}

func hasSectionContent(raw domain.RawFields) bool {
	return len(nonEmpty(raw.Skills)) > 0 ||
		strings.TrimSpace(raw.Summary) != "" ||
		len(raw.Experience) > 0 ||
		len(raw.Education) > 0 ||
		len(raw.Languages) > 0 ||
		len(raw.Certifications) > 0
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func nilIfEmpty[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return s
}
