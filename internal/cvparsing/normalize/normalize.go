// Package normalize converts raw field extractions into the fixed record
// schema and derives experience_years, education level and headline.
package normalize

import (
	"strconv"
	"strings"

	"github.com/hireflow/hireflow-backend/internal/cvparsing/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultProficiency is assigned to languages listed without a level.
const DefaultProficiency = "Fluent"

// educationLevels is ordered from highest to lowest; each level lists its
// lower-case spellings.
var educationLevels = [][]string{
	{"phd", "doctorate"},
	{"master"},
	{"bachelor"},
	{"associate"},
	{"diploma"},
	{"high school"},
}

// Normalized is the schema-conformant view of one document's raw fields.
type Normalized struct {
	Experience      []domain.ExperienceRecord
	Education       []domain.EducationRecord
	Languages       []domain.LanguageRecord
	Certifications  []domain.CertificationRecord
	ExperienceYears string
	EducationLevel  string
	Headline        string
}

type Normalizer struct {
	proficiency string
}

// New creates a normalizer. An empty proficiency means DefaultProficiency.
func New(proficiency string) *Normalizer {
	if strings.TrimSpace(proficiency) == "" {
		proficiency = DefaultProficiency
	}
	return &Normalizer{proficiency: proficiency}
}

// Normalize converts every list field and computes the derived fields.
func (n *Normalizer) Normalize(raw domain.RawFields) Normalized {
	exp := Experience(raw.Experience)
	edu := Education(raw.Education)
	return Normalized{
		Experience:      exp,
		Education:       edu,
		Languages:       n.Languages(raw.Languages),
		Certifications:  Certifications(raw.Certifications),
		ExperienceYears: ExperienceYears(exp),
		EducationLevel:  HighestEducation(edu),
		Headline:        Headline(exp, raw.Skills),
	}
}

// Experience wraps raw entries as {title, description}; company and
// duration are not parsed out of free text.
func Experience(items []domain.ExperienceItem) []domain.ExperienceRecord {
	return convert(items, func(s string) domain.ExperienceRecord {
		return domain.ExperienceRecord{Title: s, Description: s}
	})
}

// Education wraps raw entries as {degree, description}.
func Education(items []domain.EducationItem) []domain.EducationRecord {
	return convert(items, func(s string) domain.EducationRecord {
		return domain.EducationRecord{Degree: s, Description: s}
	})
}

func (n *Normalizer) Languages(items []domain.LanguageItem) []domain.LanguageRecord {
	return convert(items, func(s string) domain.LanguageRecord {
		return domain.LanguageRecord{Language: s, Proficiency: n.proficiency}
	})
}

func Certifications(items []domain.CertificationItem) []domain.CertificationRecord {
	return convert(items, func(s string) domain.CertificationRecord {
		return domain.CertificationRecord{Name: s, Description: s}
	})
}

// ExperienceYears is the number of experience entries. It is a count of
// positions, not elapsed time.
func ExperienceYears(exp []domain.ExperienceRecord) string {
	return strconv.Itoa(len(exp))
}

// HighestEducation returns the highest level named by any entry,
// title-cased. Without a known level it returns the first entry's degree.
func HighestEducation(edu []domain.EducationRecord) string {
	if len(edu) == 0 {
		return ""
	}
	for _, spellings := range educationLevels {
		for _, e := range edu {
			text := strings.ToLower(e.Degree + " " + e.Description)
			for _, s := range spellings {
				if strings.Contains(text, s) {
					return cases.Title(language.English).String(s)
				}
			}
		}
	}
	if edu[0].Degree != "" {
		return edu[0].Degree
	}
	return edu[0].Description
}

// Headline is the title of the most recent experience entry, else the
// leading skills, else a generic "Professional".
func Headline(exp []domain.ExperienceRecord, skills []string) string {
	if len(exp) > 0 {
		title := exp[0].Title
		if title == "" {
			title = exp[0].Description
		}
		if title = strings.TrimSpace(title); title != "" {
			return title
		}
	}
	if len(skills) > 0 {
		if len(skills) > 3 {
			skills = skills[:3]
		}
		return strings.Join(skills, ", ") + " Professional"
	}
	return "Professional"
}

func convert[R any](items []domain.Item[R], fromRaw func(string) R) []R {
	out := make([]R, 0, len(items))
	for _, it := range items {
		if rec, ok := it.Record(); ok {
			out = append(out, rec)
			continue
		}
		out = append(out, fromRaw(it.Text()))
	}
	return out
}
