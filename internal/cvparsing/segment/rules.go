package segment

import "github.com/hireflow/hireflow-backend/internal/cvparsing/domain"

// DefaultHeadingMaxLength is the length below which a keyword line is
// treated as a heading rather than body text.
const DefaultHeadingMaxLength = 50

// Rules configures the heading heuristic. Keywords are matched as
// case-insensitive substrings of a line.
type Rules struct {
	// Keywords are the vocabularies that open a section when searched for.
	Keywords map[domain.SectionName][]string

	// Headings are the vocabularies of every major section. A short line
	// matching another section's heading closes the section being read.
	Headings map[domain.SectionName][]string

	// HeadingMaxLength is the exclusive rune limit for a heading line.
	HeadingMaxLength int
}

// DefaultRules returns the stock résumé vocabulary.
func DefaultRules() Rules {
	headings := map[domain.SectionName][]string{
		domain.SectionSkills:         {"skills", "competencies"},
		domain.SectionSummary:        {"summary", "objective", "profile", "about"},
		domain.SectionExperience:     {"experience", "employment", "work history"},
		domain.SectionEducation:      {"education", "academic", "qualifications"},
		domain.SectionLanguages:      {"languages"},
		domain.SectionCertifications: {"certification", "certificate", "licenses"},
		domain.SectionProjects:       {"projects"},
		domain.SectionAchievements:   {"achievements", "awards"},
	}

	keywords := make(map[domain.SectionName][]string, len(headings))
	for name, words := range headings {
		keywords[name] = words
	}
	// The summary falls back to whatever opening block the CV has.
	keywords[domain.SectionSummary] = []string{"skills", "summary", "objective", "profile", "about"}

	return Rules{
		Keywords:         keywords,
		Headings:         headings,
		HeadingMaxLength: DefaultHeadingMaxLength,
	}
}
