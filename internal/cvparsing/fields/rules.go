package fields

import "regexp"

// Rules configures the field heuristics.
type Rules struct {
	// NameLookahead is how many leading lines may hold the candidate name.
	NameLookahead int

	// LabelWords disqualify a line from being the name.
	LabelWords []string

	// PhonePatterns are tried in order; the first match wins.
	PhonePatterns []*regexp.Regexp

	EmailPattern *regexp.Regexp

	// ListSeparators split skill and language lists. Newlines always split.
	ListSeparators string

	// SummaryMaxLength truncates the summary, in runes.
	SummaryMaxLength int

	// Entry-start patterns are matched against trimmed section lines.
	ExperienceStarts    []*regexp.Regexp
	EducationStarts     []*regexp.Regexp
	CertificationStarts []*regexp.Regexp
}

// DefaultRules returns the stock field heuristics.
func DefaultRules() Rules {
	return Rules{
		NameLookahead: 5,
		LabelWords:    []string{"phone", "email", "address", "summary", "experience", "education"},
		PhonePatterns: []*regexp.Regexp{
			regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
			regexp.MustCompile(`\+\d{1,3}[\s.-]?\(?\d{1,4}\)?(?:[\s.-]?\d{2,4}){2,4}`),
		},
		EmailPattern:     regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`),
		ListSeparators:   ",;•●▪◦‣·",
		SummaryMaxLength: 500,
		ExperienceStarts: []*regexp.Regexp{
			regexp.MustCompile(`^[A-Z]\S*(?:\s+[A-Z]\S*)*\s+at\b`),
			regexp.MustCompile(`^\d{4}`),
			regexp.MustCompile(`^[A-Z]\S*(?:\s+[A-Z]\S*)*\s+[(\[]?(?:19|20)\d{2}`),
		},
		EducationStarts: []*regexp.Regexp{
			regexp.MustCompile(`^[A-Z]`),
			regexp.MustCompile(`^\d{4}`),
			regexp.MustCompile(`^(?:University|College|School)\b`),
		},
		CertificationStarts: []*regexp.Regexp{
			regexp.MustCompile(`^[A-Z]`),
			regexp.MustCompile(`^\d{4}`),
		},
	}
}
