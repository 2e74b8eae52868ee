// Package segment locates named sections of a résumé using heading
// heuristics. Each section is searched independently, so two sections may
// claim the same heading line.
package segment

import (
	"strings"
	"unicode/utf8"

	"github.com/hireflow/hireflow-backend/internal/cvparsing/domain"
)

// Segmenter finds section spans in extracted text. It is safe for
// concurrent use.
type Segmenter struct {
	keywords  map[domain.SectionName][]string
	headings  map[domain.SectionName][]string
	maxLength int
}

// New creates a segmenter from rules. A non-positive HeadingMaxLength
// falls back to DefaultHeadingMaxLength.
func New(rules Rules) *Segmenter {
	s := &Segmenter{
		keywords:  lowerAll(rules.Keywords),
		headings:  lowerAll(rules.Headings),
		maxLength: rules.HeadingMaxLength,
	}
	if s.maxLength <= 0 {
		s.maxLength = DefaultHeadingMaxLength
	}
	return s
}

// Find returns the section called name, or false when none of its
// keywords occur in text.
//
// The section starts on the line after its heading and runs up to the first
// later heading of any other major section, or to the end of the text.
// The heading is the first line containing one of the section's keywords,
// whatever its length; only terminators must be short.
func (s *Segmenter) Find(text string, name domain.SectionName) (domain.Section, bool) {
	return s.FindLines(Lines(text), name)
}

// FindLines is Find over text already split with Lines.
func (s *Segmenter) FindLines(lines []string, name domain.SectionName) (domain.Section, bool) {
	words := s.keywords[name]
	if len(words) == 0 {
		return domain.Section{}, false
	}

	heading := -1
	for i, line := range lines {
		if containsAny(line, words) {
			heading = i
			break
		}
	}
	if heading < 0 {
		return domain.Section{}, false
	}

	start := heading + 1
	end := len(lines)
	for i := start; i < len(lines); i++ {
		if s.isShort(lines[i]) && s.isOtherHeading(lines[i], name) {
			end = i
			break
		}
	}

	return domain.Section{
		Name:      name,
		StartLine: start,
		EndLine:   end,
		Text:      strings.TrimSpace(strings.Join(lines[start:end], "\n")),
	}, true
}

func (s *Segmenter) isShort(line string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(line)) < s.maxLength
}

func (s *Segmenter) isOtherHeading(line string, name domain.SectionName) bool {
	for other, words := range s.headings {
		if other == name {
			continue
		}
		if containsAny(line, words) {
			return true
		}
	}
	return false
}

// Lines splits text on newlines.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func containsAny(line string, words []string) bool {
	lower := strings.ToLower(line)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func lowerAll(in map[domain.SectionName][]string) map[domain.SectionName][]string {
	out := make(map[domain.SectionName][]string, len(in))
	for name, words := range in {
		lw := make([]string, 0, len(words))
		for _, w := range words {
			if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
				lw = append(lw, w)
			}
		}
		out[name] = lw
	}
	return out
}
