// Package fields pulls the individual profile fields out of extracted CV
// text. Every extractor degrades to an empty value; none of them fail.
package fields

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/hireflow/hireflow-backend/internal/cvparsing/domain"
	"github.com/hireflow/hireflow-backend/internal/cvparsing/segment"
)

// Extractor runs the field heuristics over a whole document. It holds no
// per-document state and is safe for concurrent use.
type Extractor struct {
	rules     Rules
	segmenter *segment.Segmenter
}

// New creates an extractor. Zero-valued limits fall back to DefaultRules.
func New(rules Rules, segmenter *segment.Segmenter) *Extractor {
	def := DefaultRules()
	if rules.NameLookahead <= 0 {
		rules.NameLookahead = def.NameLookahead
	}
	if rules.SummaryMaxLength <= 0 {
		rules.SummaryMaxLength = def.SummaryMaxLength
	}
	if rules.EmailPattern == nil {
		rules.EmailPattern = def.EmailPattern
	}
	return &Extractor{rules: rules, segmenter: segmenter}
}

// Extract runs every field extractor over text.
func (e *Extractor) Extract(text string) domain.RawFields {
	return domain.RawFields{
		Name:           e.Name(text),
		Phone:          e.Phone(text),
		Email:          e.Email(text),
		Skills:         e.Skills(text),
		Summary:        e.Summary(text),
		Experience:     e.Experience(text),
		Education:      e.Education(text),
		Languages:      e.Languages(text),
		Certifications: e.Certifications(text),
	}
}

// Name returns the first non-blank line among the leading lines that does
// not look like a label.
func (e *Extractor) Name(text string) string {
	lines := segment.Lines(text)
	if len(lines) > e.rules.NameLookahead {
		lines = lines[:e.rules.NameLookahead]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || containsWord(line, e.rules.LabelWords) {
			continue
		}
		return line
	}
	return ""
}

// Phone returns the first match of the first phone pattern that matches.
func (e *Extractor) Phone(text string) string {
	for _, re := range e.rules.PhonePatterns {
		if m := re.FindString(text); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

func (e *Extractor) Email(text string) string {
	return e.rules.EmailPattern.FindString(text)
}

// Skills splits the skills section into tokens longer than one rune.
func (e *Extractor) Skills(text string) []string {
	sec, ok := e.segmenter.Find(text, domain.SectionSkills)
	if !ok {
		return []string{}
	}
	out := []string{}
	for _, tok := range e.splitList(sec.Text) {
		if utf8.RuneCountInString(tok) > 1 {
			out = append(out, tok)
		}
	}
	return out
}

// Summary returns the opening section text, truncated.
func (e *Extractor) Summary(text string) string {
	sec, ok := e.segmenter.Find(text, domain.SectionSummary)
	if !ok {
		return ""
	}
	return truncate(sec.Text, e.rules.SummaryMaxLength)
}

func (e *Extractor) Experience(text string) []domain.ExperienceItem {
	return rawItems[domain.ExperienceRecord](e.entries(text, domain.SectionExperience, e.rules.ExperienceStarts))
}

func (e *Extractor) Education(text string) []domain.EducationItem {
	return rawItems[domain.EducationRecord](e.entries(text, domain.SectionEducation, e.rules.EducationStarts))
}

func (e *Extractor) Certifications(text string) []domain.CertificationItem {
	return rawItems[domain.CertificationRecord](e.entries(text, domain.SectionCertifications, e.rules.CertificationStarts))
}

func (e *Extractor) Languages(text string) []domain.LanguageItem {
	sec, ok := e.segmenter.Find(text, domain.SectionLanguages)
	if !ok {
		return []domain.LanguageItem{}
	}
	return rawItems[domain.LanguageRecord](e.splitList(sec.Text))
}

// entries splits a section into chunks, starting a new chunk at every line
// matching one of starts. Lines before the first start form their own chunk.
func (e *Extractor) entries(text string, name domain.SectionName, starts []*regexp.Regexp) []string {
	sec, ok := e.segmenter.Find(text, name)
	if !ok {
		return nil
	}

	var (
		chunks  []string
		current []string
	)
	flush := func() {
		if chunk := strings.TrimSpace(strings.Join(current, "\n")); chunk != "" {
			chunks = append(chunks, chunk)
		}
		current = current[:0]
	}
	for _, line := range segment.Lines(sec.Text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if matchesAny(line, starts) {
			flush()
		}
		current = append(current, line)
	}
	flush()
	return chunks
}

func (e *Extractor) splitList(text string) []string {
	seps := e.rules.ListSeparators
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || strings.ContainsRune(seps, r)
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(p), "-*"))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func rawItems[R any](chunks []string) []domain.Item[R] {
	items := make([]domain.Item[R], 0, len(chunks))
	for _, c := range chunks {
		items = append(items, domain.Raw[R](c))
	}
	return items
}

func matchesAny(line string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

func containsWord(line string, words []string) bool {
	lower := strings.ToLower(line)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
