package segment

import (
	"strings"
	"testing"

	"github.com/hireflow/hireflow-backend/internal/cvparsing/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCV = `JOHN DOE
Software Engineer
Phone: (555) 123-4567

SUMMARY
Software engineer with 5 years in web development.

SKILLS
Python, JavaScript, React

EXPERIENCE
Senior Developer at Tech Corp (2020-2023)
- Built things

EDUCATION
Bachelor of Science in Computer Science`

func TestSegmenter_Find(t *testing.T) {
	s := New(DefaultRules())

	tests := []struct {
		name     domain.SectionName
		wantText string
	}{
		{domain.SectionSummary, "Software engineer with 5 years in web development."},
		{domain.SectionSkills, "Python, JavaScript, React"},
		{domain.SectionExperience, "Senior Developer at Tech Corp (2020-2023)\n- Built things"},
		{domain.SectionEducation, "Bachelor of Science in Computer Science"},
	}

	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			sec, ok := s.Find(sampleCV, tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.name, sec.Name)
			assert.Equal(t, tt.wantText, sec.Text)
		})
	}
}

func TestSegmenter_Find_Absent(t *testing.T) {
	s := New(DefaultRules())

	_, ok := s.Find(sampleCV, domain.SectionLanguages)
	assert.False(t, ok)

	_, ok = s.Find("", domain.SectionSkills)
	assert.False(t, ok)

	_, ok = s.Find(sampleCV, "hobbies")
	assert.False(t, ok)
}

func TestSegmenter_Find_LineRange(t *testing.T) {
	s := New(DefaultRules())

	sec, ok := s.Find("Name\nSKILLS\nGo\nSQL\nEDUCATION\nBSc", domain.SectionSkills)
	require.True(t, ok)
	assert.Equal(t, 2, sec.StartLine)
	assert.Equal(t, 4, sec.EndLine)
	assert.Equal(t, "Go\nSQL", sec.Text)
}

func TestSegmenter_Find_RunsToEndOfDocument(t *testing.T) {
	s := New(DefaultRules())

	sec, ok := s.Find("LANGUAGES\nEnglish\nGerman", domain.SectionLanguages)
	require.True(t, ok)
	assert.Equal(t, 3, sec.EndLine)
	assert.Equal(t, "English\nGerman", sec.Text)
}

func TestSegmenter_Find_LongKeywordLineDoesNotTerminate(t *testing.T) {
	s := New(DefaultRules())

	body := "Worked closely with the education team on onboarding material for new hires"
	require.GreaterOrEqual(t, len(body), DefaultHeadingMaxLength)

	sec, ok := s.Find("EXPERIENCE\nAnalyst at Acme\n"+body+"\nEDUCATION\nMSc", domain.SectionExperience)
	require.True(t, ok)
	assert.Equal(t, "Analyst at Acme\n"+body, sec.Text)
}

func TestSegmenter_Find_FirstKeywordLineIsHeading(t *testing.T) {
	s := New(DefaultRules())

	text := "JOHN DOE\nSUMMARY\nExperienced software engineer with 5 years of experience in web development.\nSKILLS\nPython, Go\nEXPERIENCE\nSenior Developer at Tech Corp (2020-2023)\n"

	// The summary sentence mentions "experience" and wins over the real
	// heading, however long it is.
	sec, ok := s.Find(text, domain.SectionExperience)
	require.True(t, ok)
	assert.Equal(t, 3, sec.StartLine)
	assert.Equal(t, 3, sec.EndLine)
	assert.Empty(t, sec.Text)

	sec, ok = s.Find("Experienced engineer with a long track record of delivering projects\nEXPERIENCE\nDev at Acme", domain.SectionExperience)
	require.True(t, ok)
	assert.Equal(t, 1, sec.StartLine)
	assert.Equal(t, "EXPERIENCE\nDev at Acme", sec.Text)
}

func TestSegmenter_Find_TerminatesOnMinorSections(t *testing.T) {
	s := New(DefaultRules())

	sec, ok := s.Find("SKILLS\nGo\nPROJECTS\nhireflow", domain.SectionSkills)
	require.True(t, ok)
	assert.Equal(t, "Go", sec.Text)

	sec, ok = s.Find("SKILLS\nGo\nAwards\nBest paper", domain.SectionSkills)
	require.True(t, ok)
	assert.Equal(t, "Go", sec.Text)
}

func TestSegmenter_Find_SummaryFallsBackToSkills(t *testing.T) {
	s := New(DefaultRules())

	sec, ok := s.Find("Jane\nSKILLS\nGo, SQL\nEXPERIENCE\nDev at Acme", domain.SectionSummary)
	require.True(t, ok)
	assert.Equal(t, "Go, SQL", sec.Text)
}

func TestSegmenter_Find_SectionsSearchedIndependently(t *testing.T) {
	s := New(DefaultRules())

	// One line belongs to two vocabularies; each search claims it.
	text := "Education and Certifications\nBSc Physics\nAWS Solutions Architect"
	edu, ok := s.Find(text, domain.SectionEducation)
	require.True(t, ok)
	cert, ok := s.Find(text, domain.SectionCertifications)
	require.True(t, ok)

	assert.Equal(t, edu.StartLine, cert.StartLine)
	assert.Equal(t, "BSc Physics\nAWS Solutions Architect", edu.Text)
	assert.Equal(t, edu.Text, cert.Text)
}

func TestSegmenter_CustomRules(t *testing.T) {
	rules := Rules{
		Keywords: map[domain.SectionName][]string{domain.SectionSkills: {"  KENNTNISSE "}},
		Headings: map[domain.SectionName][]string{
			domain.SectionSkills:    {"kenntnisse"},
			domain.SectionEducation: {"ausbildung"},
		},
	}
	s := New(rules)

	sec, ok := s.Find("Kenntnisse\nGo\nAusbildung\nBSc", domain.SectionSkills)
	require.True(t, ok)
	assert.Equal(t, "Go", sec.Text)

	_, ok = s.Find("Skills\nGo", domain.SectionSkills)
	assert.False(t, ok)
}

func TestSegmenter_HeadingLengthIsConfigurable(t *testing.T) {
	rules := DefaultRules()
	rules.HeadingMaxLength = 5
	s := New(rules)

	// "EDUCATION" is 9 runes and no longer counts as a heading.
	sec, ok := s.Find("SKILLS\nGo\nEDUCATION\nBSc", domain.SectionSkills)
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(sec.Text, "BSc"))
}
