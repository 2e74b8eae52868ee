package testutil

import (
	"fmt"

	"github.com/google/uuid"
)

// SampleCVText is a small plain-text résumé with every recognised section
const SampleCVText = `JOHN DOE
Software Engineer
Phone: (555) 123-4567
Email: john.doe@email.com

SUMMARY
Software engineer with 5 years in web development.

SKILLS
Python, JavaScript, React, Node.js, SQL

EXPERIENCE
Senior Developer at Tech Corp (2020-2023)
- Developed web applications using React and Node.js
- Led team of 3 developers

Junior Developer at Startup Inc (2018-2020)
- Built REST APIs using Python Flask

EDUCATION
Bachelor of Science in Computer Science
University of Technology (2014-2018)

LANGUAGES
English, German

CERTIFICATIONS
AWS Certified Developer 2021
`

// ProseOnlyText has no recognisable headings
const ProseOnlyText = "i have spent a decade building software for small shops and like quiet mornings."

// UserFixture represents an authenticated caller
type UserFixture struct {
	ID          string
	Email       string
	Role        string
	Permissions []string
}

// CVFixture represents one uploaded document
type CVFixture struct {
	Filename string
	Content  []byte
}

// FixtureFactory creates test fixtures with sensible defaults
type FixtureFactory struct {
	sequence int
}

// NewFixtureFactory creates a new fixture factory
func NewFixtureFactory() *FixtureFactory {
	return &FixtureFactory{sequence: 0}
}

// nextSeq returns the next sequence number for unique values
func (f *FixtureFactory) nextSeq() int {
	f.sequence++
	return f.sequence
}

// User creates a job seeker allowed to parse CVs
func (f *FixtureFactory) User(opts ...func(*UserFixture)) UserFixture {
	seq := f.nextSeq()

	user := UserFixture{
		ID:          uuid.New().String(),
		Email:       fmt.Sprintf("user%d@test.hireflow.dev", seq),
		Role:        "job_seeker",
		Permissions: []string{"cv.parse"},
	}

	for _, opt := range opts {
		opt(&user)
	}

	return user
}

// WithRole sets the role and permissions of a user fixture
func WithRole(role string, permissions ...string) func(*UserFixture) {
	return func(u *UserFixture) {
		u.Role = role
		u.Permissions = permissions
	}
}

// CV creates a plain-text CV upload
func (f *FixtureFactory) CV(opts ...func(*CVFixture)) CVFixture {
	seq := f.nextSeq()

	cv := CVFixture{
		Filename: fmt.Sprintf("resume_%d.txt", seq),
		Content:  []byte(SampleCVText),
	}

	for _, opt := range opts {
		opt(&cv)
	}

	return cv
}

// WithFilename sets the upload's filename
func WithFilename(name string) func(*CVFixture) {
	return func(c *CVFixture) {
		c.Filename = name
	}
}

// WithContent sets the upload's bytes
func WithContent(content []byte) func(*CVFixture) {
	return func(c *CVFixture) {
		c.Content = content
	}
}
