package models

import "time"

// TermType distinguishes semester-based and year-based curricula.
type TermType string

const (
	TermTypeSemester TermType = "SEMESTER"
	TermTypeYear     TermType = "YEAR"
)

// Term subdivides a syllabus into semesters or years. (syllabus, term_number)
// is unique and the slug is unique across all terms.
type Term struct {
	ID         string    `db:"id" json:"id"`
	SyllabusID string    `db:"syllabus_id" json:"syllabus_id"`
	TermNumber int       `db:"term_number" json:"term_number"`
	TermType   TermType  `db:"term_type" json:"term_type"`
	Name       string    `db:"name" json:"name"`
	Slug       string    `db:"slug" json:"slug"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// TermFilter captures supported filters for listing terms.
type TermFilter struct {
	SyllabusID string
}
