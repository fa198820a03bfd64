package models

import "time"

// SubjectType classifies how a subject is taught.
type SubjectType string

const (
	SubjectTypeTheory    SubjectType = "THEORY"
	SubjectTypePractical SubjectType = "PRACTICAL"
	SubjectTypeClinical  SubjectType = "CLINICAL"
)

// Subject is a course offered within a term. (term, code) is unique and the
// slug is unique across all subjects; the slug is derived at creation time
// when not supplied and never recomputed afterwards.
type Subject struct {
	ID          string      `db:"id" json:"id"`
	TermID      string      `db:"term_id" json:"term_id"`
	Code        string      `db:"code" json:"code"`
	Name        string      `db:"name" json:"name"`
	SubjectType SubjectType `db:"subject_type" json:"subject_type"`
	Slug        string      `db:"slug" json:"slug"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updated_at"`
}

// SubjectRow is a subject joined with its term context and material count,
// the shape list and detail endpoints serve.
type SubjectRow struct {
	Subject
	TermSlug       string `db:"term_slug" json:"term_slug"`
	MaterialsCount int    `db:"materials_count" json:"materials_count"`
}

// SubjectFilter carries the raw, unvalidated query parameters recognised by
// the subject list endpoint.
type SubjectFilter struct {
	Course string
	Sem    string
	Year   string
}

// SubjectPredicate is the resolved relational filter applied to the subject
// collection. A zero value matches everything.
type SubjectPredicate struct {
	Course     string
	ByTerm     bool
	TermType   TermType
	TermNumber int
}
