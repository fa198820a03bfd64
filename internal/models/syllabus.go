package models

import "time"

// Syllabus is a curriculum version under a program (e.g. "CBCS 2022").
// (program, name) is unique.
type Syllabus struct {
	ID            string     `db:"id" json:"id"`
	ProgramID     string     `db:"program_id" json:"program_id"`
	Name          string     `db:"name" json:"name"`
	EffectiveFrom *time.Time `db:"effective_from" json:"effective_from,omitempty"`
	EffectiveTo   *time.Time `db:"effective_to" json:"effective_to,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// SyllabusFilter captures supported filters for listing syllabi.
type SyllabusFilter struct {
	ProgramID string
}
