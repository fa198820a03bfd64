package models

import "time"

// JobType distinguishes employment kinds for postings.
type JobType string

const (
	JobTypeFullTime   JobType = "FT"
	JobTypePartTime   JobType = "PT"
	JobTypeInternship JobType = "IN"
)

// Recruitment is a job posting tied to a program. PostedOn is set once at
// creation; listings order by it descending.
type Recruitment struct {
	ID           string     `db:"id" json:"id"`
	ProgramID    string     `db:"program_id" json:"program_id"`
	CompanyName  string     `db:"company_name" json:"company_name"`
	Position     string     `db:"position" json:"position"`
	Location     string     `db:"location" json:"location"`
	JobType      JobType    `db:"job_type" json:"job_type"`
	Description  string     `db:"description" json:"description"`
	Requirements string     `db:"requirements" json:"requirements"`
	Salary       *string    `db:"salary" json:"salary,omitempty"`
	Deadline     *time.Time `db:"deadline" json:"deadline,omitempty"`
	ApplyLink    string     `db:"apply_link" json:"apply_link"`
	PostedOn     time.Time  `db:"posted_on" json:"posted_on"`
}

// RecruitmentRow is a posting joined with its program name.
type RecruitmentRow struct {
	Recruitment
	ProgramName string `db:"program_name" json:"program_name"`
}

// RecruitmentFilter captures the query parameters recognised by the
// recruitment list endpoint.
type RecruitmentFilter struct {
	Program string
}
