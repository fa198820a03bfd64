package models

import "time"

// Material is an uploaded or linked study resource tied to a subject.
// Title and URL are auto-filled from the uploaded file; year and month tag
// time-stamped papers. CreatedAt is set once at creation and never updated.
type Material struct {
	ID             string    `db:"id" json:"id"`
	SubjectID      string    `db:"subject_id" json:"subject_id"`
	MaterialTypeID *string   `db:"material_type_id" json:"material_type_id,omitempty"`
	Title          string    `db:"title" json:"title"`
	FilePath       string    `db:"file_path" json:"-"`
	URL            string    `db:"url" json:"url"`
	Description    string    `db:"description" json:"description"`
	Year           *int      `db:"year" json:"year,omitempty"`
	Month          *string   `db:"month" json:"month,omitempty"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// MaterialRow is a material joined with its subject and optional type,
// the flattened shape list and detail endpoints serve.
type MaterialRow struct {
	Material
	SubjectCode string  `db:"subject_code" json:"subject_code"`
	SubjectName string  `db:"subject_name" json:"subject_name"`
	TypeName    *string `db:"type_name" json:"-"`
	TypeSlug    *string `db:"type_slug" json:"-"`
}

// MaterialFilter captures the query parameters recognised by the material
// list endpoint. Both are optional and AND-composed.
type MaterialFilter struct {
	SubjectSlug string
	TypeSlug    string
}
