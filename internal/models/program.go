package models

import "time"

// Program represents an academic program offered by the university,
// e.g. a 4-year nursing degree. It is the root of the catalog hierarchy:
// deleting a program cascades to its syllabi, terms, subjects and materials.
type Program struct {
	ID            string    `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	ShortName     string    `db:"short_name" json:"short_name"`
	DurationYears int       `db:"duration_years" json:"duration_years"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
