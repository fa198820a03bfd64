package dto

import "time"

// Kinds tagging entries in the latest-updates feed.
const (
	UpdateKindMaterial    = "Material"
	UpdateKindRecruitment = "Recruitment"
)

// UpdateItem is one entry in the merged latest-updates feed. CreatedAt is
// the effective timestamp: a material's upload time or a posting's
// publication time.
type UpdateItem struct {
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}
