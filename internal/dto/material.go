package dto

import (
	"time"

	"github.com/rguhub/catalog-api/internal/models"
)

// MaterialTypeRef is the embedded category object on material items.
type MaterialTypeRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// MaterialItem is the flattened material shape served by list and detail
// endpoints: subject fields inlined, category embedded.
type MaterialItem struct {
	ID           string           `json:"id"`
	SubjectID    string           `json:"subject_id"`
	SubjectCode  string           `json:"subject_code"`
	SubjectName  string           `json:"subject_name"`
	MaterialType *MaterialTypeRef `json:"material_type"`
	Title        string           `json:"title"`
	URL          string           `json:"url"`
	Description  string           `json:"description"`
	Year         *int             `json:"year,omitempty"`
	Month        *string          `json:"month,omitempty"`
	IsActive     bool             `json:"is_active"`
	CreatedAt    time.Time        `json:"created_at"`
}

// MaterialItemFromRow maps a joined repository row to the response shape.
func MaterialItemFromRow(row models.MaterialRow) MaterialItem {
	item := MaterialItem{
		ID:          row.ID,
		SubjectID:   row.SubjectID,
		SubjectCode: row.SubjectCode,
		SubjectName: row.SubjectName,
		Title:       row.Title,
		URL:         row.URL,
		Description: row.Description,
		Year:        row.Year,
		Month:       row.Month,
		IsActive:    row.IsActive,
		CreatedAt:   row.CreatedAt,
	}
	if row.MaterialTypeID != nil && row.TypeName != nil && row.TypeSlug != nil {
		item.MaterialType = &MaterialTypeRef{
			ID:   *row.MaterialTypeID,
			Name: *row.TypeName,
			Slug: *row.TypeSlug,
		}
	}
	return item
}

// MaterialItemsFromRows maps a result set, preserving order.
func MaterialItemsFromRows(rows []models.MaterialRow) []MaterialItem {
	items := make([]MaterialItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, MaterialItemFromRow(row))
	}
	return items
}
