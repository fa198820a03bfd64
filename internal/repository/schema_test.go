package repository

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableDDL(t *testing.T, schema, table string) string {
	t.Helper()
	re := regexp.MustCompile(`(?s)CREATE TABLE ` + table + ` \((.*?)\);`)
	m := re.FindStringSubmatch(schema)
	require.NotNil(t, m, "table %s missing from schema", table)
	return m[1]
}

// Deleting a program must take its syllabi, terms, subjects and materials
// with it, and deleting a subject only its own materials. That lives in the
// schema, so pin the referential actions down here.
func TestSchemaDeclaresReferentialActions(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("..", "..", "migrations", "0001_init.sql"))
	require.NoError(t, err)
	schema := string(raw)

	tests := []struct {
		table  string
		column string
		parent string
		action string
	}{
		{"syllabi", "program_id", "programs", "ON DELETE CASCADE"},
		{"terms", "syllabus_id", "syllabi", "ON DELETE CASCADE"},
		{"subjects", "term_id", "terms", "ON DELETE CASCADE"},
		{"materials", "subject_id", "subjects", "ON DELETE CASCADE"},
		{"materials", "material_type_id", "material_types", "ON DELETE SET NULL"},
		{"recruitments", "program_id", "programs", "ON DELETE CASCADE"},
	}

	for _, tt := range tests {
		t.Run(tt.table+"."+tt.column, func(t *testing.T) {
			ddl := tableDDL(t, schema, tt.table)
			fk := regexp.MustCompile(tt.column + `\s+UUID[^,\n]*REFERENCES ` + tt.parent + ` \(id\) ` + tt.action)
			assert.True(t, fk.MatchString(ddl),
				"%s.%s must declare REFERENCES %s (id) %s", tt.table, tt.column, tt.parent, tt.action)
		})
	}
}
