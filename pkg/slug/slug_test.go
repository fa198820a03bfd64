package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	assert.Equal(t, "hello-world", Make("Hello World"))
	assert.Equal(t, "bn101-anatomy-physiology", Make("BN101  Anatomy & Physiology"))
	assert.Equal(t, "my-app-2-0", Make("My App 2.0!"))
	assert.Equal(t, "trailing", Make("--trailing--"))
	assert.Equal(t, "", Make("!!!"))
}

func TestJoinSkipsEmptyParts(t *testing.T) {
	assert.Equal(t, "bscn-1-bn101", Join("BSCN", "", "1", "BN101"))
	assert.Equal(t, "", Join("", "  "))
}

func TestWithSuffix(t *testing.T) {
	assert.Equal(t, "base", WithSuffix("base", 0))
	assert.Equal(t, "base", WithSuffix("base", 1))
	assert.Equal(t, "base-2", WithSuffix("base", 2))
	assert.Equal(t, "base-3", WithSuffix("base", 3))
}

func TestForSubjectFullContext(t *testing.T) {
	base := ForSubject(SubjectContext{ProgramShortName: "BSCN", TermNumber: 1, HasTermNumber: true}, "BN101", "Anatomy and Physiology")
	assert.Equal(t, "bscn-1-bn101", base)
}

func TestForSubjectDegradesWithMissingContext(t *testing.T) {
	// Unresolved relations shrink the slug instead of failing it.
	base := ForSubject(SubjectContext{}, "BN101", "Anatomy and Physiology")
	assert.Equal(t, "bn101", base)

	base = ForSubject(SubjectContext{}, "", "Anatomy and Physiology")
	assert.Equal(t, "anatomy-and-physiology", base)
}

func TestForSubjectNeverEmpty(t *testing.T) {
	assert.Equal(t, "subject", ForSubject(SubjectContext{}, "", ""))
	assert.Equal(t, "subject", ForSubject(SubjectContext{}, "!!!", ""))
}
