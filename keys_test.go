package bibtexvcs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindDuplicatesByKey(t *testing.T) {
	a := parseTestString(t, `@misc{shared, title = {A}} @misc{onlyA, title = {B}}`, Options{})
	b := parseTestString(t, `@misc{shared, title = {C}}`, Options{})

	dups := FindDuplicates([]*Document{a, b}, nil)
	require.Len(t, dups, 1)
	require.Len(t, dups["shared"], 2)

	assert.False(t, UniqueKeys(a, b))
	assert.True(t, UniqueKeys(a))
}

func TestFindDuplicatesByFields(t *testing.T) {
	a := parseTestString(t, `@misc{x, title = {Same Title!}, year = 2014}
		@misc{y, title = {same title}, year = 2014}
		@misc{z, title = {Other}, year = 2014}`, Options{})

	dups := FindDuplicates([]*Document{a}, []string{"title", "year"})
	require.Len(t, dups, 1)
	for _, entries := range dups {
		assert.Len(t, entries, 2)
	}
}

func TestNewCiteKey(t *testing.T) {
	doc := parseTestString(t,
		`@article{k, author = {Helmling, Michael}, year = 2014, title = {Bibtex under control}, volume = {4}}`,
		Options{})
	assert.Equal(t, "helmling2014bibtexa4", NewCiteKey(doc.Entry("k")))
}

func TestNewCiteKeyLiteralAuthor(t *testing.T) {
	doc := parseTestString(t, `@misc{k, author = "Helmling, Michael", year = 2020, title = {Notes}}`, Options{})
	assert.Equal(t, "helmling2020notesm", NewCiteKey(doc.Entry("k")))
}

func TestUndefinedMacros(t *testing.T) {
	doc := parseTestString(t, `@string{known = {x}}
		@misc{k, journal = jrnl, note = "a" # known # "b" # other}`, Options{})
	assert.Equal(t, []string{"jrnl", "other"}, doc.UndefinedMacros())

	doc = parseTestString(t, `@misc{k, title = {T}}`, Options{})
	assert.Empty(t, doc.UndefinedMacros())
}
