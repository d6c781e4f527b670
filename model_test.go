package bibtexvcs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilename(t *testing.T) {
	doc := parseTestString(t, `@misc{k, file = {:papers/helmling2014\;rev.pdf:PDF}}`, Options{})
	fname, err := doc.Entry("k").Filename()
	require.NoError(t, err)
	assert.Equal(t, "papers/helmling2014;rev.pdf", fname)
}

func TestFilenameAbsent(t *testing.T) {
	doc := parseTestString(t, `@misc{k, title = {T}}`, Options{})
	fname, err := doc.Entry("k").Filename()
	require.NoError(t, err)
	assert.Equal(t, "", fname)
}

func TestFilenameMalformed(t *testing.T) {
	doc := parseTestString(t, `@misc{k, file = {helmling.pdf}}`, Options{})
	_, err := doc.Entry("k").Filename()
	require.Error(t, err)
	var ferr *FormatError
	require.ErrorAs(t, err, &ferr)
	assert.Contains(t, err.Error(), "k")
}

func TestDOIURL(t *testing.T) {
	doc := parseTestString(t, `@misc{k, doi = {10.1038/nenergy.2016.151}}`, Options{})
	assert.Equal(t, "http://dx.doi.org/10.1038/nenergy.2016.151", doc.Entry("k").DOIURL())

	doc = parseTestString(t, `@misc{k, title = {T}}`, Options{})
	assert.Equal(t, "", doc.Entry("k").DOIURL())
}

func TestDateString(t *testing.T) {
	doc := parseTestString(t, `@misc{k, date = {2014-07-01}, month = feb, year = 2014}`, Options{})
	assert.Equal(t, "2014-07-01", doc.Entry("k").DateString(doc))

	doc = parseTestString(t, `@string{feb = {February}} @misc{k, month = feb, year = 2014}`, Options{})
	assert.Equal(t, "February 2014", doc.Entry("k").DateString(doc))

	// undefined month macros render as their name
	doc = parseTestString(t, `@misc{k, month = feb, year = 2014}`, Options{})
	assert.Equal(t, "feb 2014", doc.Entry("k").DateString(doc))

	doc = parseTestString(t, `@misc{k, year = 2014}`, Options{})
	assert.Equal(t, "2014", doc.Entry("k").DateString(doc))
}

func TestLastNames(t *testing.T) {
	doc := parseTestString(t,
		`@misc{k, author = {van der Zalm, E. and Forney, Jr., David G. and Smith, John}}`,
		Options{})
	e := doc.Entry("k")
	assert.Equal(t, "van der Zalm, Forney Jr., Smith", e.LastNames("author", 0))
	assert.Equal(t, "van der Zalm, Forney Jr. et al.", e.LastNames("author", 2))
	assert.Equal(t, "", e.LastNames("editor", 2))
}

func TestTextify(t *testing.T) {
	doc := parseTestString(t, `@string{ab = {a} # {b}}
		@string{self = self}
		@misc{k, note = "x " # ab # " y"}`, Options{})
	assert.Equal(t, "x ab y", doc.Textify(doc.Entry("k").Field("note")))
	// cyclic definitions terminate
	assert.Equal(t, "self", doc.Textify(MacroReference{Name: "self"}))
	// nil documents resolve nothing
	var nildoc *Document
	assert.Equal(t, "jrnl", nildoc.Textify(MacroReference{Name: "jrnl"}))
}

func TestDocumentMutation(t *testing.T) {
	doc := parseTestString(t, `@misc{a, title = {A}} @misc{b, title = {B}}`, Options{})
	require.True(t, doc.RemoveEntry("a"))
	require.False(t, doc.RemoveEntry("a"))
	assert.Equal(t, []string{"b"}, doc.Keys())

	e := &Entry{Type: "misc", Key: "c"}
	e.SetField("Title", Text("C"))
	doc.AddEntry(e)
	assert.Equal(t, []string{"b", "c"}, doc.Keys())
	assert.Equal(t, Text("C"), doc.Entry("c").Field("TITLE"))
}

func TestNewDocumentEmpty(t *testing.T) {
	doc := NewDocument()
	assert.Equal(t, 0, doc.Len())
	assert.Nil(t, doc.Entry("x"))
	assert.Nil(t, doc.Macro("x"))
}
