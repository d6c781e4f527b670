package bibtexvcs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseTestName(t *testing.T, s string) Name {
	t.Helper()
	n, err := ParseName(s)
	require.NoError(t, err)
	return n
}

func TestCommaName(t *testing.T) {
	n := parseTestName(t, "Helmling, Michael")
	assert.Equal(t, Name{First: "Michael", Last: "Helmling"}, n)
}

func TestNobility(t *testing.T) {
	n := parseTestName(t, "van der Zalm, E.")
	assert.Equal(t, Name{First: "E.", Nobility: "van der", Last: "Zalm"}, n)

	n = parseTestName(t, "van Emde Boas, P.")
	assert.Equal(t, Name{First: "P.", Nobility: "van", Last: "Emde Boas"}, n)
}

func TestAllLowercaseLastName(t *testing.T) {
	// when every part before the comma is lowercase, none of them is nobility
	n := parseTestName(t, "van der zalm, E.")
	assert.Equal(t, Name{First: "E.", Last: "van der zalm"}, n)
}

func TestSuffix(t *testing.T) {
	n := parseTestName(t, "Forney, Jr., David G.")
	assert.Equal(t, Name{First: "David G.", Last: "Forney", Suffix: "Jr."}, n)
}

func TestLiteralName(t *testing.T) {
	n := parseTestName(t, "Michael Jakob Helmling")
	assert.Equal(t, Name{First: "Michael Jakob", Last: "Helmling"}, n)

	n = parseTestName(t, "Helmling")
	assert.Equal(t, Name{Last: "Helmling"}, n)
}

func TestHyphenatedName(t *testing.T) {
	n := parseTestName(t, "Jean-Pierre O'Neill")
	assert.Equal(t, Name{First: "Jean-Pierre", Last: "O'Neill"}, n)
}

func TestCurlyName(t *testing.T) {
	n := parseTestName(t, "{Ministry of Truth and Justice}")
	assert.Equal(t, Name{Last: "Ministry of Truth and Justice"}, n)
}

func TestSingleNameRejectsSeparator(t *testing.T) {
	_, err := ParseName("Helmling, Michael and Smith, John")
	require.Error(t, err)
}

func TestNameRejectsBareAnd(t *testing.T) {
	_, err := ParseName("and")
	require.Error(t, err)
	_, err = ParseNameList("{Helmling, Michael and}")
	require.Error(t, err)
}

func TestTooManyCommas(t *testing.T) {
	_, err := ParseName("a, b, c, d")
	require.Error(t, err)
}

func TestNameList(t *testing.T) {
	names, err := ParseNameList("{{Ministry of Truth and Justice} and Helmling, Michael}")
	require.NoError(t, err)
	require.Len(t, names, 2)
	assert.Equal(t, "Ministry of Truth and Justice", names[0].Last)
	assert.Equal(t, "", names[0].First)
	assert.Equal(t, "Helmling", names[1].Last)
	assert.Equal(t, "Michael", names[1].First)
}

func TestNameListWithoutBraces(t *testing.T) {
	names, err := ParseNameList("Smith, John and Doe, Jane")
	require.NoError(t, err)
	require.Len(t, names, 2)
	assert.Equal(t, "Doe", names[1].Last)
}

func TestNameListCaseInsensitiveSeparator(t *testing.T) {
	names, err := ParseNameList("{Smith, John AND Doe, Jane}")
	require.NoError(t, err)
	require.Len(t, names, 2)
}

func TestLeadingGroupDoesNotEatList(t *testing.T) {
	// the first brace group is a name part, not the whole list
	names, err := ParseNameList("{Ministry of Truth and Justice} and Helmling, Michael")
	require.NoError(t, err)
	require.Len(t, names, 2)
}

func TestNameStrings(t *testing.T) {
	assert.Equal(t, "E. van der Zalm", Name{First: "E.", Nobility: "van der", Last: "Zalm"}.String())
	assert.Equal(t, "David G. Forney, Jr.", Name{First: "David G.", Last: "Forney", Suffix: "Jr."}.String())
}
