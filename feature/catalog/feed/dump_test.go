package feed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDump(t *testing.T) {
	csv := `Journal title,URL in DOAJ,Journal ISSN (print version),Journal EISSN (online version),Added on Date,Last updated Date
Acta Informatica,https://example.org/acta,0001-5903,1432-0525,2019-01-01,2024-06-01
Open Physics,https://example.org/phys,,2391-5471,2020-03-12,2024-05-20
`

	journals, err := ParseDump(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, journals, 2)

	assert.Equal(t, "Acta Informatica", journals[0].Title)
	assert.Equal(t, "https://example.org/acta", journals[0].URL)
	assert.Equal(t, "0001-5903", journals[0].PrintISSN)
	assert.Equal(t, "1432-0525", journals[0].EISSN)

	assert.Equal(t, "", journals[1].PrintISSN)
	assert.Equal(t, "2391-5471", journals[1].EISSN)
}

func TestParseDump_MissingOptionalColumns(t *testing.T) {
	csv := `Journal title,Journal EISSN (online version)
Acta Informatica,1432-0525
`

	journals, err := ParseDump(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, journals, 1)
	assert.Equal(t, "Acta Informatica", journals[0].Title)
	assert.Equal(t, "1432-0525", journals[0].EISSN)
	assert.Equal(t, "", journals[0].URL)
	assert.Equal(t, "", journals[0].PrintISSN)
}

func TestParseDump_MissingTitleColumn(t *testing.T) {
	csv := `Some column,Journal EISSN (online version)
foo,1432-0525
`

	_, err := ParseDump(strings.NewReader(csv))
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.NotEmpty(t, formatErr.Reasons)
}

func TestParseDump_Empty(t *testing.T) {
	journals, err := ParseDump(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, journals)
}
