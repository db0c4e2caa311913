package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDifferences(t *testing.T) {
	a := &Journal{Title: "Acta Informatica", URL: "https://example.org/acta", PrintISSN: "0001-5903", EISSN: "1432-0525"}
	b := &Journal{Title: "Acta Informatica", URL: "https://example.org/acta-new", PrintISSN: "0001-5903", EISSN: "1432-0525"}

	diff := a.Differences(b)
	assert.Len(t, diff, 1)
	assert.Equal(t, "https://example.org/acta", diff["url"].New)
	assert.Equal(t, "https://example.org/acta-new", diff["url"].Old)
}

func TestDifferences_TrimmedAndEmptyEquivalence(t *testing.T) {
	a := &Journal{Title: " Acta Informatica ", PrintISSN: ""}
	b := &Journal{Title: "Acta Informatica", PrintISSN: "  "}

	assert.Empty(t, a.Differences(b))
}

func TestLinkTypeSort(t *testing.T) {
	assert.Equal(t, 0, LinkTypePublisher.Sort())
	assert.Equal(t, 4, LinkTypeTitlesXLSX.Sort())
	assert.Equal(t, 5, LinkType("bogus").Sort())
}

func TestOAStatusLabel(t *testing.T) {
	assert.Equal(t, "Gold", OAStatusGold.Label())
	assert.True(t, OAStatus("").Valid())
	assert.False(t, OAStatus("platinum").Valid())
}
