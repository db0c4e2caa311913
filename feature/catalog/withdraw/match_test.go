package withdraw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-manager/feature/catalog/feed"
	"catalog-manager/feature/catalog/models"
)

func testNotices() map[string]feed.Notice {
	return map[string]feed.Notice{
		"1432-0525": {Title: "Acta Informatica", ISSN: "1432-0525", RemovalDate: "01/06/2024", Reason: "Ceased publishing"},
		"1111-2222": {Title: "Plain Review", ISSN: "1111-2222", RemovalDate: "12/05/2024", Reason: "Inactivity"},
		"3333-4444": {Title: "Linked Journal", ISSN: "3333-4444", RemovalDate: "20/04/2024", Reason: "Inactivity"},
	}
}

func testJournals() []models.Journal {
	return []models.Journal{
		{ID: 1, Title: "Acta Informatica", EISSN: "1432-0525", PublisherID: 10},
		{ID: 2, Title: "Plain Review", EISSN: "1111-2222", PublisherID: 20},
		{ID: 3, Title: "Linked Journal", EISSN: "3333-4444", PublisherID: 30},
		{ID: 4, Title: "Untouched", EISSN: "5555-6666", PublisherID: 10},
	}
}

func testPublishers() map[int64]*models.Publisher {
	return map[int64]*models.Publisher{
		10: {ID: 10, Name: "Directory Press", IsDOAJ: true},
		20: {ID: 20, Name: "Plain Press"},
		30: {ID: 30, Name: "Linked Press", DOAJLinked: true},
	}
}

func TestMatch_RespectLinking(t *testing.T) {
	report := Match(testNotices(), testJournals(), testPublishers(), PolicyRespectLinking)

	require.Len(t, report.Eligible, 2)
	assert.Equal(t, int64(1), report.Eligible[0].ID)
	assert.Equal(t, int64(3), report.Eligible[1].ID)

	require.Len(t, report.Ignored, 1)
	assert.Equal(t, int64(2), report.Ignored[0].ID)
}

func TestMatch_ForceIncludeAll(t *testing.T) {
	report := Match(testNotices(), testJournals(), testPublishers(), PolicyForceIncludeAll)

	assert.Len(t, report.Eligible, 3)
	assert.Empty(t, report.Ignored)
}

func TestMatch_ForceExcludeLinked(t *testing.T) {
	report := Match(testNotices(), testJournals(), testPublishers(), PolicyForceExcludeLinked)

	require.Len(t, report.Eligible, 1)
	assert.Equal(t, int64(1), report.Eligible[0].ID)

	require.Len(t, report.Ignored, 2)
}

func TestMatch_CarriesNoticeDetails(t *testing.T) {
	report := Match(testNotices(), testJournals(), testPublishers(), PolicyRespectLinking)

	require.NotEmpty(t, report.Eligible)
	assert.Equal(t, "01/06/2024", report.Eligible[0].WithdrawDate)
	assert.Equal(t, "Ceased publishing", report.Eligible[0].WithdrawReason)
}

func TestMatch_PrintIdentifierNeverMatches(t *testing.T) {
	// The notices are keyed by eISSN; a print ISSN colliding with a withdrawn
	// eISSN must not get the journal deleted.
	journals := []models.Journal{
		{ID: 7, Title: "Collision Quarterly", PrintISSN: "1432-0525", EISSN: "9999-8888", PublisherID: 10},
	}

	report := Match(testNotices(), journals, testPublishers(), PolicyRespectLinking)
	assert.Empty(t, report.Eligible)
	assert.Empty(t, report.Ignored)

	report = Match(testNotices(), journals, testPublishers(), PolicyForceIncludeAll)
	assert.Empty(t, report.Eligible)
}

func TestMatch_UnknownPublisherIsNeverEligibleByDefault(t *testing.T) {
	journals := []models.Journal{
		{ID: 9, Title: "Orphan", EISSN: "1432-0525", PublisherID: 777},
	}

	report := Match(testNotices(), journals, testPublishers(), PolicyRespectLinking)
	assert.Empty(t, report.Eligible)
	require.Len(t, report.Ignored, 1)

	report = Match(testNotices(), journals, testPublishers(), PolicyForceIncludeAll)
	assert.Len(t, report.Eligible, 1)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("respect-linking")
	require.NoError(t, err)
	assert.Equal(t, PolicyRespectLinking, p)

	_, err = ParsePolicy("everything")
	assert.Error(t, err)
}
