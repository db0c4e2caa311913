package withdraw

import (
	"strings"

	"catalog-manager/feature/catalog/feed"
	"catalog-manager/feature/catalog/models"
)

// Report lists the local journals touched by a set of withdrawal notices,
// split into those the active policy allows deleting and those it does not.
type Report struct {
	Eligible []models.Journal `json:"eligible"`
	Ignored  []models.Journal `json:"ignored"`
}

// lookupNotice matches on the electronic identifier only. The notices are
// keyed by eISSN; a journal whose print ISSN happens to collide with a
// withdrawn eISSN must not be flagged.
func lookupNotice(notices map[string]feed.Notice, j *models.Journal) (feed.Notice, bool) {
	key := strings.TrimSpace(j.EISSN)
	if key == "" {
		return feed.Notice{}, false
	}
	n, ok := notices[key]
	return n, ok
}

// eligible reports whether the policy allows deleting a journal owned by the
// given publisher. A journal without a resolvable publisher is never
// eligible under the default policy.
func eligible(pub *models.Publisher, policy Policy) bool {
	if policy == PolicyForceIncludeAll {
		return true
	}
	if pub == nil {
		return false
	}
	if pub.IsDOAJ {
		return true
	}
	return pub.DOAJLinked && policy != PolicyForceExcludeLinked
}

// Match pairs the withdrawal notices with the local journals and applies the
// policy. Matched journals carry the notice's removal date and reason so the
// report can be shown to an operator before anything is deleted.
func Match(notices map[string]feed.Notice, journals []models.Journal, publishers map[int64]*models.Publisher, policy Policy) *Report {
	report := &Report{}
	for _, j := range journals {
		notice, ok := lookupNotice(notices, &j)
		if !ok {
			continue
		}
		j.WithdrawDate = notice.RemovalDate
		j.WithdrawReason = notice.Reason

		if eligible(publishers[j.PublisherID], policy) {
			report.Eligible = append(report.Eligible, j)
		} else {
			report.Ignored = append(report.Ignored, j)
		}
	}
	return report
}
