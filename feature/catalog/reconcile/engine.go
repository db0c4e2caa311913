package reconcile

import (
	"fmt"
	"strings"
	"time"

	"catalog-manager/feature/catalog/models"
)

// Index holds the local journals keyed by both identifiers. Lookups try the
// electronic identifier first and fall back to the print one.
type Index struct {
	byEISSN     map[string]*models.Journal
	byPrintISSN map[string]*models.Journal
	warnings    []string
}

// BuildIndex keys the given journals by electronic and print identifier.
// When two journals share a key the first one wins and a warning is
// recorded; the run is never aborted over a local duplicate.
func BuildIndex(journals []models.Journal) *Index {
	idx := &Index{
		byEISSN:     make(map[string]*models.Journal, len(journals)),
		byPrintISSN: make(map[string]*models.Journal, len(journals)),
	}
	for i := range journals {
		j := &journals[i]
		if key := strings.TrimSpace(j.EISSN); key != "" {
			if held, ok := idx.byEISSN[key]; ok {
				idx.warnings = append(idx.warnings, fmt.Sprintf(
					"duplicate e-ISSN %q: keeping journal %d (%s), ignoring journal %d (%s)",
					key, held.ID, held.Title, j.ID, j.Title))
			} else {
				idx.byEISSN[key] = j
			}
		}
		if key := strings.TrimSpace(j.PrintISSN); key != "" {
			if held, ok := idx.byPrintISSN[key]; ok {
				idx.warnings = append(idx.warnings, fmt.Sprintf(
					"duplicate print ISSN %q: keeping journal %d (%s), ignoring journal %d (%s)",
					key, held.ID, held.Title, j.ID, j.Title))
			} else {
				idx.byPrintISSN[key] = j
			}
		}
	}
	return idx
}

// Lookup finds the local counterpart of an external record, preferring the
// electronic identifier.
func (idx *Index) Lookup(j models.Journal) (*models.Journal, bool) {
	if key := strings.TrimSpace(j.EISSN); key != "" {
		if local, ok := idx.byEISSN[key]; ok {
			return local, true
		}
	}
	if key := strings.TrimSpace(j.PrintISSN); key != "" {
		if local, ok := idx.byPrintISSN[key]; ok {
			return local, true
		}
	}
	return nil, false
}

// Warnings returns the duplicate-key warnings collected while building the
// index.
func (idx *Index) Warnings() []string {
	return idx.warnings
}

// defaultValidTill is the expiry stamped on records created by a
// reconciliation run: the end of the current year.
func defaultValidTill(now time.Time) time.Time {
	return time.Date(now.Year(), time.December, 31, 23, 59, 59, 0, time.Local)
}

// Reconcile classifies every external record against the local catalog.
// Records without a local counterpart become New and are assigned to
// ownerForNew; records whose counterpart differs become Updated with the
// local identity carried over; the rest only count towards the summary.
func Reconcile(local, external []models.Journal, ownerForNew int64) *Plan {
	idx := BuildIndex(local)
	plan := &Plan{Warnings: idx.Warnings()}
	validTill := defaultValidTill(time.Now())

	for _, ext := range external {
		counterpart, ok := idx.Lookup(ext)
		if !ok {
			ext.ID = 0
			ext.PublisherID = ownerForNew
			ext.ValidTill = validTill
			plan.New = append(plan.New, ext)
			plan.Summary.New++
			continue
		}

		diff := ext.Differences(counterpart)
		if len(diff) == 0 {
			plan.Summary.Unchanged++
			continue
		}

		ext.ID = counterpart.ID
		ext.PublisherID = counterpart.PublisherID
		ext.ValidTill = counterpart.ValidTill
		plan.Updated = append(plan.Updated, UpdatedRecord{Journal: ext, Diff: diff})
		plan.Summary.Updated++
	}
	return plan
}
