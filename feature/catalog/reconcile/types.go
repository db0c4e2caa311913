package reconcile

import "catalog-manager/feature/catalog/models"

// Options controls how far a reconciliation run is allowed to go. DryRun
// reports the computed changes without writing; Confirmed must be set for
// anything to reach the database.
type Options struct {
	DryRun    bool
	Confirmed bool
}

// UpdatedRecord pairs a journal whose external record differs from the local
// one with the exact field-level differences.
type UpdatedRecord struct {
	Journal models.Journal `json:"journal"`
	Diff    models.Diff    `json:"diff"`
}

// Summary counts the outcome of a reconciliation pass over the external
// records.
type Summary struct {
	New       int `json:"new"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
}

// Plan is the full result of comparing the external records against the
// local catalog. It is safe to inspect and report without touching the
// database; Apply turns it into writes.
type Plan struct {
	New      []models.Journal `json:"new"`
	Updated  []UpdatedRecord  `json:"updated"`
	Warnings []string         `json:"warnings"`
	Summary  Summary          `json:"summary"`
}
