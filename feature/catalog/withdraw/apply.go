package withdraw

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"catalog-manager/feature/catalog/reconcile"
)

// Deleter is the slice of the repository a withdrawal run needs to remove
// the eligible journals.
type Deleter interface {
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	DeleteJournal(ctx context.Context, id int64, tx *gorm.DB) (int64, error)
}

// Apply deletes every eligible journal of the report in a single
// transaction and returns the number of rows removed. Nothing is deleted
// unless the run is confirmed and not a dry run.
func Apply(ctx context.Context, deleter Deleter, report *Report, opts reconcile.Options) (int64, error) {
	if !opts.Confirmed || opts.DryRun {
		return 0, nil
	}
	if len(report.Eligible) == 0 {
		return 0, nil
	}

	var removed int64
	err := deleter.Transaction(ctx, func(tx *gorm.DB) error {
		for _, j := range report.Eligible {
			n, err := deleter.DeleteJournal(ctx, j.ID, tx)
			if err != nil {
				return fmt.Errorf("failed to delete journal %d: %w", j.ID, err)
			}
			removed += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
