package reconcile

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"catalog-manager/feature/catalog/models"
)

// Saver is the slice of the repository a reconciliation run needs to write
// its plan.
type Saver interface {
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	SaveJournal(ctx context.Context, journal *models.Journal, tx *gorm.DB) error
}

// Apply writes a plan's new and updated journals in a single transaction and
// returns the number of records written. Nothing is written unless the run
// is confirmed and not a dry run; the plan itself is never modified.
func Apply(ctx context.Context, saver Saver, plan *Plan, opts Options) (int, error) {
	if !opts.Confirmed || opts.DryRun {
		return 0, nil
	}

	written := 0
	err := saver.Transaction(ctx, func(tx *gorm.DB) error {
		for i := range plan.New {
			j := plan.New[i]
			if err := saver.SaveJournal(ctx, &j, tx); err != nil {
				return fmt.Errorf("failed to create journal %q: %w", j.Title, err)
			}
			written++
		}
		for i := range plan.Updated {
			j := plan.Updated[i].Journal
			if err := saver.SaveJournal(ctx, &j, tx); err != nil {
				return fmt.Errorf("failed to update journal %d: %w", j.ID, err)
			}
			written++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}
