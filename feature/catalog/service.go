package catalog

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"catalog-manager/core/database"
	"catalog-manager/feature/catalog/feed"
	"catalog-manager/feature/catalog/models"
	"catalog-manager/feature/catalog/reconcile"
	"catalog-manager/feature/catalog/withdraw"
)

// Service orchestrates catalog reads and the reconciliation runs against the
// external feeds.
type Service struct {
	repo   *Repository
	pool   *database.Pool
	feeds  feed.Config
	logger *zap.Logger
}

// NewService creates a new catalog service.
func NewService(repo *Repository, pool *database.Pool, feeds feed.Config, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		pool:   pool,
		feeds:  feeds,
		logger: logger,
	}
}

// ListJournals returns the journals matching the query with their publishers
// attached.
func (s *Service) ListJournals(ctx context.Context, query JournalQuery) ([]models.Journal, error) {
	if query.Publishers == nil {
		_, byID, err := s.repo.ReadPublishers(ctx, nil)
		if err != nil {
			return nil, err
		}
		query.Publishers = byID
		query.Shallow = true
	}
	return s.repo.ReadJournals(ctx, query, nil)
}

// ListPublishers returns all publishers with their links attached.
func (s *Service) ListPublishers(ctx context.Context) ([]models.Publisher, error) {
	publishers, _, err := s.repo.ReadPublishers(ctx, nil)
	return publishers, err
}

// PoolStats reports the connection pool usage.
func (s *Service) PoolStats() (inUse, idle int) {
	return s.pool.Stats()
}

// feedURL resolves a feed location, preferring the stored setting over the
// configured fallback.
func (s *Service) feedURL(ctx context.Context, setting, fallback string) (string, error) {
	settings, err := s.repo.ReadSettings(ctx, nil)
	if err != nil {
		return "", err
	}
	if url := models.SettingValue(settings, setting); url != "" {
		return url, nil
	}
	return fallback, nil
}

// ownerForNew resolves the publisher newly discovered journals are assigned
// to: the named one when a name is given, otherwise the publisher that
// represents the external directory itself.
func (s *Service) ownerForNew(ctx context.Context, name string) (*models.Publisher, error) {
	publishers, _, err := s.repo.ReadPublishers(ctx, nil)
	if err != nil {
		return nil, err
	}
	if name != "" {
		for i := range publishers {
			if strings.EqualFold(publishers[i].Name, name) {
				return &publishers[i], nil
			}
		}
		return nil, fmt.Errorf("publisher %q not found", name)
	}
	for i := range publishers {
		if publishers[i].IsDOAJ {
			return &publishers[i], nil
		}
	}
	return nil, fmt.Errorf("no directory publisher configured")
}

// PlanReconciliation fetches the dump and compares it against the local
// catalog without writing anything. ownerName optionally names the publisher
// new records are assigned to.
func (s *Service) PlanReconciliation(ctx context.Context, overrideURL, ownerName string) (*reconcile.Plan, error) {
	url := overrideURL
	if url == "" {
		var err error
		if url, err = s.feedURL(ctx, models.SettingDumpLink, s.feeds.DumpURL); err != nil {
			return nil, err
		}
	}

	external, err := feed.FetchDump(ctx, url)
	if err != nil {
		return nil, err
	}

	local, err := s.repo.ReadJournals(ctx, JournalQuery{Shallow: true}, nil)
	if err != nil {
		return nil, err
	}

	owner, err := s.ownerForNew(ctx, ownerName)
	if err != nil {
		return nil, err
	}

	plan := reconcile.Reconcile(local, external, owner.ID)
	s.logger.Info("Reconciliation planned",
		zap.Int("new", plan.Summary.New),
		zap.Int("updated", plan.Summary.Updated),
		zap.Int("unchanged", plan.Summary.Unchanged),
		zap.Int("warnings", len(plan.Warnings)))
	return plan, nil
}

// ApplyReconciliation writes a previously computed plan.
func (s *Service) ApplyReconciliation(ctx context.Context, plan *reconcile.Plan, opts reconcile.Options) (int, error) {
	written, err := reconcile.Apply(ctx, s.repo, plan, opts)
	if err != nil {
		return 0, err
	}
	if written > 0 {
		s.logger.Info("Reconciliation applied", zap.Int("written", written))
	}
	return written, nil
}

// PlanWithdrawal fetches the changes workbook and matches its withdrawal
// notices against the local catalog under the given policy.
func (s *Service) PlanWithdrawal(ctx context.Context, overrideURL string, policy withdraw.Policy) (*withdraw.Report, error) {
	url := overrideURL
	if url == "" {
		var err error
		if url, err = s.feedURL(ctx, models.SettingChangesLink, s.feeds.ChangesURL); err != nil {
			return nil, err
		}
	}

	notices, err := feed.FetchChanges(ctx, url)
	if err != nil {
		return nil, err
	}

	// Only records still listed as valid can be withdrawn.
	journals, err := s.repo.ReadJournals(ctx, JournalQuery{OnlyActive: true, Shallow: true}, nil)
	if err != nil {
		return nil, err
	}

	_, byID, err := s.repo.ReadPublishers(ctx, nil)
	if err != nil {
		return nil, err
	}

	report := withdraw.Match(notices, journals, byID, policy)
	s.logger.Info("Withdrawal planned",
		zap.Int("notices", len(notices)),
		zap.Int("eligible", len(report.Eligible)),
		zap.Int("ignored", len(report.Ignored)),
		zap.String("policy", string(policy)))
	return report, nil
}

// ApplyWithdrawal deletes the eligible journals of a report.
func (s *Service) ApplyWithdrawal(ctx context.Context, report *withdraw.Report, opts reconcile.Options) (int64, error) {
	removed, err := withdraw.Apply(ctx, s.repo, report, opts)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.logger.Info("Withdrawal applied", zap.Int64("removed", removed))
	}
	return removed, nil
}
