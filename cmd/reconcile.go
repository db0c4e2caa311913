package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"catalog-manager/core/config"
	"catalog-manager/core/database"
	"catalog-manager/core/logger"
	"catalog-manager/feature/catalog"
	"catalog-manager/feature/catalog/reconcile"
	"catalog-manager/feature/catalog/withdraw"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags shared by the reconcile subcommands
	feedURL          string
	ownerPublisher   string
	dryRunReconcile  bool
	yesConfirm       bool
	withdrawalPolicy string
)

// reconcileCmd is the parent command for all reconcile operations.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile the local catalog against the DOAJ exports",
	Long: `Reconcile the local catalog against the external exports.
The dump subcommand imports new and changed journal records; the withdrawn
subcommand deletes journals named by the withdrawal notices.`,
}

// dumpReconcileCmd imports the full dump.
var dumpReconcileCmd = &cobra.Command{
	Use:   "dump",
	Short: "Import the full journal dump (report + optionally write)",
	Long: `Compare the full journal dump against the local catalog.

Reports new, updated and unchanged records. Without --dry-run the plan is
written after an interactive confirmation.

Examples:
  # Report only
  reconcile dump --dry-run

  # Write with interactive confirmation
  reconcile dump

  # Write with auto-confirm (non-interactive)
  reconcile dump --yes

  # Use a one-off dump location
  reconcile dump --url https://example.org/journals.csv --dry-run`,
	RunE: runDumpReconcile,
}

// withdrawnReconcileCmd processes the withdrawal notices.
var withdrawnReconcileCmd = &cobra.Command{
	Use:   "withdrawn",
	Short: "Delete journals named by the withdrawal notices",
	Long: `Match the withdrawal notices of the changes workbook against the
local catalog and delete the journals the policy allows.

Policies:
  respect-linking       delete journals of DOAJ and DOAJ-linked publishers (default)
  force-include-all     delete every matched journal
  force-exclude-linked  delete only journals of DOAJ publishers

Examples:
  # Report only
  reconcile withdrawn --dry-run

  # Delete with interactive confirmation
  reconcile withdrawn

  # Delete everything matched, non-interactive
  reconcile withdrawn --policy force-include-all --yes`,
	RunE: runWithdrawnReconcile,
}

func init() {
	reconcileCmd.AddCommand(dumpReconcileCmd)
	reconcileCmd.AddCommand(withdrawnReconcileCmd)

	reconcileCmd.PersistentFlags().StringVar(&feedURL, "url", "", "Override the feed location for this run")
	reconcileCmd.PersistentFlags().BoolVar(&dryRunReconcile, "dry-run", false, "Force dry-run (no writes even with --yes)")
	reconcileCmd.PersistentFlags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")
	withdrawnReconcileCmd.Flags().StringVar(&withdrawalPolicy, "policy", string(withdraw.PolicyRespectLinking), "Deletion policy (respect-linking, force-include-all, force-exclude-linked)")
	dumpReconcileCmd.Flags().StringVar(&ownerPublisher, "publisher", "", "Assign new records to this publisher instead of the directory publisher")

	RootCmd.AddCommand(reconcileCmd)
}

// newCatalogService builds the service stack the reconcile commands share.
func newCatalogService() (*catalog.Service, *database.Pool, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	pool, err := database.NewPool(db, cfg.Database.PoolSize)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	repo := catalog.NewRepository(db, l)
	return catalog.NewService(repo, pool, cfg.Feeds, l), pool, l, nil
}

func runDumpReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	svc, pool, l, err := newCatalogService()
	if err != nil {
		return err
	}
	defer pool.Shutdown()

	l.Info("Planning dump reconciliation")
	plan, err := svc.PlanReconciliation(ctx, feedURL, ownerPublisher)
	if err != nil {
		return fmt.Errorf("failed to plan reconciliation: %w", err)
	}

	printReconcilePlan(l, plan)

	if dryRunReconcile {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}
	if plan.Summary.New == 0 && plan.Summary.Updated == 0 {
		l.Info("Catalog is up to date. Nothing to write.")
		return nil
	}

	if !confirmDestructiveAction() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	written, err := svc.ApplyReconciliation(ctx, plan, reconcile.Options{Confirmed: true})
	if err != nil {
		return fmt.Errorf("failed to apply plan: %w", err)
	}
	l.Info("Successfully wrote records", zap.Int("count", written))
	return nil
}

func runWithdrawnReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	policy, err := withdraw.ParsePolicy(withdrawalPolicy)
	if err != nil {
		return err
	}

	svc, pool, l, err := newCatalogService()
	if err != nil {
		return err
	}
	defer pool.Shutdown()

	l.Info("Planning withdrawal run", zap.String("policy", string(policy)))
	report, err := svc.PlanWithdrawal(ctx, feedURL, policy)
	if err != nil {
		return fmt.Errorf("failed to plan withdrawal: %w", err)
	}

	printWithdrawalReport(l, report)

	if dryRunReconcile {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}
	if len(report.Eligible) == 0 {
		l.Info("No journals eligible for deletion.")
		return nil
	}

	if !confirmDestructiveAction() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	removed, err := svc.ApplyWithdrawal(ctx, report, reconcile.Options{Confirmed: true})
	if err != nil {
		return fmt.Errorf("failed to apply withdrawal: %w", err)
	}
	l.Info("Successfully removed journals", zap.Int64("count", removed))
	return nil
}

// printReconcilePlan prints a formatted reconciliation report using logger.
func printReconcilePlan(l *zap.Logger, plan *reconcile.Plan) {
	l.Info("Reconciliation report",
		zap.Int("new", plan.Summary.New),
		zap.Int("updated", plan.Summary.Updated),
		zap.Int("unchanged", plan.Summary.Unchanged),
	)

	for _, w := range plan.Warnings {
		l.Warn("Catalog inconsistency", zap.String("warning", w))
	}

	// Show a sample of the planned changes (max 5 for logger)
	maxShow := 5
	for i, j := range plan.New {
		if i >= maxShow {
			l.Info("Additional new records not shown", zap.Int("count", len(plan.New)-maxShow))
			break
		}
		l.Info("New record", zap.String("title", j.Title), zap.String("e_issn", j.EISSN))
	}
	for i, u := range plan.Updated {
		if i >= maxShow {
			l.Info("Additional updates not shown", zap.Int("count", len(plan.Updated)-maxShow))
			break
		}
		fields := make([]string, 0, len(u.Diff))
		for name := range u.Diff {
			fields = append(fields, name)
		}
		l.Info("Updated record",
			zap.Int64("id", u.Journal.ID),
			zap.String("title", u.Journal.Title),
			zap.Strings("fields", fields),
		)
	}
}

// printWithdrawalReport prints a formatted withdrawal report using logger.
func printWithdrawalReport(l *zap.Logger, report *withdraw.Report) {
	l.Info("Withdrawal report",
		zap.Int("eligible", len(report.Eligible)),
		zap.Int("ignored", len(report.Ignored)),
	)

	maxShow := 5
	for i, j := range report.Eligible {
		if i >= maxShow {
			l.Info("Additional eligible journals not shown", zap.Int("count", len(report.Eligible)-maxShow))
			break
		}
		l.Info("Eligible for deletion",
			zap.Int64("id", j.ID),
			zap.String("title", j.Title),
			zap.String("reason", j.WithdrawReason),
			zap.String("removed", j.WithdrawDate),
		)
	}
	for i, j := range report.Ignored {
		if i >= maxShow {
			l.Info("Additional protected journals not shown", zap.Int("count", len(report.Ignored)-maxShow))
			break
		}
		l.Info("Protected by policy", zap.Int64("id", j.ID), zap.String("title", j.Title))
	}
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm destructive actions: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}
