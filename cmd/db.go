package cmd

import (
	"context"
	"fmt"

	"catalog-manager/core/config"
	"catalog-manager/core/database"
	"catalog-manager/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// dbCmd is the parent command for database maintenance operations.
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database maintenance operations",
}

// dbVerifyCmd checks that the expected schema is present.
var dbVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the catalog schema",
	Long:  `Checks that every required table exists and reports its columns.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		l, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		pool, err := database.NewPool(db, cfg.Database.PoolSize)
		if err != nil {
			return fmt.Errorf("failed to create connection pool: %w", err)
		}
		defer pool.Shutdown()

		// Run the checks on a validated pooled connection.
		conn, err := pool.Acquire(ctx)
		if err != nil {
			return fmt.Errorf("failed to acquire connection: %w", err)
		}
		defer pool.Release(conn)

		missing := database.VerifySchema(conn.DB())
		if len(missing) > 0 {
			l.Error("Schema verification failed", zap.Strings("missing_tables", missing))
			return fmt.Errorf("missing tables: %v", missing)
		}

		for _, table := range database.RequiredTables {
			cols, err := database.GetTableColumns(conn.DB(), table)
			if err != nil {
				return fmt.Errorf("failed to inspect table %s: %w", table, err)
			}
			l.Info("Table verified", zap.String("table", table), zap.Int("columns", len(cols)))
		}

		l.Info("Schema verification passed")
		return nil
	},
}

func init() {
	dbCmd.AddCommand(dbVerifyCmd)
	RootCmd.AddCommand(dbCmd)
}
