package cmd

import (
	"fmt"

	"github.com/ocpizza/feeder/internal/config"
	"github.com/ocpizza/feeder/internal/database"
	"github.com/ocpizza/feeder/internal/feeder"
	"github.com/spf13/cobra"
)

var (
	feedSize int
	feedSeed int64
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Insert a batch of fake rows into every table",
	Long: `Generate and insert fake rows for every table of the OC Pizza schema,
in foreign-key dependency order. The batch size controls how many rows are
requested for each independent entity type; fixed catalogs (stores, recipes,
products, statuses, roles, permissions, keywords) keep their own sizes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if feedSize < 0 {
			return fmt.Errorf("invalid batch size %d", feedSize)
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		dbURL, err := cfg.DatabaseURL()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		adapter := database.NewAdapter(cfg.Database.Provider)
		if err := adapter.Connect(ctx, dbURL); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer adapter.Close()

		f := feeder.New(adapter, feeder.NewGenerator(feedSeed), feedSize)
		return f.Populate(ctx)
	},
}

func init() {
	rootCmd.AddCommand(feedCmd)
	feedCmd.Flags().IntVarP(&feedSize, "size", "s", 10, "Rows to insert per independent table")
	feedCmd.Flags().Int64Var(&feedSeed, "seed", 0, "Random seed for reproducible runs (0 = time-based)")
}
