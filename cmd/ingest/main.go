// Command ingest drives fixture and fantasy ingestion from the shell.
//
// Usage:
//
//	statsync-ingest fixtures --season 2025 --id 501 --id 502 --workers 4
//	statsync-ingest fantasy --season 2025
//	statsync-ingest resolve-scrape-ids
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/openfooty/statsync/internal/app"
	"github.com/openfooty/statsync/internal/config"
	"github.com/openfooty/statsync/internal/platform/logging"
	"github.com/openfooty/statsync/internal/usecase"
)

func main() {
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "statsync-ingest",
		Short: "Cross-source fixture and fantasy ingestion CLI",
	}

	root.AddCommand(fixturesCmd())
	root.AddCommand(fantasyCmd())
	root.AddCommand(resolveScrapeIDsCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func fixturesCmd() *cobra.Command {
	var (
		season          int
		fixtureIDs      []int64
		workers         int
		continueOnError bool
	)
	cmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Ingest participation rows for finished fixtures",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(fixtureIDs) == 0 {
				return fmt.Errorf("at least one --id is required")
			}
			return runJob(func(ctx context.Context, cfg config.Config, deps *app.Deps, logger *logging.Logger) error {
				if season == 0 {
					season = cfg.Season
				}
				start := time.Now()
				result, err := deps.IngestJob.Run(ctx, usecase.IngestJobInput{
					Season:          season,
					FixtureIDs:      fixtureIDs,
					MaxWorkers:      workers,
					ContinueOnError: continueOnError,
				})
				if err != nil {
					return err
				}
				logger.Info("fixture ingest finished",
					"season", season,
					"fixtures", result.FixtureCount,
					"ingested", result.Ingested,
					"failed", result.Failed,
					"duration", time.Since(start).Round(time.Millisecond),
				)
				for _, failure := range result.Failures {
					logger.Error("fixture ingest failure", "detail", failure)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&season, "season", 0, "Season start year (defaults to SEASON env)")
	cmd.Flags().Int64SliceVar(&fixtureIDs, "id", nil, "Fixture ID to ingest (repeatable)")
	cmd.Flags().IntVar(&workers, "workers", 4, "Prefetch worker count")
	cmd.Flags().BoolVar(&continueOnError, "continue-on-error", true, "Collect per-fixture failures instead of halting")
	return cmd
}

func fantasyCmd() *cobra.Command {
	var season int
	cmd := &cobra.Command{
		Use:   "fantasy",
		Short: "Map fantasy IDs and ingest per-gameweek fantasy history",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJob(func(ctx context.Context, cfg config.Config, deps *app.Deps, logger *logging.Logger) error {
				if season == 0 {
					season = cfg.Season
				}
				start := time.Now()

				mapResult, err := deps.FantasyHistory.SyncPlayerIDs(ctx, cfg.CompetitionID)
				if err != nil {
					return fmt.Errorf("sync fantasy ids: %w", err)
				}
				logger.Info("fantasy id sync finished",
					"competition_id", cfg.CompetitionID,
					"mapped", mapResult.Mapped,
					"skipped", mapResult.Skipped,
				)

				pool, err := deps.PlayerRepo.ListWithCompetitionAppearance(ctx, cfg.CompetitionID)
				if err != nil {
					return fmt.Errorf("list player pool: %w", err)
				}

				historyResult, err := deps.FantasyHistory.IngestAllHistories(ctx, season, pool, cfg.FantasyFetchConcurrency)
				if err != nil {
					return fmt.Errorf("ingest fantasy histories: %w", err)
				}
				logger.Info("fantasy history ingest finished",
					"season", season,
					"players", len(pool),
					"ingested", historyResult.Ingested,
					"skipped", historyResult.Skipped,
					"duration", time.Since(start).Round(time.Millisecond),
				)
				for _, failure := range append(mapResult.Failures, historyResult.Failures...) {
					logger.Error("fantasy ingest failure", "detail", failure)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&season, "season", 0, "Season start year (defaults to SEASON env)")
	return cmd
}

func resolveScrapeIDsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve-scrape-ids",
		Short: "Attach scrape-target IDs to players that still lack one",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJob(func(ctx context.Context, cfg config.Config, deps *app.Deps, logger *logging.Logger) error {
				start := time.Now()

				result, err := deps.Resolver.SyncScrapeIDs(ctx, cfg.CompetitionID)
				if err != nil {
					return fmt.Errorf("sync scrape ids: %w", err)
				}
				logger.Info("scrape id sync finished",
					"competition_id", cfg.CompetitionID,
					"mapped", result.Mapped,
					"skipped", result.Skipped,
					"duration", time.Since(start).Round(time.Millisecond),
				)
				for _, failure := range result.Failures {
					logger.Error("scrape id sync failure", "detail", failure)
				}
				return nil
			})
		},
	}
}

// runJob handles config loading, DB connection and context cancellation.
func runJob(fn func(ctx context.Context, cfg config.Config, deps *app.Deps, logger *logging.Logger) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	db, err := app.OpenDB(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	return fn(ctx, cfg, app.NewDeps(cfg, db, logger), logger)
}
