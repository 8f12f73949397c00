package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/adapters/cache"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/application/services"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/infrastructure/clients/medline"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/infrastructure/clients/rxnorm"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/infrastructure/observability"
	"github.com/zatekoja/Drugfoodinteractiondesign/pkg/config"
)

func main() {
	var workers int
	var maxRetries int
	var drug string
	flag.IntVar(&workers, "workers", 4, "number of concurrent standardization workers")
	flag.IntVar(&maxRetries, "max-retries", 3, "attempts per name before giving up")
	flag.StringVar(&drug, "drug", "", "backfill a single drug name instead of the whole table")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, workers, maxRetries, drug); err != nil {
		log.Fatal().Err(err).Msg("Backfill failed")
	}
}

func run(ctx context.Context, workers, maxRetries int, drug string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	observability.InitLogger(cfg.OTEL.ServiceName+"-backfill", cfg.Server.Environment)

	// The cached standardizer persists every resolution; running against the
	// bare client would standardize and then drop the results.
	rxnormClient := rxnorm.NewClient(&cfg.RxNorm)
	nameCache, err := cache.NewFileNameCache(cfg.Paths.NameCachePath())
	if err != nil {
		return err
	}
	standardizer := cache.NewCachedStandardizer(rxnormClient, nameCache)

	backfill := services.NewNameBackfillService(standardizer, workers, maxRetries)

	if drug != "" {
		concept, err := backfill.BackfillSingle(ctx, drug)
		if err != nil {
			return err
		}
		log.Info().
			Str("input", concept.InputName).
			Str("generic", concept.GenericName).
			Bool("resolved", concept.Resolved).
			Msg("Name backfilled")
		return nil
	}

	medlineClient, err := medline.NewClient(&cfg.Medline, cfg.Paths.LookupTablePath())
	if err != nil {
		return err
	}
	names := medlineClient.KnownDrugs()
	if len(names) == 0 {
		return errors.New("drug URL table is empty; nothing to backfill")
	}

	log.Info().Int("names", len(names)).Int("workers", workers).Msg("Backfilling name cache")

	summary, err := backfill.BackfillAll(ctx, names)
	if err != nil {
		return err
	}

	log.Info().
		Int("processed", summary.TotalProcessed).
		Int("resolved", summary.ResolvedCount).
		Int("failed", summary.FailureCount).
		Dur("elapsed", summary.Elapsed).
		Msg("Backfill complete")

	if summary.FailureCount > 0 {
		return fmt.Errorf("%d names failed to standardize", summary.FailureCount)
	}
	return nil
}
