package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zatekoja/Drugfoodinteractiondesign/internal/domain/entities"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/domain/providers"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/infrastructure/observability"
	"github.com/zatekoja/Drugfoodinteractiondesign/pkg/retry"
)

const backfillQueueSize = 100

// BackfillSummary totals one prewarm run.
type BackfillSummary struct {
	TotalProcessed int
	ResolvedCount  int
	FailureCount   int
	Elapsed        time.Duration
}

// NameBackfillService pushes a list of drug names through the standardizer
// ahead of time, so interactive lookups find warm cache entries instead of
// paying the terminology API latency. Run it behind the cached standardizer
// or the results are thrown away.
type NameBackfillService struct {
	standardizer providers.DrugStandardizer
	workerCount  int
	retryCfg     retry.Config
}

func NewNameBackfillService(standardizer providers.DrugStandardizer, workers, maxRetries int) *NameBackfillService {
	if workers <= 0 {
		workers = 1
	}
	cfg := retry.DefaultConfig()
	if maxRetries > 0 {
		cfg.MaxAttempts = maxRetries
	}
	return &NameBackfillService{
		standardizer: standardizer,
		workerCount:  workers,
		retryCfg:     cfg,
	}
}

// BackfillAll standardizes every name using a small worker pool. A name the
// terminology source cannot match is still a success; failures are transport
// errors that survived retries.
func (s *NameBackfillService) BackfillAll(ctx context.Context, names []string) (*BackfillSummary, error) {
	start := time.Now()
	var processed, resolved, failed int64

	nameChan := make(chan string, backfillQueueSize)
	var wg sync.WaitGroup

	for i := 0; i < s.workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range nameChan {
				concept, err := s.BackfillSingle(ctx, name)
				atomic.AddInt64(&processed, 1)
				switch {
				case err != nil:
					atomic.AddInt64(&failed, 1)
					observability.GetLogger().Error().Err(err).
						Str("drug", name).
						Msg("backfill failed")
				case concept.Resolved:
					atomic.AddInt64(&resolved, 1)
				}
			}
		}()
	}

	for _, name := range names {
		if ctx.Err() != nil {
			close(nameChan)
			wg.Wait()
			return nil, ctx.Err()
		}
		select {
		case nameChan <- name:
		case <-ctx.Done():
			close(nameChan)
			wg.Wait()
			return nil, ctx.Err()
		}
	}
	close(nameChan)
	wg.Wait()

	return &BackfillSummary{
		TotalProcessed: int(processed),
		ResolvedCount:  int(resolved),
		FailureCount:   int(failed),
		Elapsed:        time.Since(start),
	}, nil
}

// BackfillSingle standardizes one name with retries.
func (s *NameBackfillService) BackfillSingle(ctx context.Context, name string) (*entities.DrugConcept, error) {
	cfg := s.retryCfg
	cfg.OnRetry = func(attempt int, err error, nextDelay time.Duration) {
		observability.GetLogger().Warn().Err(err).
			Str("drug", name).
			Int("attempt", attempt).
			Dur("next_delay", nextDelay).
			Msg("standardization failed, backing off")
	}

	var concept *entities.DrugConcept
	err := retry.Do(ctx, cfg, func() error {
		var innerErr error
		concept, innerErr = s.standardizer.Standardize(ctx, name)
		return innerErr
	})
	if err != nil {
		return nil, err
	}
	return concept, nil
}
