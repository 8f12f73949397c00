package services

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/zatekoja/Drugfoodinteractiondesign/internal/adapters/cache"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/domain/entities"
)

type countingStandardizer struct {
	mu       sync.Mutex
	calls    int
	known    map[string]string
	failures map[string]int
}

func (s *countingStandardizer) Standardize(_ context.Context, name string) (*entities.DrugConcept, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	key := strings.ToLower(strings.TrimSpace(name))
	if remaining := s.failures[key]; remaining > 0 {
		s.failures[key] = remaining - 1
		return nil, errors.New("service unavailable")
	}
	if generic, ok := s.known[key]; ok {
		return &entities.DrugConcept{InputName: name, GenericName: generic, Resolved: true}, nil
	}
	return &entities.DrugConcept{InputName: name, GenericName: key, Resolved: false}, nil
}

func (s *countingStandardizer) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func fastBackfillService(standardizer *countingStandardizer, workers, maxRetries int) *NameBackfillService {
	service := NewNameBackfillService(standardizer, workers, maxRetries)
	service.retryCfg.InitialDelay = time.Millisecond
	service.retryCfg.MaxDelay = 2 * time.Millisecond
	return service
}

func TestBackfillAll_Summary(t *testing.T) {
	standardizer := &countingStandardizer{known: map[string]string{
		"lipitor":  "atorvastatin",
		"coumadin": "warfarin",
	}}
	service := fastBackfillService(standardizer, 2, 0)

	summary, err := service.BackfillAll(context.Background(), []string{"Lipitor", "Coumadin", "notadrug"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.TotalProcessed != 3 {
		t.Errorf("expected 3 processed, got %d", summary.TotalProcessed)
	}
	if summary.ResolvedCount != 2 {
		t.Errorf("expected 2 resolved, got %d", summary.ResolvedCount)
	}
	if summary.FailureCount != 0 {
		t.Errorf("expected no failures, got %d", summary.FailureCount)
	}
	if summary.Elapsed <= 0 {
		t.Error("expected a positive elapsed duration")
	}
}

func TestBackfillAll_RetriesTransientFailure(t *testing.T) {
	standardizer := &countingStandardizer{
		known:    map[string]string{"warfarin": "warfarin"},
		failures: map[string]int{"warfarin": 1},
	}
	service := fastBackfillService(standardizer, 1, 3)

	summary, err := service.BackfillAll(context.Background(), []string{"warfarin"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.ResolvedCount != 1 || summary.FailureCount != 0 {
		t.Errorf("expected the retry to succeed, got %+v", summary)
	}
	if standardizer.callCount() != 2 {
		t.Errorf("expected 2 calls (one failure, one success), got %d", standardizer.callCount())
	}
}

func TestBackfillAll_ExhaustedRetriesCounted(t *testing.T) {
	standardizer := &countingStandardizer{failures: map[string]int{"badname": 10}}
	service := fastBackfillService(standardizer, 1, 2)

	summary, err := service.BackfillAll(context.Background(), []string{"badname"})
	if err != nil {
		t.Fatalf("worker failures must not fail the run: %v", err)
	}
	if summary.FailureCount != 1 || summary.TotalProcessed != 1 {
		t.Errorf("expected one counted failure, got %+v", summary)
	}
	if standardizer.callCount() != 2 {
		t.Errorf("expected exactly maxRetries attempts, got %d", standardizer.callCount())
	}
}

func TestBackfillAll_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	service := fastBackfillService(&countingStandardizer{}, 2, 0)
	if _, err := service.BackfillAll(ctx, []string{"a", "b", "c"}); err == nil {
		t.Fatal("expected context error")
	}
}

func TestBackfillSingle_UnresolvedIsNotAnError(t *testing.T) {
	service := fastBackfillService(&countingStandardizer{}, 1, 0)

	concept, err := service.BackfillSingle(context.Background(), "obscureamycin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if concept.Resolved {
		t.Error("expected the name to stay unresolved")
	}
}

func TestBackfillAll_WarmsNameCache(t *testing.T) {
	nameCache, err := cache.NewFileNameCache(filepath.Join(t.TempDir(), "drug_cache.json"))
	if err != nil {
		t.Fatalf("failed to create name cache: %v", err)
	}
	standardizer := &countingStandardizer{known: map[string]string{"warfrin": "warfarin"}}
	cached := cache.NewCachedStandardizer(standardizer, nameCache)

	service := NewNameBackfillService(cached, 2, 0)
	if _, err := service.BackfillAll(context.Background(), []string{"Warfrin"}); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if _, err := service.BackfillAll(context.Background(), []string{"Warfrin"}); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if standardizer.callCount() != 1 {
		t.Errorf("expected the second run to hit the cache, got %d upstream calls", standardizer.callCount())
	}
	if nameCache.Size() != 1 {
		t.Errorf("expected one persisted entry, got %d", nameCache.Size())
	}
}
