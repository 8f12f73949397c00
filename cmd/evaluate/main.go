package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/zatekoja/Drugfoodinteractiondesign/internal/adapters/cache"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/adapters/providers/completion"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/application/services"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/domain/providers"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/evaluation"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/infrastructure/clients/medline"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/infrastructure/clients/rxnorm"
	"github.com/zatekoja/Drugfoodinteractiondesign/pkg/config"
)

func main() {
	defaults := evaluation.DefaultGuardrailConfig()

	var pairsPath string
	var live bool
	var minRiskAccuracy float64
	var maxUndercaution float64
	var minHitRate float64
	flag.StringVar(&pairsPath, "pairs", "config/golden_pairs.json", "path to the golden pair set")
	flag.BoolVar(&live, "live", false, "run the full lookup chain instead of the offline table")
	flag.Float64Var(&minRiskAccuracy, "min-risk-accuracy", defaults.MinRiskAccuracy, "minimum risk accuracy gate")
	flag.Float64Var(&maxUndercaution, "max-undercaution", defaults.MaxUndercautionRate, "maximum undercaution rate gate")
	flag.Float64Var(&minHitRate, "min-hit-rate", defaults.MinHitRate, "minimum hit rate gate")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	predictor, err := services.NewInteractionPredictor(cfg.Paths.InteractionTablePath())
	if err != nil {
		log.Fatalf("Failed to load interaction table: %v", err)
	}

	// The offline predictor is the default target so CI needs no network or
	// API keys. -live exercises the full standardize/scrape/AI chain.
	var checker evaluation.InteractionChecker = evaluation.NewPredictorChecker(predictor)
	if live {
		checker, err = buildLiveChecker(cfg, predictor)
		if err != nil {
			log.Fatalf("Failed to build live lookup chain: %v", err)
		}
	}

	pairs, err := evaluation.LoadGoldenPairs(pairsPath)
	if err != nil {
		log.Fatalf("Failed to load golden pairs: %v", err)
	}
	if err := evaluation.ValidateGoldenPairs(pairs); err != nil {
		log.Fatalf("Invalid golden pair set: %v", err)
	}

	runner := evaluation.NewRunner(checker)
	summary, err := runner.Run(context.Background(), pairs)
	if err != nil {
		log.Fatalf("Evaluation failed: %v", err)
	}

	// Output results as JSON
	out, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(out))

	guardrails := evaluation.NewGuardrails(evaluation.GuardrailConfig{
		MinRiskAccuracy:     minRiskAccuracy,
		MaxUndercautionRate: maxUndercaution,
		MinHitRate:          minHitRate,
	})
	if violations := guardrails.Check(summary); len(violations) > 0 {
		for _, violation := range violations {
			fmt.Fprintln(os.Stderr, "guardrail violation:", violation)
		}
		os.Exit(1)
	}
}

// buildLiveChecker wires the same pipeline the API serves. The event bus and
// metrics stay nil so evaluation runs leave no trace in the lookup stream.
func buildLiveChecker(cfg *config.Config, predictor *services.InteractionPredictor) (evaluation.InteractionChecker, error) {
	rxnormClient := rxnorm.NewClient(&cfg.RxNorm)

	var standardizer providers.DrugStandardizer = rxnormClient
	if nameCache, err := cache.NewFileNameCache(cfg.Paths.NameCachePath()); err == nil {
		standardizer = cache.NewCachedStandardizer(rxnormClient, nameCache)
	}

	medlineClient, err := medline.NewClient(&cfg.Medline, cfg.Paths.LookupTablePath())
	if err != nil {
		return nil, err
	}
	medlineClient.SetSynonymSource(predictor.FoodSynonyms)

	completionProvider, err := completion.NewCompletionProvider(cfg)
	if err != nil {
		return nil, err
	}

	return services.NewInteractionService(
		standardizer,
		medlineClient,
		completionProvider,
		predictor,
		nil,
		nil,
		nil,
		cfg.Gemini.SimplifyEnabled,
	), nil
}
