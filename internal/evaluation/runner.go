package evaluation

import (
	"context"
	"time"

	"github.com/zatekoja/Drugfoodinteractiondesign/internal/domain/entities"
)

// InteractionChecker is the slice of the lookup pipeline the runner drives.
// Both the full service and the offline table checker satisfy it.
type InteractionChecker interface {
	CheckInteraction(ctx context.Context, drugName, foodName string) (*entities.Interaction, error)
}

// Runner runs evaluation across a set of golden pairs.
type Runner struct {
	checker InteractionChecker
}

func NewRunner(checker InteractionChecker) *Runner {
	return &Runner{checker: checker}
}

// Run evaluates every pair in order. A checker error is scored as a miss
// rather than aborting the run; only context cancellation stops it.
func (r *Runner) Run(ctx context.Context, pairs []GoldenPair) (*EvalSummary, error) {
	summary := &EvalSummary{
		TotalPairs:   len(pairs),
		ByDifficulty: make(map[string]*DifficultySummary),
	}

	for _, pair := range pairs {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		start := time.Now()
		interaction, err := r.checker.CheckInteraction(ctx, pair.Drug, pair.Food)
		latency := time.Since(start)

		result := EvalResult{
			PairID:       pair.ID,
			Drug:         pair.Drug,
			Food:         pair.Food,
			ExpectedRisk: pair.ExpectedRisk,
			ActualRisk:   entities.RiskUnknown,
			ActualSource: entities.SourceNone,
			Latency:      latency,
		}
		if err == nil && interaction != nil {
			result.ActualRisk = interaction.Risk
			result.ActualSource = interaction.Source
			result.Found = interaction.Found()
		}
		result.RiskCorrect = result.ActualRisk == pair.ExpectedRisk
		result.Undercaution = IsUndercaution(pair.ExpectedRisk, result.ActualRisk)

		r.updateSummary(summary, pair, result)
	}

	r.finalizeSummary(summary)
	return summary, nil
}

func (r *Runner) updateSummary(s *EvalSummary, pair GoldenPair, res EvalResult) {
	if res.RiskCorrect {
		s.RiskAccuracy++
	}
	if res.Undercaution {
		s.UndercautionRate++
	}
	if IsOvercaution(res.ExpectedRisk, res.ActualRisk) {
		s.OvercautionRate++
	}
	if res.Found {
		s.HitRate++
	}
	s.AvgLatency += res.Latency

	if pair.ExpectedSource != "" {
		s.SourceChecked++
		if res.ActualSource == pair.ExpectedSource {
			s.SourceAccuracy++
		}
	}

	bucket, ok := s.ByDifficulty[pair.Difficulty]
	if !ok {
		bucket = &DifficultySummary{}
		s.ByDifficulty[pair.Difficulty] = bucket
	}
	bucket.Count++
	if res.RiskCorrect {
		bucket.RiskAccuracy++
	}
	if res.Found {
		bucket.HitRate++
	}
}

func (r *Runner) finalizeSummary(s *EvalSummary) {
	if s.TotalPairs > 0 {
		n := float64(s.TotalPairs)
		s.RiskAccuracy /= n
		s.UndercautionRate /= n
		s.OvercautionRate /= n
		s.HitRate /= n
		s.AvgLatency /= time.Duration(s.TotalPairs)
	}
	if s.SourceChecked > 0 {
		s.SourceAccuracy /= float64(s.SourceChecked)
	}

	for _, bucket := range s.ByDifficulty {
		if bucket.Count > 0 {
			n := float64(bucket.Count)
			bucket.RiskAccuracy /= n
			bucket.HitRate /= n
		}
	}
}
