package evaluation

import (
	"time"

	"github.com/zatekoja/Drugfoodinteractiondesign/internal/domain/entities"
)

// Difficulty buckets for golden pairs.
const (
	DifficultyEasy   = "easy"   // direct table entry
	DifficultyMedium = "medium" // reachable only via category or partial matching
	DifficultyHard   = "hard"   // not in the curated table at all
)

// GoldenPair is one labeled drug and food pairing with the outcome the
// pipeline is expected to produce. ExpectedSource is optional: leave it
// empty when any stage is acceptable.
type GoldenPair struct {
	ID             string          `json:"id"`
	Drug           string          `json:"drug"`
	Food           string          `json:"food"`
	ExpectedRisk   entities.Risk   `json:"expected_risk"`
	ExpectedSource entities.Source `json:"expected_source,omitempty"`
	Difficulty     string          `json:"difficulty"`
}

// EvalResult holds the evaluation outcome for a single pair.
type EvalResult struct {
	PairID       string
	Drug         string
	Food         string
	ExpectedRisk entities.Risk
	ActualRisk   entities.Risk
	ActualSource entities.Source
	RiskCorrect  bool
	Undercaution bool
	Found        bool
	Latency      time.Duration
}

// EvalSummary holds aggregate metrics across all golden pairs.
type EvalSummary struct {
	TotalPairs       int
	RiskAccuracy     float64
	UndercautionRate float64
	OvercautionRate  float64
	HitRate          float64
	SourceAccuracy   float64
	SourceChecked    int // pairs that declared an expected source
	AvgLatency       time.Duration
	ByDifficulty     map[string]*DifficultySummary
}

// DifficultySummary holds metrics grouped by difficulty bucket.
type DifficultySummary struct {
	Count        int
	RiskAccuracy float64
	HitRate      float64
}
