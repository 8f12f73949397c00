package evaluation

import "github.com/zatekoja/Drugfoodinteractiondesign/internal/domain/entities"

// riskRank orders grades from least to most cautious.
var riskRank = map[entities.Risk]int{
	entities.RiskUnknown:  0,
	entities.RiskLow:      1,
	entities.RiskModerate: 2,
	entities.RiskHigh:     3,
}

// IsUndercaution reports whether the actual grade makes a definite claim
// milder than the expected one. An unknown actual does not count: the UI
// renders it as "no information", which is a miss rather than false
// reassurance, and the hit rate already accounts for misses.
func IsUndercaution(expected, actual entities.Risk) bool {
	if actual == entities.RiskUnknown {
		return false
	}
	return riskRank[actual] < riskRank[expected]
}

// IsOvercaution reports whether the actual grade is more severe than the
// expected one. Overcaution is tolerated by the guardrails but still worth
// tracking when tuning the curated table.
func IsOvercaution(expected, actual entities.Risk) bool {
	return riskRank[actual] > riskRank[expected]
}
