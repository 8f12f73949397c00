package medline

import (
	"strings"

	"github.com/zatekoja/Drugfoodinteractiondesign/internal/domain/entities"
)

// Warning vocabularies ordered from strongest to weakest. The first tier
// with a match decides the grade.
var (
	highRiskWords     = []string{"avoid", "contraindicated", "dangerous", "severe", "serious"}
	moderateRiskWords = []string{"limit", "reduce", "moderate", "caution"}
	safeWords         = []string{"no interaction", "no effect", "safe"}
)

const (
	actionAvoid   = "avoid"
	actionLimit   = "limit"
	actionSafe    = "safe"
	actionMonitor = "monitor"
)

// assessRisk grades monograph text by the strongest warning words in it and
// returns the risk together with the action the wording implies.
func assessRisk(text string) (entities.Risk, string) {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, highRiskWords):
		return entities.RiskHigh, actionAvoid
	case containsAny(lower, moderateRiskWords):
		return entities.RiskModerate, actionLimit
	case containsAny(lower, safeWords):
		return entities.RiskLow, actionSafe
	default:
		return entities.RiskLow, actionMonitor
	}
}

// buildRecommendation turns a graded action into a short instruction that
// names the food when one was given.
func buildRecommendation(action, foodName string) string {
	food := strings.ToLower(strings.TrimSpace(foodName))
	if food == "" {
		food = "this food"
	}

	switch action {
	case actionAvoid:
		return "Avoid " + food + " while taking this medication"
	case actionLimit:
		return "Limit " + food + " while taking this medication"
	case actionSafe:
		return "No special precautions needed for " + food
	default:
		return "Monitor how " + food + " affects you and check with your pharmacist"
	}
}
