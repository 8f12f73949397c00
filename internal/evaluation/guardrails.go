package evaluation

import "fmt"

// GuardrailConfig sets the release gates an evaluation run must clear.
type GuardrailConfig struct {
	MinRiskAccuracy     float64
	MaxUndercautionRate float64
	MinHitRate          float64
}

// DefaultGuardrailConfig is calibrated to what the curated table alone
// sustains on the checked-in golden set, so the offline run passes out of
// the box and regressions to the table or matcher fail it.
func DefaultGuardrailConfig() GuardrailConfig {
	return GuardrailConfig{
		MinRiskAccuracy:     0.70,
		MaxUndercautionRate: 0.05,
		MinHitRate:          0.70,
	}
}

type Guardrails struct {
	config GuardrailConfig
}

func NewGuardrails(config GuardrailConfig) *Guardrails {
	return &Guardrails{config: config}
}

// Check returns one violation message per failed gate, empty when all pass.
func (g *Guardrails) Check(summary *EvalSummary) []string {
	var violations []string
	if summary.RiskAccuracy < g.config.MinRiskAccuracy {
		violations = append(violations, fmt.Sprintf("risk accuracy %.3f below minimum %.3f", summary.RiskAccuracy, g.config.MinRiskAccuracy))
	}
	if summary.UndercautionRate > g.config.MaxUndercautionRate {
		violations = append(violations, fmt.Sprintf("undercaution rate %.3f above maximum %.3f", summary.UndercautionRate, g.config.MaxUndercautionRate))
	}
	if summary.HitRate < g.config.MinHitRate {
		violations = append(violations, fmt.Sprintf("hit rate %.3f below minimum %.3f", summary.HitRate, g.config.MinHitRate))
	}
	return violations
}
