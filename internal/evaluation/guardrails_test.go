package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuardrails_AllPass(t *testing.T) {
	g := NewGuardrails(DefaultGuardrailConfig())
	summary := &EvalSummary{
		RiskAccuracy:     0.85,
		UndercautionRate: 0.0,
		HitRate:          0.9,
	}

	assert.Empty(t, g.Check(summary))
}

func TestGuardrails_Violations(t *testing.T) {
	g := NewGuardrails(GuardrailConfig{
		MinRiskAccuracy:     0.8,
		MaxUndercautionRate: 0.05,
		MinHitRate:          0.9,
	})
	summary := &EvalSummary{
		RiskAccuracy:     0.5,
		UndercautionRate: 0.2,
		HitRate:          0.4,
	}

	violations := g.Check(summary)
	assert.Len(t, violations, 3)
	assert.Contains(t, violations[0], "risk accuracy")
	assert.Contains(t, violations[1], "undercaution rate")
	assert.Contains(t, violations[2], "hit rate")
}

func TestGuardrails_BoundaryValuesPass(t *testing.T) {
	g := NewGuardrails(GuardrailConfig{
		MinRiskAccuracy:     0.7,
		MaxUndercautionRate: 0.05,
		MinHitRate:          0.7,
	})
	summary := &EvalSummary{
		RiskAccuracy:     0.7,
		UndercautionRate: 0.05,
		HitRate:          0.7,
	}

	assert.Empty(t, g.Check(summary))
}
