package completion

import (
	"context"
	"strings"

	"github.com/zatekoja/Drugfoodinteractiondesign/internal/domain/entities"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/domain/providers"
)

// MockProvider returns deterministic assessments for local development and
// tests, so the full chain can run without an API key.
type MockProvider struct{}

// NewMockProvider creates a mock completion provider.
func NewMockProvider() providers.CompletionProvider {
	return &MockProvider{}
}

var mockAssessments = map[string]providers.CompletionAssessment{
	"warfarin|spinach": {
		HasInteraction: true,
		Risk:           entities.RiskHigh,
		Explanation:    "Spinach is high in vitamin K, which works against warfarin and makes blood clots more likely.",
		Recommendation: "Keep your vitamin K intake steady and talk to your doctor before changing your diet",
	},
	"atorvastatin|grapefruit": {
		HasInteraction: true,
		Risk:           entities.RiskModerate,
		Explanation:    "Grapefruit slows the breakdown of atorvastatin, so more of the drug stays in your body and side effects become more likely.",
		Recommendation: "Avoid large amounts of grapefruit and grapefruit juice",
	},
	"metformin|alcohol": {
		HasInteraction: true,
		Risk:           entities.RiskModerate,
		Explanation:    "Heavy drinking while taking metformin raises the chance of dangerously low blood sugar and lactic acidosis.",
		Recommendation: "Limit alcohol while taking metformin",
	},
}

// ExplainInteraction returns a canned assessment for a few well known pairs
// and "no known interaction" for everything else.
func (m *MockProvider) ExplainInteraction(_ context.Context, drugName, foodName string) (*providers.CompletionAssessment, error) {
	key := normalizeMockKey(drugName) + "|" + normalizeMockKey(foodName)
	if assessment, ok := mockAssessments[key]; ok {
		out := assessment
		return &out, nil
	}

	return &providers.CompletionAssessment{
		HasInteraction: false,
		Risk:           entities.RiskUnknown,
		Explanation:    "No known interaction",
	}, nil
}

// SimplifyText returns the first sentence of the official text, mimicking
// the shape of a real simplification.
func (m *MockProvider) SimplifyText(_ context.Context, _, _ string, officialText string) (string, error) {
	text := strings.TrimSpace(officialText)
	if text == "" {
		return "", nil
	}

	if idx := strings.Index(text, ". "); idx > 0 {
		return text[:idx+1], nil
	}
	if len(text) > 100 {
		return text[:100] + "...", nil
	}
	return text, nil
}

func normalizeMockKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
