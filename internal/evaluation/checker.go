package evaluation

import (
	"context"

	"github.com/zatekoja/Drugfoodinteractiondesign/internal/application/services"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/domain/entities"
)

// PredictorChecker runs golden pairs against the curated table alone: no
// network stages, fully deterministic. It is the default evaluation target.
type PredictorChecker struct {
	predictor *services.InteractionPredictor
}

func NewPredictorChecker(predictor *services.InteractionPredictor) *PredictorChecker {
	return &PredictorChecker{predictor: predictor}
}

func (c *PredictorChecker) CheckInteraction(_ context.Context, drugName, foodName string) (*entities.Interaction, error) {
	annotation := c.predictor.Predict(drugName, foodName)
	if annotation == nil {
		return &entities.Interaction{
			DrugName: drugName,
			FoodName: foodName,
			Source:   entities.SourceNone,
			Risk:     entities.RiskUnknown,
		}, nil
	}

	return &entities.Interaction{
		DrugName:         drugName,
		FoodName:         foodName,
		Source:           entities.SourceStatic,
		Risk:             annotation.Risk,
		Explanation:      annotation.Effect,
		Recommendation:   annotation.Recommendation,
		KnownInteraction: annotation,
	}, nil
}
