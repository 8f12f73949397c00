package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zatekoja/Drugfoodinteractiondesign/internal/domain/entities"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/domain/providers"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/Drugfoodinteractiondesign/pkg/errors"
)

// Stage names recorded in logs and stage metrics.
const (
	stageOfficial = "official"
	stageAI       = "ai"
	stageStatic   = "static"
)

// officialExcerptLength caps the raw monograph excerpt used as the
// explanation when AI simplification is off or fails.
const officialExcerptLength = 280

const noDataExplanation = "No interaction information was found for this combination. Absence of data does not guarantee safety, so check with your pharmacist or doctor."

// InteractionService runs the lookup pipeline: standardize the drug name,
// then try the official monograph, the AI fallback, and the curated table in
// that order, returning the first stage that produces an answer. The curated
// annotation is attached to the result no matter which stage wins.
type InteractionService struct {
	standardizer    providers.DrugStandardizer
	official        providers.OfficialSource
	completion      providers.CompletionProvider
	predictor       *InteractionPredictor
	eventBus        providers.EventBus
	metrics         *observability.Metrics
	flags           *FeatureFlags
	simplifyEnabled bool
}

// NewInteractionService creates a new interaction service. completion,
// eventBus and metrics may be nil: the AI stage, event publishing and metric
// recording are skipped respectively.
func NewInteractionService(
	standardizer providers.DrugStandardizer,
	official providers.OfficialSource,
	completion providers.CompletionProvider,
	predictor *InteractionPredictor,
	eventBus providers.EventBus,
	metrics *observability.Metrics,
	flags *FeatureFlags,
	simplifyEnabled bool,
) *InteractionService {
	if flags == nil {
		flags = NewFeatureFlags()
	}
	return &InteractionService{
		standardizer:    standardizer,
		official:        official,
		completion:      completion,
		predictor:       predictor,
		eventBus:        eventBus,
		metrics:         metrics,
		flags:           flags,
		simplifyEnabled: simplifyEnabled,
	}
}

// CheckInteraction looks up the interaction between one drug and one food.
// Stage failures are not lookup failures: a stage that errors or comes up
// empty hands over to the next one, and only invalid input returns an error.
func (s *InteractionService) CheckInteraction(ctx context.Context, drugName, foodName string) (*entities.Interaction, error) {
	drugName = strings.TrimSpace(drugName)
	foodName = strings.TrimSpace(foodName)
	if drugName == "" {
		return nil, apperrors.NewValidationError("drug name is required")
	}
	if foodName == "" {
		return nil, apperrors.NewValidationError("food name is required")
	}

	concept := s.standardizeDrug(ctx, drugName)
	annotation := s.predictor.Predict(concept.GenericName, foodName)

	result := s.checkOfficial(ctx, concept.GenericName, foodName)
	if result == nil && s.completion != nil && s.flags.AIFallbackEnabled() {
		result = s.checkAI(ctx, concept.GenericName, foodName)
	}
	if result == nil {
		staticStart := time.Now()
		result = s.checkStatic(annotation)
		observability.RecordStageMetric(ctx, s.metrics, stageStatic, result != nil, time.Since(staticStart))
	}
	if result == nil {
		result = &entities.Interaction{
			Source:      entities.SourceNone,
			Risk:        entities.RiskUnknown,
			Explanation: noDataExplanation,
		}
	}

	// The annotation rides along regardless of the winning stage, and fills
	// in the risk grade when the winning narrative produced none.
	result.KnownInteraction = annotation
	if result.Risk == entities.RiskUnknown && annotation != nil {
		result.Risk = annotation.Risk
	}

	result.ID = uuid.NewString()
	result.DrugName = drugName
	result.StandardizedName = concept.GenericName
	result.FoodName = foodName
	result.Disclaimer = entities.Disclaimer
	result.CheckedAt = time.Now()

	observability.RecordLookupMetric(ctx, s.metrics, string(result.Source), string(result.Risk))
	s.publishLookup(ctx, result)

	observability.LoggerFromContext(ctx).Info().
		Str("drug", result.StandardizedName).
		Str("food", result.FoodName).
		Str("source", string(result.Source)).
		Str("risk", string(result.Risk)).
		Msg("interaction lookup completed")

	return result, nil
}

// StandardizeDrug resolves a drug name without running the full pipeline.
func (s *InteractionService) StandardizeDrug(ctx context.Context, name string) (*entities.DrugConcept, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("drug name is required")
	}
	return s.standardizer.Standardize(ctx, name)
}

// standardizeDrug never fails a lookup: on error the raw name is carried
// forward unresolved.
func (s *InteractionService) standardizeDrug(ctx context.Context, drugName string) *entities.DrugConcept {
	concept, err := s.standardizer.Standardize(ctx, drugName)
	if err != nil || concept == nil {
		if err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).
				Str("drug", drugName).
				Msg("standardization failed, using raw name")
		}
		return &entities.DrugConcept{InputName: drugName, GenericName: drugName}
	}
	return concept
}

func (s *InteractionService) checkOfficial(ctx context.Context, drugName, foodName string) *entities.Interaction {
	start := time.Now()
	section, err := s.official.FetchInteractions(ctx, drugName, foodName)
	observability.RecordStageMetric(ctx, s.metrics, stageOfficial, err == nil && section != nil, time.Since(start))
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Str("drug", drugName).
			Msg("official source unavailable, falling through")
		return nil
	}
	if section == nil {
		return nil
	}

	return &entities.Interaction{
		Source:         entities.SourceOfficial,
		Risk:           section.Risk,
		Explanation:    s.explainOfficial(ctx, drugName, foodName, section.Text),
		Recommendation: section.Recommendation,
	}
}

func (s *InteractionService) checkAI(ctx context.Context, drugName, foodName string) *entities.Interaction {
	start := time.Now()
	assessment, err := s.completion.ExplainInteraction(ctx, drugName, foodName)
	succeeded := err == nil && assessment != nil && assessment.HasInteraction
	observability.RecordStageMetric(ctx, s.metrics, stageAI, succeeded, time.Since(start))
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Str("drug", drugName).
			Msg("ai assessment failed, falling through")
		return nil
	}
	// A model that found no interaction is not an answer; the curated table
	// gets the last word.
	if assessment == nil || !assessment.HasInteraction {
		return nil
	}

	return &entities.Interaction{
		Source:         entities.SourceAI,
		Risk:           assessment.Risk,
		Explanation:    assessment.Explanation,
		Recommendation: assessment.Recommendation,
	}
}

func (s *InteractionService) checkStatic(annotation *entities.KnownInteraction) *entities.Interaction {
	if annotation == nil {
		return nil
	}
	return &entities.Interaction{
		Source:         entities.SourceStatic,
		Risk:           annotation.Risk,
		Explanation:    staticExplanation(annotation),
		Recommendation: annotation.Recommendation,
	}
}

// explainOfficial condenses monograph text into something a patient can act
// on. Simplification is best effort: when it fails the raw excerpt ships.
func (s *InteractionService) explainOfficial(ctx context.Context, drugName, foodName, text string) string {
	if s.simplifyEnabled && s.completion != nil {
		simplified, err := s.completion.SimplifyText(ctx, drugName, foodName, text)
		if err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).Msg("monograph simplification failed")
		} else if simplified != "" {
			return simplified
		}
	}
	return truncateExcerpt(text, officialExcerptLength)
}

// publishLookup broadcasts a completed lookup. Best effort: a failed publish
// never fails the lookup.
func (s *InteractionService) publishLookup(ctx context.Context, result *entities.Interaction) {
	if s.eventBus == nil || !s.flags.LookupStreamEnabled() {
		return
	}

	event := entities.NewLookupEvent(result.DrugName, result.FoodName, result.Source, result.Risk)
	if err := s.eventBus.Publish(ctx, providers.EventChannelLookups, event); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to publish lookup event")
		return
	}
	if err := s.eventBus.Publish(ctx, providers.GetRiskChannel(result.Risk), event); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to publish risk channel event")
	}
}

func staticExplanation(annotation *entities.KnownInteraction) string {
	switch {
	case annotation.Mechanism != "" && annotation.Effect != "":
		return annotation.Mechanism + ". " + annotation.Effect + "."
	case annotation.Mechanism != "":
		return annotation.Mechanism + "."
	case annotation.Effect != "":
		return annotation.Effect + "."
	default:
		return "This pairing appears in our curated interaction list."
	}
}

func truncateExcerpt(text string, limit int) string {
	text = strings.TrimSpace(text)
	if len(text) <= limit {
		return text
	}
	cut := strings.LastIndex(text[:limit], " ")
	if cut <= 0 {
		cut = limit
	}
	return text[:cut] + "..."
}
