package providers

import (
	"context"
	"errors"

	"github.com/zatekoja/Drugfoodinteractiondesign/internal/domain/entities"
)

// ErrCompletionUnauthorized indicates the completion backend rejected the
// configured credentials.
var ErrCompletionUnauthorized = errors.New("completion provider unauthorized")

// CompletionAssessment is the model's structured answer for a drug and food
// pair. HasInteraction false means the model found no known interaction and
// the caller should fall through to the curated table.
type CompletionAssessment struct {
	HasInteraction bool
	Risk           entities.Risk
	Explanation    string
	Recommendation string
}

// CompletionProvider defines a generative text backend used by the AI stage
type CompletionProvider interface {
	// ExplainInteraction asks the model whether the drug and food interact
	ExplainInteraction(ctx context.Context, drugName, foodName string) (*CompletionAssessment, error)

	// SimplifyText condenses official monograph text into one or two
	// plain-language sentences
	SimplifyText(ctx context.Context, drugName, foodName, officialText string) (string, error)
}
