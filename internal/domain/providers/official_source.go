package providers

import (
	"context"

	"github.com/zatekoja/Drugfoodinteractiondesign/internal/domain/entities"
)

// InteractionSection is the food-related text extracted from an official
// drug monograph, graded by the warning words it contains.
type InteractionSection struct {
	DrugName       string
	URL            string
	Text           string
	Risk           entities.Risk
	Recommendation string
}

// OfficialSource fetches authoritative food interaction text for a drug.
// A nil section with a nil error means the source has no page for the drug
// or no food-related content on it.
type OfficialSource interface {
	FetchInteractions(ctx context.Context, drugName, foodName string) (*InteractionSection, error)
}
