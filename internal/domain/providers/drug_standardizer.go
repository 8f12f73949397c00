package providers

import (
	"context"

	"github.com/zatekoja/Drugfoodinteractiondesign/internal/domain/entities"
)

// DrugStandardizer resolves free-text drug names (brand or generic, possibly
// misspelled) into standardized concepts. A name the terminology source
// cannot match is not an error: it resolves to itself with Resolved false.
// Errors are reserved for transport failures.
type DrugStandardizer interface {
	Standardize(ctx context.Context, name string) (*entities.DrugConcept, error)
}
