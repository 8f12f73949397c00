package cache

import (
	"context"

	"github.com/zatekoja/Drugfoodinteractiondesign/internal/domain/entities"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/domain/providers"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/domain/repositories"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/infrastructure/observability"
	"github.com/zatekoja/Drugfoodinteractiondesign/pkg/utils"
)

// brandGenericMappings resolves the most common US brand names without a
// network call. Keys are lowercase.
var brandGenericMappings = map[string]string{
	"lipitor":    "atorvastatin",
	"zocor":      "simvastatin",
	"coumadin":   "warfarin",
	"tylenol":    "acetaminophen",
	"advil":      "ibuprofen",
	"aspirin":    "acetylsalicylic acid",
	"prozac":     "fluoxetine",
	"zoloft":     "sertraline",
	"paxil":      "paroxetine",
	"lexapro":    "escitalopram",
	"celexa":     "citalopram",
	"wellbutrin": "bupropion",
	"effexor":    "venlafaxine",
	"cymbalta":   "duloxetine",
	"abilify":    "aripiprazole",
	"zyprexa":    "olanzapine",
	"risperdal":  "risperidone",
	"seroquel":   "quetiapine",
	"geodon":     "ziprasidone",
	"clozaril":   "clozapine",
}

// CachedStandardizer decorates a DrugStandardizer with a static brand map
// and a persistent name cache. Resolution order: brand map, cache, wrapped
// standardizer. API answers are written through to the cache, and a name
// the API cannot match is cached as itself so the miss is not repeated.
type CachedStandardizer struct {
	standardizer providers.DrugStandardizer
	nameCache    repositories.NameCacheRepository
}

// NewCachedStandardizer creates a new cached standardizer decorator
func NewCachedStandardizer(standardizer providers.DrugStandardizer, nameCache repositories.NameCacheRepository) providers.DrugStandardizer {
	return &CachedStandardizer{
		standardizer: standardizer,
		nameCache:    nameCache,
	}
}

// Standardize resolves a drug name through the brand map, then the cache,
// then the wrapped standardizer. A cache hit counts as resolved.
func (s *CachedStandardizer) Standardize(ctx context.Context, name string) (*entities.DrugConcept, error) {
	key := utils.NormalizeLookupKey(name)
	if key == "" {
		return s.standardizer.Standardize(ctx, name)
	}

	if generic, ok := brandGenericMappings[key]; ok {
		return &entities.DrugConcept{
			InputName:   name,
			GenericName: generic,
			Resolved:    true,
		}, nil
	}

	if generic, ok := s.nameCache.Lookup(ctx, key); ok {
		return &entities.DrugConcept{
			InputName:   name,
			GenericName: generic,
			Resolved:    true,
		}, nil
	}

	concept, err := s.standardizer.Standardize(ctx, name)
	if err != nil {
		return nil, err
	}

	if storeErr := s.nameCache.Store(ctx, key, concept.GenericName); storeErr != nil {
		observability.LoggerFromContext(ctx).Warn().
			Err(storeErr).
			Str("drug", key).
			Msg("failed to persist name cache entry")
	}

	return concept, nil
}
