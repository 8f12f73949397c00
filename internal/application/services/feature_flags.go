package services

import (
	"os"
)

// FeatureFlags gates the optional stages of a lookup. Both default to
// enabled so a plain deployment gets the full fallback chain.
type FeatureFlags struct {
	aiFallbackEnabled   bool
	lookupStreamEnabled bool
}

func NewFeatureFlags() *FeatureFlags {
	aiFallback := os.Getenv("FEATURE_AI_FALLBACK") != "false"
	lookupStream := os.Getenv("FEATURE_LOOKUP_STREAM") != "false"

	return &FeatureFlags{
		aiFallbackEnabled:   aiFallback,
		lookupStreamEnabled: lookupStream,
	}
}

func (f *FeatureFlags) AIFallbackEnabled() bool {
	return f.aiFallbackEnabled
}

func (f *FeatureFlags) LookupStreamEnabled() bool {
	return f.lookupStreamEnabled
}
