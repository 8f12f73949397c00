package repositories

import (
	"context"
)

// NameCacheRepository persists resolved drug name mappings so repeat lookups
// skip the standardization API. Keys are the lowercased user input.
type NameCacheRepository interface {
	// Lookup returns the cached generic name for a raw input
	Lookup(ctx context.Context, name string) (string, bool)

	// Store persists a resolved mapping, overwriting any existing entry
	Store(ctx context.Context, name, generic string) error

	// Entries returns a copy of every cached mapping
	Entries(ctx context.Context) (map[string]string, error)
}
