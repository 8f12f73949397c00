//go:build integration_live

// These tests hit the real RxNorm API and MedlinePlus site. They are tagged
// separately from the Redis integration tests because external pages and
// terminology data drift over time.

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/infrastructure/clients/medline"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/infrastructure/clients/rxnorm"
)

func TestRxNormStandardizeBrandNameLive(t *testing.T) {
	client := rxnorm.NewClient(nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	concept, err := client.Standardize(ctx, "Lipitor")
	require.NoError(t, err)
	require.NotNil(t, concept)

	assert.True(t, concept.Resolved)
	assert.Contains(t, concept.GenericName, "atorvastatin")
}

func TestRxNormStandardizeMisspellingLive(t *testing.T) {
	client := rxnorm.NewClient(nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	concept, err := client.Standardize(ctx, "warfrin")
	require.NoError(t, err)
	require.NotNil(t, concept)

	assert.True(t, concept.Resolved)
	assert.Contains(t, concept.GenericName, "warfarin")
}

func TestMedlineFetchInteractionsLive(t *testing.T) {
	client, err := medline.NewClient(nil, "../../data/drug_lookup.json")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	section, err := client.FetchInteractions(ctx, "atorvastatin", "grapefruit")
	require.NoError(t, err)
	require.NotNil(t, section, "atorvastatin monograph should mention grapefruit")

	assert.NotEmpty(t, section.Text)
	assert.NotEmpty(t, section.URL)
}

func TestMedlineFetchInteractionsUnknownDrugLive(t *testing.T) {
	client, err := medline.NewClient(nil, "../../data/drug_lookup.json")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Not in the URL table, so no request is made at all.
	section, err := client.FetchInteractions(ctx, "notarealdrug", "grapefruit")
	require.NoError(t, err)
	assert.Nil(t, section)
}
