package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGenericName_FullConceptNames tests dose, form, and brand stripping
func TestGenericName_FullConceptNames(t *testing.T) {
	normalizer := NewDrugNameNormalizer()
	require.NotNil(t, normalizer)

	testCases := []struct {
		input    string
		expected string
	}{
		{"atorvastatin 10 MG Oral Tablet [Lipitor]", "atorvastatin"},
		{"warfarin sodium 5 MG Oral Tablet [Coumadin]", "warfarin"},
		{"sertraline hydrochloride 50 MG Oral Tablet", "sertraline"},
		{"metformin hydrochloride 500 MG Extended Release Oral Tablet", "metformin"},
		{"acetaminophen 325 MG Oral Capsule [Tylenol]", "acetaminophen"},
		{"fluoxetine 20 MG Oral Capsule [Prozac]", "fluoxetine"},
		{"levothyroxine sodium 0.05 MG Oral Tablet [Synthroid]", "levothyroxine"},
		{"metoprolol succinate 25 MG Extended Release Oral Tablet", "metoprolol"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, normalizer.GenericName(tc.input))
		})
	}
}

// TestGenericName_PlainNames verifies already-generic names pass through
func TestGenericName_PlainNames(t *testing.T) {
	normalizer := NewDrugNameNormalizer()

	testCases := []struct {
		input    string
		expected string
	}{
		{"ibuprofen", "ibuprofen"},
		{"Warfarin", "warfarin"},
		{"  lisinopril  ", "lisinopril"},
		{"potassium chloride", "potassium chloride"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, normalizer.GenericName(tc.input))
		})
	}
}

// TestGenericName_FallbackToFirstWord tests the short-residue fallback
func TestGenericName_FallbackToFirstWord(t *testing.T) {
	normalizer := NewDrugNameNormalizer()

	// Everything after the first word is stripped, leaving nothing usable
	result := normalizer.GenericName("Fe 325 MG Oral Tablet")
	assert.Equal(t, "fe", result)
}

// TestGenericName_EmptyInput tests handling of empty input
func TestGenericName_EmptyInput(t *testing.T) {
	normalizer := NewDrugNameNormalizer()

	assert.Equal(t, "", normalizer.GenericName(""))
	assert.Equal(t, "", normalizer.GenericName("   "))
}

// TestNormalize_PreservesOriginalName verifies original name is always preserved
func TestNormalize_PreservesOriginalName(t *testing.T) {
	normalizer := NewDrugNameNormalizer()

	originalNames := []string{
		"atorvastatin 10 MG Oral Tablet [Lipitor]",
		"ibuprofen",
		"WARFARIN SODIUM",
	}

	for _, original := range originalNames {
		result := normalizer.Normalize(original)
		assert.Equal(t, original, result.OriginalName)
		assert.NotEmpty(t, result.GenericName)
	}
}

// TestNormalizeLookupKey tests cache key normalization
func TestNormalizeLookupKey(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"Lipitor", "lipitor"},
		{"  Grapefruit   Juice ", "grapefruit juice"},
		{"AGED CHEESE", "aged cheese"},
		{"", ""},
		{"   ", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeLookupKey(tc.input))
		})
	}
}

// BenchmarkGenericName benchmarks concept name reduction
func BenchmarkGenericName(b *testing.B) {
	normalizer := NewDrugNameNormalizer()

	testInputs := []string{
		"atorvastatin 10 MG Oral Tablet [Lipitor]",
		"metformin hydrochloride 500 MG Extended Release Oral Tablet",
		"warfarin sodium 5 MG Oral Tablet",
		"ibuprofen",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		input := testInputs[i%len(testInputs)]
		normalizer.GenericName(input)
	}
}
