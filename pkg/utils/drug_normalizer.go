package utils

import (
	"regexp"
	"sort"
	"strings"
)

// dosageForms lists the RxNorm dose form descriptors stripped from concept
// names. Compound forms must sort ahead of their suffixes so that
// "extended release oral tablet" is removed before "oral tablet" matches.
var dosageForms = []string{
	"extended release oral tablet",
	"delayed release oral tablet",
	"disintegrating oral tablet",
	"chewable tablet",
	"oral tablet",
	"oral capsule",
	"oral solution",
	"oral suspension",
	"oral powder",
	"injectable solution",
	"injectable suspension",
	"prefilled syringe",
	"injection",
	"topical cream",
	"topical gel",
	"topical ointment",
	"transdermal system",
	"ophthalmic solution",
	"nasal spray",
	"metered dose inhaler",
	"inhalation powder",
	"rectal suppository",
	"cream",
	"gel",
	"ointment",
	"patch",
	"tablet",
	"capsule",
}

// saltSuffixes lists salt and ester names that trail the ingredient in many
// RxNorm concept names ("warfarin sodium", "sertraline hydrochloride").
var saltSuffixes = []string{
	"hydrochloride",
	"hcl",
	"sodium",
	"potassium",
	"calcium",
	"sulfate",
	"phosphate",
	"acetate",
	"citrate",
	"tartrate",
	"bitartrate",
	"maleate",
	"succinate",
	"fumarate",
	"besylate",
	"mesylate",
}

// NormalizedDrugName contains the cleaned forms of a drug concept name
type NormalizedDrugName struct {
	GenericName  string
	OriginalName string
}

// DrugNameNormalizer reduces full RxNorm concept names to their ingredient
type DrugNameNormalizer struct {
	bracketPattern *regexp.Regexp
	dosePattern    *regexp.Regexp
	formPattern    *regexp.Regexp
	saltPattern    *regexp.Regexp
	spacePattern   *regexp.Regexp
}

// NewDrugNameNormalizer creates and initializes a new normalizer
func NewDrugNameNormalizer() *DrugNameNormalizer {
	// Sort by length (longest first) to match longer descriptors first
	forms := make([]string, len(dosageForms))
	copy(forms, dosageForms)
	sort.Slice(forms, func(i, j int) bool {
		return len(forms[i]) > len(forms[j])
	})
	for i, form := range forms {
		forms[i] = regexp.QuoteMeta(form)
	}

	salts := make([]string, len(saltSuffixes))
	for i, salt := range saltSuffixes {
		salts[i] = regexp.QuoteMeta(salt)
	}

	return &DrugNameNormalizer{
		bracketPattern: regexp.MustCompile(`\s*\[[^\]]*\]`),
		dosePattern:    regexp.MustCompile(`(?i)\b\d+(\.\d+)?\s*(mg/ml|mcg/ml|mg/hr|mg|mcg|ml|gm|g|iu|unt|meq|%)\b`),
		formPattern:    regexp.MustCompile(`(?i)\b(` + strings.Join(forms, "|") + `)\b`),
		saltPattern:    regexp.MustCompile(`(?i)\s+(` + strings.Join(salts, "|") + `)\b`),
		spacePattern:   regexp.MustCompile(`\s+`),
	}
}

// Normalize extracts the generic ingredient from a full concept name.
// "atorvastatin 10 MG Oral Tablet [Lipitor]" becomes "atorvastatin".
func (dn *DrugNameNormalizer) Normalize(originalName string) *NormalizedDrugName {
	return &NormalizedDrugName{
		GenericName:  dn.GenericName(originalName),
		OriginalName: originalName,
	}
}

// GenericName returns only the ingredient portion of a full concept name
func (dn *DrugNameNormalizer) GenericName(fullName string) string {
	trimmed := strings.TrimSpace(fullName)
	if trimmed == "" {
		return ""
	}

	// Step 1: Drop bracketed brand qualifiers
	cleaned := dn.bracketPattern.ReplaceAllString(trimmed, "")

	// Step 2: Remove dose amounts and units
	cleaned = dn.dosePattern.ReplaceAllString(cleaned, "")

	// Step 3: Remove dose form descriptors
	cleaned = dn.formPattern.ReplaceAllString(cleaned, "")

	// Step 4: Strip trailing salt names
	cleaned = dn.saltPattern.ReplaceAllString(cleaned, "")

	cleaned = dn.spacePattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.ToLower(strings.TrimSpace(cleaned))
	cleaned = strings.Trim(cleaned, ",-/ ")

	// A name reduced to almost nothing means the patterns ate the
	// ingredient too. Fall back to the first word of the original.
	if len(cleaned) < 3 {
		fields := strings.Fields(strings.ToLower(trimmed))
		if len(fields) > 0 {
			return strings.Trim(fields[0], ",-/")
		}
	}

	return cleaned
}

// NormalizeLookupKey lowercases and collapses whitespace so cache and table
// lookups are insensitive to user formatting
func NormalizeLookupKey(value string) string {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	if trimmed == "" {
		return ""
	}
	return strings.Join(strings.Fields(trimmed), " ")
}
