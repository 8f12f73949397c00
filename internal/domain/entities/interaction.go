package entities

import (
	"strings"
	"time"
)

// Disclaimer accompanies every lookup result regardless of source.
const Disclaimer = "This tool provides general information only and should not replace professional medical advice. Always consult your healthcare provider or pharmacist."

// Source identifies which stage of the lookup pipeline produced a result
type Source string

const (
	// SourceOfficial means the text came from a MedlinePlus monograph
	SourceOfficial Source = "official"

	// SourceAI means a generative model produced the explanation
	SourceAI Source = "ai"

	// SourceStatic means the curated local interaction table matched
	SourceStatic Source = "static"

	// SourceNone means every stage came up empty
	SourceNone Source = "none"
)

// Risk grades the severity of a drug and food interaction
type Risk string

const (
	RiskHigh     Risk = "high"
	RiskModerate Risk = "moderate"
	RiskLow      Risk = "low"
	RiskUnknown  Risk = "unknown"
)

// ParseRisk maps free-form severity text to a Risk, defaulting to unknown
func ParseRisk(value string) Risk {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "high", "severe", "major":
		return RiskHigh
	case "moderate", "medium":
		return RiskModerate
	case "low", "minor", "mild":
		return RiskLow
	default:
		return RiskUnknown
	}
}

// KnownInteraction is one curated drug and food pairing from the local table
type KnownInteraction struct {
	Risk           Risk   `json:"risk"`
	Mechanism      string `json:"mechanism"`
	Effect         string `json:"effect"`
	Recommendation string `json:"recommendation"`
}

// Interaction is the outcome of one drug and food lookup
type Interaction struct {
	ID               string            `json:"id"`
	DrugName         string            `json:"drug_name"`
	StandardizedName string            `json:"standardized_name"`
	FoodName         string            `json:"food_name"`
	Source           Source            `json:"source"`
	Risk             Risk              `json:"risk"`
	Explanation      string            `json:"explanation"`
	Recommendation   string            `json:"recommendation,omitempty"`
	KnownInteraction *KnownInteraction `json:"known_interaction,omitempty"`
	Disclaimer       string            `json:"disclaimer"`
	CheckedAt        time.Time         `json:"checked_at"`
}

// Found reports whether any stage produced interaction information
func (i *Interaction) Found() bool {
	return i.Source != SourceNone
}
