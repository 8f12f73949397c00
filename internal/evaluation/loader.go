package evaluation

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/zatekoja/Drugfoodinteractiondesign/internal/domain/entities"
)

// LoadGoldenPairs reads and parses a golden pair set from a JSON file.
func LoadGoldenPairs(path string) ([]GoldenPair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read golden pairs file: %w", err)
	}

	var pairs []GoldenPair
	if err := json.Unmarshal(data, &pairs); err != nil {
		return nil, fmt.Errorf("failed to parse golden pairs: %w", err)
	}

	return pairs, nil
}

var validDifficulties = map[string]bool{
	DifficultyEasy:   true,
	DifficultyMedium: true,
	DifficultyHard:   true,
}

var validRisks = map[entities.Risk]bool{
	entities.RiskHigh:     true,
	entities.RiskModerate: true,
	entities.RiskLow:      true,
	entities.RiskUnknown:  true,
}

var validSources = map[entities.Source]bool{
	entities.SourceOfficial: true,
	entities.SourceAI:       true,
	entities.SourceStatic:   true,
	entities.SourceNone:     true,
}

// ValidateGoldenPairs checks that all golden pairs have required fields and
// valid enum values.
func ValidateGoldenPairs(pairs []GoldenPair) error {
	seen := make(map[string]struct{}, len(pairs))

	for i, p := range pairs {
		if p.ID == "" {
			return fmt.Errorf("pair at index %d: missing id", i)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("pair at index %d: duplicate id %q", i, p.ID)
		}
		seen[p.ID] = struct{}{}

		if p.Drug == "" {
			return fmt.Errorf("pair %q: missing drug", p.ID)
		}
		if p.Food == "" {
			return fmt.Errorf("pair %q: missing food", p.ID)
		}
		if !validRisks[p.ExpectedRisk] {
			return fmt.Errorf("pair %q: invalid expected_risk %q", p.ID, p.ExpectedRisk)
		}
		if p.ExpectedSource != "" && !validSources[p.ExpectedSource] {
			return fmt.Errorf("pair %q: invalid expected_source %q", p.ID, p.ExpectedSource)
		}
		if !validDifficulties[p.Difficulty] {
			return fmt.Errorf("pair %q: invalid difficulty %q (must be easy/medium/hard)", p.ID, p.Difficulty)
		}
	}

	return nil
}
