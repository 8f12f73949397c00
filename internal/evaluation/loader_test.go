package evaluation

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/zatekoja/Drugfoodinteractiondesign/internal/domain/entities"
)

func TestLoadGoldenPairs_ValidFile(t *testing.T) {
	content := `[
		{"id": "p1", "drug": "atorvastatin", "food": "grapefruit", "expected_risk": "high", "expected_source": "static", "difficulty": "easy"},
		{"id": "p2", "drug": "digoxin", "food": "licorice", "expected_risk": "high", "difficulty": "hard"}
	]`
	path := writeTempFile(t, content)

	pairs, err := LoadGoldenPairs(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}
	if pairs[0].ID != "p1" {
		t.Errorf("expected id p1, got %s", pairs[0].ID)
	}
	if pairs[0].ExpectedRisk != entities.RiskHigh {
		t.Errorf("expected high risk, got %s", pairs[0].ExpectedRisk)
	}
	if pairs[0].ExpectedSource != entities.SourceStatic {
		t.Errorf("expected static source, got %s", pairs[0].ExpectedSource)
	}
	if pairs[1].ExpectedSource != "" {
		t.Errorf("expected empty source, got %s", pairs[1].ExpectedSource)
	}
}

func TestLoadGoldenPairs_InvalidFile(t *testing.T) {
	_, err := LoadGoldenPairs("/nonexistent/path.json")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadGoldenPairs_InvalidJSON(t *testing.T) {
	path := writeTempFile(t, `not valid json`)
	_, err := LoadGoldenPairs(path)
	if err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestValidateGoldenPairs_MissingID(t *testing.T) {
	pairs := []GoldenPair{
		{ID: "", Drug: "warfarin", Food: "spinach", ExpectedRisk: entities.RiskModerate, Difficulty: "easy"},
	}
	if err := ValidateGoldenPairs(pairs); err == nil {
		t.Error("expected validation error for missing ID")
	}
}

func TestValidateGoldenPairs_MissingDrug(t *testing.T) {
	pairs := []GoldenPair{
		{ID: "p1", Drug: "", Food: "spinach", ExpectedRisk: entities.RiskModerate, Difficulty: "easy"},
	}
	if err := ValidateGoldenPairs(pairs); err == nil {
		t.Error("expected validation error for missing drug")
	}
}

func TestValidateGoldenPairs_MissingFood(t *testing.T) {
	pairs := []GoldenPair{
		{ID: "p1", Drug: "warfarin", Food: "", ExpectedRisk: entities.RiskModerate, Difficulty: "easy"},
	}
	if err := ValidateGoldenPairs(pairs); err == nil {
		t.Error("expected validation error for missing food")
	}
}

func TestValidateGoldenPairs_InvalidRisk(t *testing.T) {
	pairs := []GoldenPair{
		{ID: "p1", Drug: "warfarin", Food: "spinach", ExpectedRisk: entities.Risk("catastrophic"), Difficulty: "easy"},
	}
	if err := ValidateGoldenPairs(pairs); err == nil {
		t.Error("expected validation error for invalid risk")
	}
}

func TestValidateGoldenPairs_InvalidSource(t *testing.T) {
	pairs := []GoldenPair{
		{ID: "p1", Drug: "warfarin", Food: "spinach", ExpectedRisk: entities.RiskModerate, ExpectedSource: entities.Source("oracle"), Difficulty: "easy"},
	}
	if err := ValidateGoldenPairs(pairs); err == nil {
		t.Error("expected validation error for invalid source")
	}
}

func TestValidateGoldenPairs_InvalidDifficulty(t *testing.T) {
	pairs := []GoldenPair{
		{ID: "p1", Drug: "warfarin", Food: "spinach", ExpectedRisk: entities.RiskModerate, Difficulty: "impossible"},
	}
	if err := ValidateGoldenPairs(pairs); err == nil {
		t.Error("expected validation error for invalid difficulty")
	}
}

func TestValidateGoldenPairs_DuplicateIDs(t *testing.T) {
	pairs := []GoldenPair{
		{ID: "p1", Drug: "warfarin", Food: "spinach", ExpectedRisk: entities.RiskModerate, Difficulty: "easy"},
		{ID: "p1", Drug: "warfarin", Food: "kale", ExpectedRisk: entities.RiskModerate, Difficulty: "medium"},
	}
	if err := ValidateGoldenPairs(pairs); err == nil {
		t.Error("expected validation error for duplicate IDs")
	}
}

func TestValidateGoldenPairs_Valid(t *testing.T) {
	pairs := []GoldenPair{
		{ID: "p1", Drug: "warfarin", Food: "spinach", ExpectedRisk: entities.RiskModerate, ExpectedSource: entities.SourceStatic, Difficulty: "easy"},
		{ID: "p2", Drug: "digoxin", Food: "licorice", ExpectedRisk: entities.RiskHigh, Difficulty: "hard"},
	}
	if err := ValidateGoldenPairs(pairs); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// The checked-in golden set must always satisfy its own validator.
func TestGoldenPairsAsset_Valid(t *testing.T) {
	pairs, err := LoadGoldenPairs(goldenPairsAssetPath())
	if err != nil {
		t.Fatalf("failed to load checked-in golden pairs: %v", err)
	}
	if err := ValidateGoldenPairs(pairs); err != nil {
		t.Errorf("checked-in golden pairs are invalid: %v", err)
	}
	if len(pairs) == 0 {
		t.Error("expected a non-empty golden set")
	}
}

func goldenPairsAssetPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "config", "golden_pairs.json")
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}
