package services

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/zatekoja/Drugfoodinteractiondesign/internal/domain/entities"
)

func testDataDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "data")
}

func newTestPredictor(t *testing.T) *InteractionPredictor {
	t.Helper()
	predictor, err := NewInteractionPredictor(filepath.Join(testDataDir(), "known_interactions.json"))
	if err != nil {
		t.Fatalf("failed to load interaction table: %v", err)
	}
	return predictor
}

// --- Exact matching ---

func TestPredict_ExactMatch(t *testing.T) {
	predictor := newTestPredictor(t)

	annotation := predictor.Predict("atorvastatin", "grapefruit")
	if annotation == nil {
		t.Fatal("expected an annotation for atorvastatin + grapefruit")
	}
	if annotation.Risk != entities.RiskHigh {
		t.Errorf("expected high risk, got %q", annotation.Risk)
	}
	if annotation.Recommendation == "" || annotation.Mechanism == "" {
		t.Errorf("expected populated annotation, got %+v", annotation)
	}
}

func TestPredict_ExactMatchMultiWordFood(t *testing.T) {
	predictor := newTestPredictor(t)

	annotation := predictor.Predict("phenelzine", "Aged Cheese")
	if annotation == nil {
		t.Fatal("expected an annotation for phenelzine + aged cheese")
	}
	if annotation.Risk != entities.RiskHigh {
		t.Errorf("expected high risk, got %q", annotation.Risk)
	}
}

// --- Category matching ---

func TestPredict_CategoryMember(t *testing.T) {
	predictor := newTestPredictor(t)

	annotation := predictor.Predict("atorvastatin", "grapefruit juice")
	if annotation == nil {
		t.Fatal("expected grapefruit juice to match via the grapefruit category")
	}
	if annotation.Risk != entities.RiskHigh {
		t.Errorf("expected high risk, got %q", annotation.Risk)
	}
}

func TestPredict_CategoryNameAsTableKey(t *testing.T) {
	predictor := newTestPredictor(t)

	annotation := predictor.Predict("tetracycline", "milk")
	if annotation == nil {
		t.Fatal("expected milk to match the dairy table entry")
	}
	if annotation.Risk != entities.RiskModerate {
		t.Errorf("expected moderate risk, got %q", annotation.Risk)
	}
}

func TestPredict_CategorySibling(t *testing.T) {
	predictor := newTestPredictor(t)

	// kale shares the vitamin K category with spinach
	annotation := predictor.Predict("warfarin", "kale")
	if annotation == nil {
		t.Fatal("expected kale to match via the vitamin K category")
	}
	if annotation.Risk != entities.RiskModerate {
		t.Errorf("expected moderate risk, got %q", annotation.Risk)
	}
}

// --- Partial matching ---

func TestPredict_PartialDrugName(t *testing.T) {
	predictor := newTestPredictor(t)

	annotation := predictor.Predict("warfarin sodium", "spinach")
	if annotation == nil {
		t.Fatal("expected warfarin sodium to match the warfarin entry")
	}
}

func TestPredict_PartialFoodName(t *testing.T) {
	predictor := newTestPredictor(t)

	annotation := predictor.Predict("lisinopril", "bananas")
	if annotation == nil {
		t.Fatal("expected bananas to match the banana entry")
	}
	if annotation.Risk != entities.RiskModerate {
		t.Errorf("expected moderate risk, got %q", annotation.Risk)
	}
}

// --- Misses and edge cases ---

func TestPredict_NoMatch(t *testing.T) {
	predictor := newTestPredictor(t)

	if annotation := predictor.Predict("acetaminophen", "bananas"); annotation != nil {
		t.Errorf("expected no annotation, got %+v", annotation)
	}
}

func TestPredict_EmptyInputs(t *testing.T) {
	predictor := newTestPredictor(t)

	if annotation := predictor.Predict("", "grapefruit"); annotation != nil {
		t.Errorf("expected nil for empty drug, got %+v", annotation)
	}
	if annotation := predictor.Predict("warfarin", "  "); annotation != nil {
		t.Errorf("expected nil for empty food, got %+v", annotation)
	}
}

func TestPredict_ReturnsCopy(t *testing.T) {
	predictor := newTestPredictor(t)

	first := predictor.Predict("atorvastatin", "grapefruit")
	first.Recommendation = "tampered"

	second := predictor.Predict("atorvastatin", "grapefruit")
	if second.Recommendation == "tampered" {
		t.Error("expected Predict to return an independent copy")
	}
}

// --- Synonyms ---

func TestFoodSynonyms(t *testing.T) {
	predictor := newTestPredictor(t)

	synonyms := predictor.FoodSynonyms("spinach")
	want := map[string]bool{"banana": false, "kale": false, "broccoli": false}
	for _, synonym := range synonyms {
		if synonym == "spinach" {
			t.Error("synonyms must not include the food itself")
		}
		if _, ok := want[synonym]; ok {
			want[synonym] = true
		}
	}
	for synonym, found := range want {
		if !found {
			t.Errorf("expected %q among synonyms %v", synonym, synonyms)
		}
	}

	if synonyms := predictor.FoodSynonyms("pizza"); len(synonyms) != 0 {
		t.Errorf("expected no synonyms for uncategorized food, got %v", synonyms)
	}
}

// --- Table loading ---

func TestNewInteractionPredictor_TableSize(t *testing.T) {
	predictor := newTestPredictor(t)
	if predictor.Size() != 13 {
		t.Errorf("expected 13 curated entries, got %d", predictor.Size())
	}
}

func TestNewInteractionPredictor_MissingFile(t *testing.T) {
	if _, err := NewInteractionPredictor(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing table")
	}
}

func TestNewInteractionPredictor_InvalidRisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "known_interactions.json")
	table := `{"interactions":[{"drug":"a","food":"b","risk":"catastrophic"}],"food_categories":{}}`
	if err := os.WriteFile(path, []byte(table), 0o644); err != nil {
		t.Fatalf("failed to write table: %v", err)
	}

	if _, err := NewInteractionPredictor(path); err == nil {
		t.Fatal("expected error for invalid risk level")
	}
}

func TestNewInteractionPredictor_EmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "known_interactions.json")
	if err := os.WriteFile(path, []byte(`{"interactions":[],"food_categories":{}}`), 0o644); err != nil {
		t.Fatalf("failed to write table: %v", err)
	}

	if _, err := NewInteractionPredictor(path); err == nil {
		t.Fatal("expected error for empty table")
	}
}
