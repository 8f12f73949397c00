package services

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/zatekoja/Drugfoodinteractiondesign/internal/domain/entities"
)

// knownInteractionTable is the on-disk shape of data/known_interactions.json.
type knownInteractionTable struct {
	Interactions   []tableInteraction  `json:"interactions"`
	FoodCategories map[string][]string `json:"food_categories"`
}

type tableInteraction struct {
	Drug           string `json:"drug"`
	Food           string `json:"food"`
	Risk           string `json:"risk"`
	Mechanism      string `json:"mechanism"`
	Effect         string `json:"effect"`
	Recommendation string `json:"recommendation"`
}

type predictorEntry struct {
	drug       string
	food       string
	annotation entities.KnownInteraction
}

// InteractionPredictor answers (drug, food) lookups from the curated
// interaction table. Food categories widen the match: a query for any food
// in a category also matches a table entry keyed by the category name or by
// another food sharing it.
type InteractionPredictor struct {
	entries       []predictorEntry
	byDrug        map[string][]int
	categoryNames []string
	categories    map[string][]string
}

// NewInteractionPredictor loads and validates the interaction table at
// tablePath.
func NewInteractionPredictor(tablePath string) (*InteractionPredictor, error) {
	data, err := os.ReadFile(tablePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read interaction table: %w", err)
	}

	var table knownInteractionTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse interaction table: %w", err)
	}
	if len(table.Interactions) == 0 {
		return nil, fmt.Errorf("interaction table %s has no entries", tablePath)
	}

	p := &InteractionPredictor{
		byDrug:     make(map[string][]int),
		categories: make(map[string][]string),
	}

	for i, row := range table.Interactions {
		drug := normalizeTerm(row.Drug)
		food := normalizeTerm(row.Food)
		if drug == "" || food == "" {
			return nil, fmt.Errorf("interaction table row %d is missing drug or food", i)
		}
		risk, err := parseTableRisk(row.Risk)
		if err != nil {
			return nil, fmt.Errorf("interaction table row %d: %w", i, err)
		}

		p.entries = append(p.entries, predictorEntry{
			drug: drug,
			food: food,
			annotation: entities.KnownInteraction{
				Risk:           risk,
				Mechanism:      row.Mechanism,
				Effect:         row.Effect,
				Recommendation: row.Recommendation,
			},
		})
		p.byDrug[drug] = append(p.byDrug[drug], len(p.entries)-1)
	}

	for name, foods := range table.FoodCategories {
		category := normalizeTerm(name)
		if category == "" {
			continue
		}
		members := make([]string, 0, len(foods))
		for _, food := range foods {
			if food = normalizeTerm(food); food != "" {
				members = append(members, food)
			}
		}
		p.categories[category] = members
		p.categoryNames = append(p.categoryNames, category)
	}
	sort.Strings(p.categoryNames)

	return p, nil
}

// Predict returns the curated annotation for a drug and food, or nil when
// the table has nothing. Match order: exact food key, shared food category,
// partial containment.
func (p *InteractionPredictor) Predict(drugName, foodName string) *entities.KnownInteraction {
	drug := normalizeTerm(drugName)
	food := normalizeTerm(foodName)
	if drug == "" || food == "" {
		return nil
	}

	for _, idx := range p.byDrug[drug] {
		if p.entries[idx].food == food {
			annotation := p.entries[idx].annotation
			return &annotation
		}
	}

	for _, name := range p.categoryNames {
		if !p.categoryContains(name, food) {
			continue
		}
		for _, idx := range p.byDrug[drug] {
			if p.categoryContains(name, p.entries[idx].food) {
				annotation := p.entries[idx].annotation
				return &annotation
			}
		}
	}

	// partial containment, for drug classes and compound food names
	for _, entry := range p.entries {
		if !strings.Contains(entry.drug, drug) && !strings.Contains(drug, entry.drug) {
			continue
		}
		if entry.food == food || strings.Contains(entry.food, food) || strings.Contains(food, entry.food) {
			annotation := entry.annotation
			return &annotation
		}
	}

	return nil
}

// FoodSynonyms returns the other foods sharing a category with the given
// food, used to widen official-source text filtering.
func (p *InteractionPredictor) FoodSynonyms(foodName string) []string {
	food := normalizeTerm(foodName)
	if food == "" {
		return nil
	}

	seen := map[string]struct{}{food: {}}
	var synonyms []string
	for _, name := range p.categoryNames {
		if !p.categoryContains(name, food) {
			continue
		}
		for _, member := range p.categories[name] {
			if _, ok := seen[member]; ok {
				continue
			}
			seen[member] = struct{}{}
			synonyms = append(synonyms, member)
		}
	}
	return synonyms
}

// Size returns the number of table entries.
func (p *InteractionPredictor) Size() int {
	return len(p.entries)
}

// categoryContains reports whether the category covers the food, either as
// a member or as the category name itself.
func (p *InteractionPredictor) categoryContains(category, food string) bool {
	if category == food {
		return true
	}
	for _, member := range p.categories[category] {
		if member == food {
			return true
		}
	}
	return false
}

func normalizeTerm(value string) string {
	value = strings.ReplaceAll(value, "_", " ")
	return strings.Join(strings.Fields(strings.ToLower(value)), " ")
}

func parseTableRisk(value string) (entities.Risk, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "high":
		return entities.RiskHigh, nil
	case "moderate":
		return entities.RiskModerate, nil
	case "low", "none":
		return entities.RiskLow, nil
	default:
		return entities.RiskUnknown, fmt.Errorf("unknown risk level %q", value)
	}
}
