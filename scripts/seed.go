package main

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/zatekoja/Drugfoodinteractiondesign/internal/application/services"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/infrastructure/clients/medline"
	"github.com/zatekoja/Drugfoodinteractiondesign/pkg/config"
)

// Regenerates the curated data tables under data/. The API and the offline
// evaluation both load these files at startup; this script is where their
// contents are maintained.

type interactionRecord struct {
	Drug           string `json:"drug"`
	Food           string `json:"food"`
	Risk           string `json:"risk"`
	Mechanism      string `json:"mechanism"`
	Effect         string `json:"effect"`
	Recommendation string `json:"recommendation"`
}

type interactionTable struct {
	Interactions   []interactionRecord `json:"interactions"`
	FoodCategories map[string][]string `json:"food_categories"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 1. Seed the drug URL lookup table (MedlinePlus drug information pages)
	drugLookup := map[string]string{
		"acetaminophen":        "https://medlineplus.gov/druginfo/meds/a681004.html",
		"acetylsalicylic acid": "https://medlineplus.gov/druginfo/meds/a682878.html",
		"aripiprazole":         "https://medlineplus.gov/druginfo/meds/a603012.html",
		"atorvastatin":         "https://medlineplus.gov/druginfo/meds/a600045.html",
		"bupropion":            "https://medlineplus.gov/druginfo/meds/a695033.html",
		"ciprofloxacin":        "https://medlineplus.gov/druginfo/meds/a688016.html",
		"citalopram":           "https://medlineplus.gov/druginfo/meds/a699001.html",
		"clozapine":            "https://medlineplus.gov/druginfo/meds/a691001.html",
		"duloxetine":           "https://medlineplus.gov/druginfo/meds/a604030.html",
		"escitalopram":         "https://medlineplus.gov/druginfo/meds/a603005.html",
		"fluoxetine":           "https://medlineplus.gov/druginfo/meds/a689006.html",
		"ibuprofen":            "https://medlineplus.gov/druginfo/meds/a682159.html",
		"levothyroxine":        "https://medlineplus.gov/druginfo/meds/a682461.html",
		"lisinopril":           "https://medlineplus.gov/druginfo/meds/a692051.html",
		"metformin":            "https://medlineplus.gov/druginfo/meds/a696005.html",
		"metoprolol":           "https://medlineplus.gov/druginfo/meds/a682864.html",
		"olanzapine":           "https://medlineplus.gov/druginfo/meds/a601213.html",
		"paroxetine":           "https://medlineplus.gov/druginfo/meds/a698032.html",
		"phenelzine":           "https://medlineplus.gov/druginfo/meds/a682089.html",
		"quetiapine":           "https://medlineplus.gov/druginfo/meds/a698019.html",
		"risperidone":          "https://medlineplus.gov/druginfo/meds/a694015.html",
		"sertraline":           "https://medlineplus.gov/druginfo/meds/a697048.html",
		"simvastatin":          "https://medlineplus.gov/druginfo/meds/a692030.html",
		"spironolactone":       "https://medlineplus.gov/druginfo/meds/a682627.html",
		"tetracycline":         "https://medlineplus.gov/druginfo/meds/a682098.html",
		"tranylcypromine":      "https://medlineplus.gov/druginfo/meds/a682088.html",
		"venlafaxine":          "https://medlineplus.gov/druginfo/meds/a694020.html",
		"warfarin":             "https://medlineplus.gov/druginfo/meds/a682277.html",
		"ziprasidone":          "https://medlineplus.gov/druginfo/meds/a699062.html",
	}

	lookupPath := cfg.Paths.LookupTablePath()
	if err := writeJSON(lookupPath, drugLookup); err != nil {
		log.Fatalf("Failed to write drug lookup table: %v", err)
	}
	log.Printf("Wrote %d drug URL entries to %s", len(drugLookup), lookupPath)

	// 2. Seed the known interaction table
	table := interactionTable{
		Interactions: []interactionRecord{
			{
				Drug: "atorvastatin", Food: "grapefruit", Risk: "High",
				Mechanism:      "Grapefruit inhibits CYP3A4 enzyme, increasing atorvastatin concentration",
				Effect:         "Increased risk of muscle damage and liver problems",
				Recommendation: "Avoid grapefruit and grapefruit juice while taking atorvastatin",
			},
			{
				Drug: "simvastatin", Food: "grapefruit", Risk: "High",
				Mechanism:      "Grapefruit inhibits CYP3A4, increasing simvastatin levels",
				Effect:         "Higher risk of muscle pain and liver damage",
				Recommendation: "Avoid grapefruit products completely",
			},
			{
				Drug: "warfarin", Food: "spinach", Risk: "Moderate",
				Mechanism:      "Spinach is high in vitamin K, which counteracts warfarin",
				Effect:         "Reduced anticoagulant effect, increased clotting risk",
				Recommendation: "Maintain consistent vitamin K intake, don't suddenly change diet",
			},
			{
				Drug: "warfarin", Food: "cranberry", Risk: "Moderate",
				Mechanism:      "Cranberry may increase warfarin's anticoagulant effect",
				Effect:         "Increased bleeding risk",
				Recommendation: "Limit cranberry products and monitor for bleeding",
			},
			{
				Drug: "tetracycline", Food: "dairy", Risk: "Moderate",
				Mechanism:      "Calcium in dairy products binds to tetracycline",
				Effect:         "Reduced antibiotic absorption and effectiveness",
				Recommendation: "Take tetracycline 2 hours before or 4 hours after dairy",
			},
			{
				Drug: "ciprofloxacin", Food: "dairy", Risk: "Moderate",
				Mechanism:      "Calcium interferes with ciprofloxacin absorption",
				Effect:         "Decreased antibiotic effectiveness",
				Recommendation: "Avoid dairy products 2 hours before and after taking ciprofloxacin",
			},
			{
				Drug: "lisinopril", Food: "banana", Risk: "Moderate",
				Mechanism:      "Bananas are high in potassium, lisinopril can increase potassium levels",
				Effect:         "Risk of hyperkalemia (high potassium)",
				Recommendation: "Monitor potassium intake, avoid excessive bananas",
			},
			{
				Drug: "spironolactone", Food: "banana", Risk: "Moderate",
				Mechanism:      "Both spironolactone and bananas increase potassium",
				Effect:         "Increased risk of hyperkalemia",
				Recommendation: "Limit high-potassium foods like bananas",
			},
			{
				Drug: "phenelzine", Food: "aged cheese", Risk: "High",
				Mechanism:      "Aged cheese contains tyramine, MAOIs prevent its breakdown",
				Effect:         "Tyramine buildup can cause severe hypertension",
				Recommendation: "Avoid aged cheeses, cured meats, and fermented foods",
			},
			{
				Drug: "tranylcypromine", Food: "red wine", Risk: "High",
				Mechanism:      "Red wine contains tyramine, MAOIs prevent its metabolism",
				Effect:         "Dangerous blood pressure spikes",
				Recommendation: "Avoid red wine and other tyramine-rich foods",
			},
			{
				Drug: "metformin", Food: "alcohol", Risk: "Moderate",
				Mechanism:      "Alcohol can increase metformin's effect on lactic acid",
				Effect:         "Increased risk of lactic acidosis",
				Recommendation: "Limit alcohol consumption while taking metformin",
			},
			{
				Drug: "levothyroxine", Food: "soy", Risk: "Moderate",
				Mechanism:      "Soy can interfere with levothyroxine absorption",
				Effect:         "Reduced thyroid hormone effectiveness",
				Recommendation: "Take levothyroxine 4 hours before or after soy products",
			},
			{
				Drug: "levothyroxine", Food: "iron supplements", Risk: "Moderate",
				Mechanism:      "Iron can bind to levothyroxine in the gut",
				Effect:         "Decreased thyroid hormone absorption",
				Recommendation: "Separate iron supplements by 4 hours from levothyroxine",
			},
		},
		FoodCategories: map[string][]string{
			"dairy":          {"milk", "cheese", "yogurt", "cream", "butter", "ice cream"},
			"grapefruit":     {"grapefruit", "grapefruit juice", "citrus"},
			"high_potassium": {"banana", "potato", "tomato", "avocado", "spinach", "kale"},
			"high_vitamin_k": {"spinach", "kale", "broccoli", "brussels sprouts", "cabbage"},
			"iron_rich":      {"red meat", "spinach", "beans", "lentils", "iron supplements"},
			"tyramine_rich":  {"aged cheese", "cured meat", "salami", "pepperoni", "red wine", "beer"},
		},
	}

	interactionPath := cfg.Paths.InteractionTablePath()
	if err := writeJSON(interactionPath, table); err != nil {
		log.Fatalf("Failed to write interaction table: %v", err)
	}
	log.Printf("Wrote %d interactions and %d food categories to %s",
		len(table.Interactions), len(table.FoodCategories), interactionPath)

	// 3. Verify both tables load through the same paths the services use
	predictor, err := services.NewInteractionPredictor(interactionPath)
	if err != nil {
		log.Fatalf("Seeded interaction table failed to load: %v", err)
	}
	medlineClient, err := medline.NewClient(&cfg.Medline, lookupPath)
	if err != nil {
		log.Fatalf("Seeded lookup table failed to load: %v", err)
	}

	log.Printf("Seeding completed successfully: %d interactions, %d lookup drugs",
		predictor.Size(), len(medlineClient.KnownDrugs()))
}

func writeJSON(path string, value any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
