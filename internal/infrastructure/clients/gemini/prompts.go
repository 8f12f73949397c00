package gemini

import (
	"encoding/json"
	"fmt"
)

const interactionSystemPrompt = `You are a clinical pharmacist assistant for a drug and food interaction checker. Return ONLY valid JSON with this schema:
{
  "has_interaction": boolean,
  "risk": string (one of: "high", "moderate", "low", "unknown"),
  "explanation": string (2-3 short sentences a patient can easily understand),
  "recommendation": string (one short actionable sentence)
}
If there is no known interaction between the drug and the food, set has_interaction to false and explanation to "No known interaction". Keep language simple and non-alarmist. Do not diagnose; general guidance to consult a pharmacist is acceptable.`

const simplifySystemPrompt = `You are a clinical content assistant. Simplify official medical text into 1-2 clear, simple sentences that a patient can easily understand. Provide only the simplified explanation, no additional formatting or disclaimers. Focus on what the patient needs to know in simple terms.`

// interactionPayload mirrors the JSON schema requested from the model.
type interactionPayload struct {
	HasInteraction bool   `json:"has_interaction"`
	Risk           string `json:"risk"`
	Explanation    string `json:"explanation"`
	Recommendation string `json:"recommendation"`
}

func buildInteractionUserPrompt(drugName, foodName string) string {
	return fmt.Sprintf(
		"Drug: %s\nFood: %s\nDoes taking this drug together with this food cause an interaction?\n",
		drugName, foodName,
	)
}

func buildSimplifyUserPrompt(drugName, foodName, officialText string) string {
	// The monograph section can run long; the opening covers the relevant part
	if len(officialText) > 500 {
		officialText = officialText[:500] + "..."
	}
	return fmt.Sprintf(
		"Simplify this official medical information about %s and %s interaction:\n\nOfficial text: %s\n",
		drugName, foodName, officialText,
	)
}

func parseInteractionPayload(data []byte) (*interactionPayload, error) {
	var payload interactionPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse interaction payload: %w", err)
	}
	return &payload, nil
}
