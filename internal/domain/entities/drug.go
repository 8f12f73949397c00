package entities

// DrugConcept is the standardized form of a user-entered drug name.
// GenericName is always populated; when standardization fails it simply
// echoes the cleaned input so downstream stages can proceed.
type DrugConcept struct {
	InputName   string `json:"input_name"`
	GenericName string `json:"generic_name"`
	RxCUI       string `json:"rxcui,omitempty"`
	FullName    string `json:"full_name,omitempty"`
	Resolved    bool   `json:"resolved"`
}
