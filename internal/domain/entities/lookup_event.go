package entities

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// LookupEventType represents the type of lookup event
type LookupEventType string

const (
	LookupEventTypeCompleted LookupEventType = "lookup_completed"
)

// LookupEvent represents a real-time notification that an interaction check
// finished. Events feed the live activity stream on the UI.
type LookupEvent struct {
	ID        string          `json:"id"`
	EventType LookupEventType `json:"event_type"`
	DrugName  string          `json:"drug_name"`
	FoodName  string          `json:"food_name"`
	Source    Source          `json:"source"`
	Risk      Risk            `json:"risk"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewLookupEvent creates a new lookup event
func NewLookupEvent(drugName, foodName string, source Source, risk Risk) *LookupEvent {
	return &LookupEvent{
		ID:        generateEventID(),
		EventType: LookupEventTypeCompleted,
		DrugName:  drugName,
		FoodName:  foodName,
		Source:    source,
		Risk:      risk,
		Timestamp: time.Now(),
	}
}

// generateEventID generates a unique event ID
func generateEventID() string {
	return time.Now().Format("20060102150405") + "-" + randomString(8)
}

// randomString generates a random string of specified length
func randomString(length int) string {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp-based if crypto/rand fails
		return time.Now().Format("150405.000")
	}
	return hex.EncodeToString(bytes)[:length]
}
