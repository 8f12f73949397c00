package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zatekoja/Drugfoodinteractiondesign/internal/domain/entities"
	apperrors "github.com/zatekoja/Drugfoodinteractiondesign/pkg/errors"
)

// InteractionService is the slice of the lookup service the HTTP layer needs
type InteractionService interface {
	CheckInteraction(ctx context.Context, drugName, foodName string) (*entities.Interaction, error)
	StandardizeDrug(ctx context.Context, name string) (*entities.DrugConcept, error)
}

// InteractionHandler handles interaction lookup HTTP requests
type InteractionHandler struct {
	service InteractionService
}

// NewInteractionHandler creates a new interaction handler
func NewInteractionHandler(service InteractionService) *InteractionHandler {
	return &InteractionHandler{
		service: service,
	}
}

// CheckInteraction handles GET /api/interactions?drug=X&food=Y
func (h *InteractionHandler) CheckInteraction(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	drug := query.Get("drug")
	food := query.Get("food")

	result, err := h.service.CheckInteraction(r.Context(), drug, food)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// StandardizeDrug handles GET /api/drugs/standardize?name=X
func (h *InteractionHandler) StandardizeDrug(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")

	concept, err := h.service.StandardizeDrug(r.Context(), name)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, concept)
}

// examplePair is one suggested drug and food combination for the UI chips
type examplePair struct {
	Drug string `json:"drug"`
	Food string `json:"food"`
}

// Example terms shown in the UI. The pairs walk different stages of the
// lookup pipeline on purpose, so the demo shows more than table hits.
var (
	exampleDrugs = []string{"Lipitor", "Warfarin", "Tylenol", "Atorvastatin", "Coumadin", "Acetaminophen"}
	exampleFoods = []string{"Grapefruit", "Spinach", "Dairy", "Alcohol", "Bananas", "Aged Cheese"}
	examplePairs = []examplePair{
		{Drug: "Lipitor", Food: "Grapefruit"},
		{Drug: "Warfarin", Food: "Spinach"},
		{Drug: "Tylenol", Food: "Alcohol"},
	}
)

// GetExamples handles GET /api/interactions/examples
func (h *InteractionHandler) GetExamples(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"drugs": exampleDrugs,
		"foods": exampleFoods,
		"pairs": examplePairs,
	})
}

// respondWithAppError maps application errors to HTTP status codes
func respondWithAppError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		case apperrors.ErrorTypeUnavailable:
			respondWithError(w, http.StatusServiceUnavailable, appErr.Message)
		default:
			respondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
