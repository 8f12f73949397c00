package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/api/handlers"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/domain/entities"
	apperrors "github.com/zatekoja/Drugfoodinteractiondesign/pkg/errors"
)

type MockInteractionService struct {
	mock.Mock
}

func (m *MockInteractionService) CheckInteraction(ctx context.Context, drugName, foodName string) (*entities.Interaction, error) {
	args := m.Called(ctx, drugName, foodName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Interaction), args.Error(1)
}

func (m *MockInteractionService) StandardizeDrug(ctx context.Context, name string) (*entities.DrugConcept, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DrugConcept), args.Error(1)
}

type errorResponse struct {
	Error string `json:"error"`
}

type examplesResponse struct {
	Drugs []string `json:"drugs"`
	Foods []string `json:"foods"`
	Pairs []struct {
		Drug string `json:"drug"`
		Food string `json:"food"`
	} `json:"pairs"`
}

func TestInteractionHandler_CheckInteraction_ReturnsContract(t *testing.T) {
	mockService := new(MockInteractionService)
	handler := handlers.NewInteractionHandler(mockService)

	checkedAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	expected := &entities.Interaction{
		ID:               "lookup-1",
		DrugName:         "Lipitor",
		StandardizedName: "atorvastatin",
		FoodName:         "grapefruit",
		Source:           entities.SourceStatic,
		Risk:             entities.RiskHigh,
		Explanation:      "Grapefruit inhibits the enzyme that clears the drug. Drug levels rise and side effects become more likely.",
		Recommendation:   "Avoid grapefruit and grapefruit juice entirely.",
		KnownInteraction: &entities.KnownInteraction{
			Risk:           entities.RiskHigh,
			Mechanism:      "CYP3A4 inhibition",
			Effect:         "Increased drug concentration",
			Recommendation: "Avoid grapefruit and grapefruit juice entirely.",
		},
		Disclaimer: entities.Disclaimer,
		CheckedAt:  checkedAt,
	}

	mockService.On("CheckInteraction", mock.Anything, "Lipitor", "grapefruit").Return(expected, nil)

	req := httptest.NewRequest("GET", "/api/interactions?drug=Lipitor&food=grapefruit", nil)
	w := httptest.NewRecorder()

	handler.CheckInteraction(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp entities.Interaction
	err := json.NewDecoder(w.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.Equal(t, expected.ID, resp.ID)
	assert.Equal(t, expected.DrugName, resp.DrugName)
	assert.Equal(t, expected.StandardizedName, resp.StandardizedName)
	assert.Equal(t, expected.Source, resp.Source)
	assert.Equal(t, expected.Risk, resp.Risk)
	assert.Equal(t, expected.Explanation, resp.Explanation)
	assert.Equal(t, expected.Disclaimer, resp.Disclaimer)
	assert.NotNil(t, resp.KnownInteraction)
	assert.Equal(t, expected.KnownInteraction.Mechanism, resp.KnownInteraction.Mechanism)
	mockService.AssertExpectations(t)
}

func TestInteractionHandler_CheckInteraction_ValidationError(t *testing.T) {
	mockService := new(MockInteractionService)
	handler := handlers.NewInteractionHandler(mockService)

	mockService.On("CheckInteraction", mock.Anything, "", "grapefruit").
		Return(nil, apperrors.NewValidationError("drug name is required"))

	req := httptest.NewRequest("GET", "/api/interactions?food=grapefruit", nil)
	w := httptest.NewRecorder()

	handler.CheckInteraction(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp errorResponse
	err := json.NewDecoder(w.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.Equal(t, "drug name is required", resp.Error)
}

func TestInteractionHandler_CheckInteraction_InternalError(t *testing.T) {
	mockService := new(MockInteractionService)
	handler := handlers.NewInteractionHandler(mockService)

	mockService.On("CheckInteraction", mock.Anything, "warfarin", "kale").
		Return(nil, errors.New("event bus exploded"))

	req := httptest.NewRequest("GET", "/api/interactions?drug=warfarin&food=kale", nil)
	w := httptest.NewRecorder()

	handler.CheckInteraction(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp errorResponse
	err := json.NewDecoder(w.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.Equal(t, "internal server error", resp.Error)
}

func TestInteractionHandler_StandardizeDrug_ReturnsConcept(t *testing.T) {
	mockService := new(MockInteractionService)
	handler := handlers.NewInteractionHandler(mockService)

	expected := &entities.DrugConcept{
		InputName:   "Lipitor",
		GenericName: "atorvastatin",
		RxCUI:       "83367",
		FullName:    "atorvastatin 10 MG Oral Tablet",
		Resolved:    true,
	}

	mockService.On("StandardizeDrug", mock.Anything, "Lipitor").Return(expected, nil)

	req := httptest.NewRequest("GET", "/api/drugs/standardize?name=Lipitor", nil)
	w := httptest.NewRecorder()

	handler.StandardizeDrug(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp entities.DrugConcept
	err := json.NewDecoder(w.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.Equal(t, expected.GenericName, resp.GenericName)
	assert.Equal(t, expected.RxCUI, resp.RxCUI)
	assert.True(t, resp.Resolved)
}

func TestInteractionHandler_StandardizeDrug_ValidationError(t *testing.T) {
	mockService := new(MockInteractionService)
	handler := handlers.NewInteractionHandler(mockService)

	mockService.On("StandardizeDrug", mock.Anything, "").
		Return(nil, apperrors.NewValidationError("drug name is required"))

	req := httptest.NewRequest("GET", "/api/drugs/standardize", nil)
	w := httptest.NewRecorder()

	handler.StandardizeDrug(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInteractionHandler_GetExamples_ReturnsCuratedLists(t *testing.T) {
	handler := handlers.NewInteractionHandler(new(MockInteractionService))

	req := httptest.NewRequest("GET", "/api/interactions/examples", nil)
	w := httptest.NewRecorder()

	handler.GetExamples(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp examplesResponse
	err := json.NewDecoder(w.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.Len(t, resp.Drugs, 6)
	assert.Len(t, resp.Foods, 6)
	assert.NotEmpty(t, resp.Pairs)
	assert.Equal(t, "Lipitor", resp.Pairs[0].Drug)
	assert.Equal(t, "Grapefruit", resp.Pairs[0].Food)
	assert.Contains(t, resp.Drugs, "Warfarin")
	assert.Contains(t, resp.Foods, "Aged Cheese")
}
