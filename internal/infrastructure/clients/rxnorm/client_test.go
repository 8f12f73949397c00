package rxnorm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zatekoja/Drugfoodinteractiondesign/pkg/config"
)

func newTestServer(t *testing.T, handlers map[string]string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for path, body := range handlers {
		response := body
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(response))
		})
	}
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	return httptest.NewServer(mux)
}

func newTestRxNormClient(serverURL string) *Client {
	return NewClient(&config.RxNormConfig{
		BaseURL:        serverURL,
		TimeoutSeconds: 5,
		RateLimitRPS:   100,
		RateLimitBurst: 100,
	})
}

func TestStandardize_ResolvesIngredientConcept(t *testing.T) {
	server := newTestServer(t, map[string]string{
		"/drugs.json": `{
			"drugGroup": {
				"conceptGroup": [
					{"tty": "SBD", "conceptProperties": [
						{"rxcui": "617318", "name": "atorvastatin 10 MG Oral Tablet [Lipitor]", "tty": "SBD"}
					]},
					{"tty": "IN", "conceptProperties": [
						{"rxcui": "83367", "name": "atorvastatin", "tty": "IN"}
					]}
				]
			}
		}`,
	})
	defer server.Close()

	client := newTestRxNormClient(server.URL)
	concept, err := client.Standardize(context.Background(), "Lipitor")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !concept.Resolved {
		t.Error("expected resolved concept")
	}
	if concept.GenericName != "atorvastatin" {
		t.Errorf("expected atorvastatin, got %q", concept.GenericName)
	}
	if concept.RxCUI != "83367" {
		t.Errorf("expected ingredient rxcui, got %q", concept.RxCUI)
	}
}

func TestStandardize_NormalizesFullConceptName(t *testing.T) {
	server := newTestServer(t, map[string]string{
		"/drugs.json": `{
			"drugGroup": {
				"conceptGroup": [
					{"tty": "SBD", "conceptProperties": [
						{"rxcui": "855332", "name": "warfarin sodium 5 MG Oral Tablet [Coumadin]", "tty": "SBD"}
					]}
				]
			}
		}`,
	})
	defer server.Close()

	client := newTestRxNormClient(server.URL)
	concept, err := client.Standardize(context.Background(), "Coumadin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if concept.GenericName != "warfarin" {
		t.Errorf("expected warfarin, got %q", concept.GenericName)
	}
	if concept.FullName != "warfarin sodium 5 MG Oral Tablet [Coumadin]" {
		t.Errorf("unexpected full name %q", concept.FullName)
	}
}

func TestStandardize_FallsBackToRxCUILookup(t *testing.T) {
	server := newTestServer(t, map[string]string{
		"/drugs.json": `{"drugGroup": {}}`,
		"/rxcui.json": `{"idGroup": {"rxnormId": ["11289"]}}`,
		"/rxcui/11289/properties.json": `{
			"properties": {"rxcui": "11289", "name": "warfarin"}
		}`,
	})
	defer server.Close()

	client := newTestRxNormClient(server.URL)
	concept, err := client.Standardize(context.Background(), "warfarin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !concept.Resolved {
		t.Error("expected resolved concept")
	}
	if concept.GenericName != "warfarin" || concept.RxCUI != "11289" {
		t.Errorf("unexpected concept %+v", concept)
	}
}

func TestStandardize_ApproximateMatchForMisspelling(t *testing.T) {
	server := newTestServer(t, map[string]string{
		"/drugs.json":           `{"drugGroup": {}}`,
		"/rxcui.json":           `{"idGroup": {}}`,
		"/approximateTerm.json": `{"approximateGroup": {"candidate": [{"rxcui": "11289", "score": "80"}]}}`,
		"/rxcui/11289/properties.json": `{
			"properties": {"rxcui": "11289", "name": "warfarin"}
		}`,
	})
	defer server.Close()

	client := newTestRxNormClient(server.URL)
	concept, err := client.Standardize(context.Background(), "warfrin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if concept.GenericName != "warfarin" {
		t.Errorf("expected warfarin via approximate match, got %q", concept.GenericName)
	}
}

func TestStandardize_UnmatchedNameResolvesToItself(t *testing.T) {
	server := newTestServer(t, map[string]string{
		"/drugs.json":           `{"drugGroup": {}}`,
		"/rxcui.json":           `{"idGroup": {}}`,
		"/approximateTerm.json": `{"approximateGroup": {}}`,
	})
	defer server.Close()

	client := newTestRxNormClient(server.URL)
	concept, err := client.Standardize(context.Background(), "Notadrug")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if concept.Resolved {
		t.Error("expected unresolved concept")
	}
	if concept.GenericName != "notadrug" {
		t.Errorf("expected lowercased echo, got %q", concept.GenericName)
	}
}

func TestStandardize_EmptyNameRejected(t *testing.T) {
	client := newTestRxNormClient("http://unused")
	if _, err := client.Standardize(context.Background(), "   "); err == nil {
		t.Error("expected error for blank name")
	}
}

func TestStandardize_ServerErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestRxNormClient(server.URL)
	if _, err := client.Standardize(context.Background(), "warfarin"); err == nil {
		t.Error("expected error when every endpoint fails")
	}
}
