package rxnorm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/zatekoja/Drugfoodinteractiondesign/internal/domain/entities"
	"github.com/zatekoja/Drugfoodinteractiondesign/pkg/config"
	"github.com/zatekoja/Drugfoodinteractiondesign/pkg/utils"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://rxnav.nlm.nih.gov/REST"

// Client talks to the RxNorm terminology API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	normalizer *utils.DrugNameNormalizer
}

// NewClient creates a new RxNorm client.
func NewClient(cfg *config.RxNormConfig) *Client {
	baseURL := defaultBaseURL
	timeout := 10 * time.Second
	rps := 10
	burst := 5

	if cfg != nil {
		if cfg.BaseURL != "" {
			baseURL = strings.TrimRight(cfg.BaseURL, "/")
		}
		if cfg.TimeoutSeconds > 0 {
			timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
		}
		if cfg.RateLimitRPS > 0 {
			rps = cfg.RateLimitRPS
		}
		if cfg.RateLimitBurst > 0 {
			burst = cfg.RateLimitBurst
		}
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		normalizer: utils.NewDrugNameNormalizer(),
	}
}

type drugsResponse struct {
	DrugGroup struct {
		ConceptGroup []conceptGroup `json:"conceptGroup"`
	} `json:"drugGroup"`
}

type conceptGroup struct {
	TTY               string            `json:"tty"`
	ConceptProperties []conceptProperty `json:"conceptProperties"`
}

type conceptProperty struct {
	RxCUI string `json:"rxcui"`
	Name  string `json:"name"`
	TTY   string `json:"tty"`
}

type rxcuiResponse struct {
	IDGroup struct {
		RxNormID []string `json:"rxnormId"`
	} `json:"idGroup"`
}

type propertiesResponse struct {
	Properties struct {
		RxCUI string `json:"rxcui"`
		Name  string `json:"name"`
	} `json:"properties"`
}

type approximateResponse struct {
	ApproximateGroup struct {
		Candidate []struct {
			RxCUI string `json:"rxcui"`
			Score string `json:"score"`
		} `json:"candidate"`
	} `json:"approximateGroup"`
}

// Standardize resolves a drug name to its generic concept. The concept
// search runs first; when it comes up empty the rxcui path (with an
// approximate-term fallback for misspellings) is tried. A name the API
// cannot match resolves to itself with Resolved false.
func (c *Client) Standardize(ctx context.Context, name string) (*entities.DrugConcept, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, errors.New("drug name is required")
	}

	concept, drugsErr := c.searchDrugs(ctx, trimmed)
	if concept != nil {
		return concept, nil
	}

	concept, altErr := c.searchRxCUI(ctx, trimmed)
	if concept != nil {
		return concept, nil
	}

	if drugsErr != nil {
		return nil, drugsErr
	}
	if altErr != nil {
		return nil, altErr
	}

	return &entities.DrugConcept{
		InputName:   trimmed,
		GenericName: utils.NormalizeLookupKey(trimmed),
		Resolved:    false,
	}, nil
}

// searchDrugs walks the concept groups returned for a name. Ingredient
// concepts carry the generic name directly; otherwise the first concept of
// any kind is used and reduced by the normalizer.
func (c *Client) searchDrugs(ctx context.Context, name string) (*entities.DrugConcept, error) {
	endpoint := fmt.Sprintf("%s/drugs.json?name=%s", c.baseURL, url.QueryEscape(name))

	var payload drugsResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	var first *conceptProperty
	for gi := range payload.DrugGroup.ConceptGroup {
		group := &payload.DrugGroup.ConceptGroup[gi]
		for ci := range group.ConceptProperties {
			concept := &group.ConceptProperties[ci]
			if concept.Name == "" {
				continue
			}
			if group.TTY == "IN" || concept.TTY == "IN" {
				return c.conceptFromProperty(name, concept), nil
			}
			if first == nil {
				first = concept
			}
		}
	}

	if first != nil {
		return c.conceptFromProperty(name, first), nil
	}
	return nil, nil
}

func (c *Client) searchRxCUI(ctx context.Context, name string) (*entities.DrugConcept, error) {
	endpoint := fmt.Sprintf("%s/rxcui.json?name=%s", c.baseURL, url.QueryEscape(name))

	var payload rxcuiResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	rxcui := ""
	if len(payload.IDGroup.RxNormID) > 0 {
		rxcui = payload.IDGroup.RxNormID[0]
	}

	if rxcui == "" {
		approx, err := c.searchApproximate(ctx, name)
		if err != nil {
			return nil, err
		}
		rxcui = approx
	}

	if rxcui == "" {
		return nil, nil
	}

	return c.lookupProperties(ctx, name, rxcui)
}

// searchApproximate tolerates misspellings like "warfrin"
func (c *Client) searchApproximate(ctx context.Context, term string) (string, error) {
	endpoint := fmt.Sprintf("%s/approximateTerm.json?term=%s&maxEntries=1", c.baseURL, url.QueryEscape(term))

	var payload approximateResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return "", err
	}

	if len(payload.ApproximateGroup.Candidate) > 0 {
		return payload.ApproximateGroup.Candidate[0].RxCUI, nil
	}
	return "", nil
}

func (c *Client) lookupProperties(ctx context.Context, input, rxcui string) (*entities.DrugConcept, error) {
	endpoint := fmt.Sprintf("%s/rxcui/%s/properties.json", c.baseURL, rxcui)

	var payload propertiesResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	if payload.Properties.Name == "" {
		return &entities.DrugConcept{
			InputName:   input,
			GenericName: utils.NormalizeLookupKey(input),
			RxCUI:       rxcui,
			Resolved:    true,
		}, nil
	}

	return &entities.DrugConcept{
		InputName:   input,
		GenericName: c.normalizer.GenericName(payload.Properties.Name),
		RxCUI:       rxcui,
		FullName:    payload.Properties.Name,
		Resolved:    true,
	}, nil
}

func (c *Client) conceptFromProperty(input string, prop *conceptProperty) *entities.DrugConcept {
	return &entities.DrugConcept{
		InputName:   input,
		GenericName: c.normalizer.GenericName(prop.Name),
		RxCUI:       prop.RxCUI,
		FullName:    prop.Name,
		Resolved:    true,
	}
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("rxnorm request failed with status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
