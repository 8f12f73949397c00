package medline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/zatekoja/Drugfoodinteractiondesign/internal/domain/providers"
	"github.com/zatekoja/Drugfoodinteractiondesign/pkg/config"
	"github.com/zatekoja/Drugfoodinteractiondesign/pkg/utils"
	"golang.org/x/net/html"
)

// maxPageBytes caps how much of a monograph page gets read.
const maxPageBytes = 2 << 20

// Client scrapes MedlinePlus drug monographs for food and diet guidance.
// Page URLs come from a curated lookup table keyed by lowercase generic name.
type Client struct {
	httpClient *http.Client
	userAgent  string
	urlTable   map[string]string
	normalizer *utils.DrugNameNormalizer
	synonyms   func(food string) []string
}

// SetSynonymSource widens the food filter with category synonyms, so a
// section about grapefruit also matches a query for grapefruit juice.
func (c *Client) SetSynonymSource(fn func(food string) []string) {
	c.synonyms = fn
}

// NewClient builds a scraper from configuration and the URL table stored at
// tablePath. A missing table file yields an empty table rather than an error
// so lookups can still fall through to the other sources.
func NewClient(cfg *config.MedlineConfig, tablePath string) (*Client, error) {
	timeout := 15 * time.Second
	userAgent := "Mozilla/5.0 (compatible; drug-food-interactions/1.0)"
	if cfg != nil {
		if cfg.TimeoutSeconds > 0 {
			timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
		}
		if cfg.UserAgent != "" {
			userAgent = cfg.UserAgent
		}
	}

	table, err := loadURLTable(tablePath)
	if err != nil {
		return nil, err
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		urlTable:   table,
		normalizer: utils.NewDrugNameNormalizer(),
	}, nil
}

// FetchInteractions implements providers.OfficialSource. It resolves the drug
// to a monograph URL, pulls the food related sections out of the page and
// grades them by their warning words. A drug without a table entry, or a page
// without food content, returns a nil section with a nil error.
func (c *Client) FetchInteractions(ctx context.Context, drugName, foodName string) (*providers.InteractionSection, error) {
	generic := c.normalizer.GenericName(drugName)
	pageURL, ok := c.urlTable[utils.NormalizeLookupKey(generic)]
	if !ok {
		return nil, nil
	}

	doc, err := c.fetchPage(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	sections := extractFoodSections(doc)
	if len(sections) == 0 {
		return nil, nil
	}

	terms := []string{foodName}
	if c.synonyms != nil {
		terms = append(terms, c.synonyms(foodName)...)
	}
	sections = filterByFood(sections, terms)

	text := strings.Join(sections, " ")
	risk, action := assessRisk(text)

	return &providers.InteractionSection{
		DrugName:       generic,
		URL:            pageURL,
		Text:           text,
		Risk:           risk,
		Recommendation: buildRecommendation(action, foodName),
	}, nil
}

// HasEntry reports whether the URL table knows the given drug.
func (c *Client) HasEntry(drugName string) bool {
	generic := c.normalizer.GenericName(drugName)
	_, ok := c.urlTable[utils.NormalizeLookupKey(generic)]
	return ok
}

// KnownDrugs lists every drug name in the URL table, sorted.
func (c *Client) KnownDrugs() []string {
	names := make([]string, 0, len(c.urlTable))
	for name := range c.urlTable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Client) fetchPage(ctx context.Context, pageURL string) (*html.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch monograph page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("monograph page returned status %d", resp.StatusCode)
	}
	if contentType := resp.Header.Get("Content-Type"); contentType != "" && !strings.Contains(contentType, "html") {
		return nil, fmt.Errorf("monograph page has unexpected content type %q", contentType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read monograph page: %w", err)
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse monograph page: %w", err)
	}
	return doc, nil
}

func loadURLTable(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read drug URL table: %w", err)
	}

	table := make(map[string]string)
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse drug URL table: %w", err)
	}

	normalized := make(map[string]string, len(table))
	for name, pageURL := range table {
		normalized[utils.NormalizeLookupKey(name)] = pageURL
	}
	return normalized, nil
}
