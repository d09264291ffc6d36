// Package foodsource looks up nutrition facts from an external food
// database API, used to fill in macros the clipper could not extract.
package foodsource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"ayurdiet/internal/catalog"
	"ayurdiet/internal/config"
)

// Client is an interface for an external nutrition database.
type Client interface {
	Lookup(ctx context.Context, name string) (*catalog.Macros, error)
}

// nutritionItem is one entry of the API response, values per 100 g.
type nutritionItem struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein_g"`
	Carbs    float64 `json:"carbohydrates_total_g"`
	Fat      float64 `json:"fat_total_g"`
}

type nutritionResponse struct {
	Items []nutritionItem `json:"items"`
}

// apiClient is the concrete implementation of the food database client.
type apiClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a food database client from configuration. Returns nil
// when no API is configured, which callers treat as "no enrichment".
func NewClient(cfg *config.Config) Client {
	if cfg.FoodAPIURL == "" {
		return nil
	}
	return &apiClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    cfg.FoodAPIURL,
		apiKey:     cfg.FoodAPIKey,
	}
}

// Lookup queries the API for a food by name. Returns nil when the database
// has no entry for it.
func (c *apiClient) Lookup(ctx context.Context, name string) (*catalog.Macros, error) {
	reqURL := fmt.Sprintf("%s/v1/nutrition?query=%s", c.baseURL, url.QueryEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("food api error: status %d", resp.StatusCode)
	}

	var parsed nutritionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(parsed.Items) == 0 {
		return nil, nil
	}

	item := parsed.Items[0]
	return &catalog.Macros{
		Calories: item.Calories,
		Protein:  item.Protein,
		Carbs:    item.Carbs,
		Fat:      item.Fat,
	}, nil
}

// Enrich fills a food's missing macros from the database. The food is only
// touched when its calorie count is zero; lookup misses leave it unchanged.
func Enrich(ctx context.Context, c Client, food *catalog.FoodItem) error {
	if c == nil || food.Per100g.Calories > 0 {
		return nil
	}

	macros, err := c.Lookup(ctx, food.Name)
	if err != nil {
		return fmt.Errorf("failed to look up %s: %w", food.Name, err)
	}
	if macros == nil {
		return nil
	}
	food.Per100g = *macros
	return nil
}
