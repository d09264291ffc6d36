// Package clipper imports catalog entries from the web: it fetches a food
// or nutrition page, strips it to text, and has a language model extract a
// structured food entry from it.
package clipper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ayurdiet/internal/catalog"
	"ayurdiet/internal/llm"

	"github.com/PuerkitoBio/goquery"
)

// Clipper handles fetching and extracting foods from URLs.
type Clipper struct {
	textGen    llm.TextGenerator
	httpClient *http.Client
}

// extractedFood is the intermediate shape the model returns; tag fields
// stay strings until the catalog parsers type them.
type extractedFood struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	DoshaImpact string  `json:"dosha_impact"`
	Tastes      string  `json:"tastes"`
	Qualities   string  `json:"qualities"`
	Energy      string  `json:"energy"`
	Seasons     string  `json:"seasons"`
	Calories    float64 `json:"calories_per_100g"`
	Protein     float64 `json:"protein_per_100g"`
	Carbs       float64 `json:"carbs_per_100g"`
	Fat         float64 `json:"fat_per_100g"`
}

// NewClipper creates a new Clipper instance.
func NewClipper(textGen llm.TextGenerator) *Clipper {
	return &Clipper{
		textGen:    textGen,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ClipURL fetches the URL and extracts a catalog food entry from it.
func (c *Clipper) ClipURL(ctx context.Context, url string) (*catalog.FoodItem, error) {
	content, err := c.fetchAndCleanHTML(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}

	prompt := fmt.Sprintf(`
You are a nutrition data extraction expert with Ayurvedic training. Extract
the food described in the following page content. Estimate Ayurvedic
attributes when the page does not state them.
Return the result strictly as a JSON object with this structure:
{
  "name": "Food name",
  "category": "grain|legume|vegetable|fruit|nut|dairy|protein|spice|sweetener|other",
  "dosha_impact": "semicolon-joined subset of Vata;Pitta;Kapha;Balancing",
  "tastes": "semicolon-joined subset of sweet;sour;salty;pungent;bitter;astringent",
  "qualities": "semicolon-joined tags like light;heavy;dry;unctuous",
  "energy": "heating or cooling",
  "seasons": "semicolon-joined subset of spring;summer;monsoon;autumn;winter;all",
  "calories_per_100g": 0,
  "protein_per_100g": 0,
  "carbs_per_100g": 0,
  "fat_per_100g": 0
}

Do not include any other text or formatting in your response.

Page content:
%s
`, content)

	resp, err := c.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("ai extraction failed: %w", err)
	}

	var extracted extractedFood
	if err := json.Unmarshal([]byte(resp.Content), &extracted); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w. Response: %s", err, resp.Content)
	}
	if strings.TrimSpace(extracted.Name) == "" {
		return nil, fmt.Errorf("AI extraction returned no food name")
	}

	food := catalog.FoodItem{
		Name:      strings.TrimSpace(extracted.Name),
		Category:  catalog.ParseCategory(extracted.Category),
		Impacts:   catalog.ParseImpacts(extracted.DoshaImpact),
		Tastes:    catalog.ParseTastes(extracted.Tastes),
		Qualities: catalog.ParseQualities(extracted.Qualities),
		Energy:    catalog.ParseEnergy(extracted.Energy),
		Seasons:   catalog.ParseSeasons(extracted.Seasons),
		Per100g: catalog.Macros{
			Calories: nonNegative(extracted.Calories),
			Protein:  nonNegative(extracted.Protein),
			Carbs:    nonNegative(extracted.Carbs),
			Fat:      nonNegative(extracted.Fat),
		},
	}
	food.ID = slugify(food.Name)
	return &food, nil
}

func (c *Clipper) fetchAndCleanHTML(url string) (string, error) {
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	// Remove noise to save LLM tokens
	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	return doc.Find("body").Text(), nil
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '-'
		}
		return -1
	}, slug)
	return strings.Trim(slug, "-")
}
