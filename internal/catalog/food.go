package catalog

import "strings"

// Dosha is one of the three Ayurvedic constitution categories.
type Dosha string

const (
	DoshaVata  Dosha = "Vata"
	DoshaPitta Dosha = "Pitta"
	DoshaKapha Dosha = "Kapha"
)

// Impact describes the effect a food has on a constitution. Besides the
// three doshas, a food can be tagged Balancing (or Tridoshic, treated as
// an alias) meaning it is neutral or beneficial across all three.
type Impact string

const (
	ImpactVata      Impact = "Vata"
	ImpactPitta     Impact = "Pitta"
	ImpactKapha     Impact = "Kapha"
	ImpactBalancing Impact = "Balancing"
	ImpactTridoshic Impact = "Tridoshic"
)

// Taste is one of the six rasas.
type Taste string

const (
	TasteSweet      Taste = "sweet"
	TasteSour       Taste = "sour"
	TasteSalty      Taste = "salty"
	TastePungent    Taste = "pungent"
	TasteBitter     Taste = "bitter"
	TasteAstringent Taste = "astringent"
)

// Quality is a guna tag describing the physical character of a food.
type Quality string

const (
	QualityLight    Quality = "light"
	QualityHeavy    Quality = "heavy"
	QualityDry      Quality = "dry"
	QualityUnctuous Quality = "unctuous"
	QualityHot      Quality = "hot"
	QualityCold     Quality = "cold"
)

// Energy is the virya classification of a food.
type Energy string

const (
	EnergyHeating Energy = "heating"
	EnergyCooling Energy = "cooling"
)

// Season tags a food as suited to a part of the year. The engine uses the
// quarterly spring/monsoon/autumn/winter calendar.
type Season string

const (
	SeasonSpring  Season = "spring"
	SeasonSummer  Season = "summer"
	SeasonMonsoon Season = "monsoon"
	SeasonAutumn  Season = "autumn"
	SeasonWinter  Season = "winter"
	SeasonAll     Season = "all"
)

// Category is the food-type classification used for meal composition.
// Sweetener exists so the diabetes contraindication can key off an explicit
// field instead of the legacy identifier-prefix convention.
type Category string

const (
	CategoryGrain     Category = "grain"
	CategoryLegume    Category = "legume"
	CategoryVegetable Category = "vegetable"
	CategoryFruit     Category = "fruit"
	CategoryNut       Category = "nut"
	CategoryDairy     Category = "dairy"
	CategoryProtein   Category = "protein"
	CategorySpice     Category = "spice"
	CategorySweetener Category = "sweetener"
	CategoryOther     Category = "other"
)

// Macros holds a nutrient profile per 100 grams of a food.
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// FoodItem is a single entry of the food catalog. Items are immutable once
// loaded; tag strings are parsed into the closed sets above at load time so
// scoring never re-parses.
type FoodItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  Category  `json:"category"`
	Impacts   []Impact  `json:"dosha_impacts"`
	Tastes    []Taste   `json:"tastes"`
	Qualities []Quality `json:"qualities"`
	Energy    Energy    `json:"energy,omitempty"`
	Seasons   []Season  `json:"seasons"`
	Per100g   Macros    `json:"per_100g"`
}

// Key returns the value used to de-duplicate foods within a meal:
// the identifier when present, the name otherwise.
func (f FoodItem) Key() string {
	if f.ID != "" {
		return f.ID
	}
	return f.Name
}

// IsBalancing reports whether the food is tagged Balancing or Tridoshic.
func (f FoodItem) IsBalancing() bool {
	for _, imp := range f.Impacts {
		if strings.EqualFold(string(imp), string(ImpactBalancing)) ||
			strings.EqualFold(string(imp), string(ImpactTridoshic)) {
			return true
		}
	}
	return false
}

// Aggravates reports whether the food's impact tags include the given dosha.
func (f FoodItem) Aggravates(d Dosha) bool {
	for _, imp := range f.Impacts {
		if strings.EqualFold(string(imp), string(d)) {
			return true
		}
	}
	return false
}

// HasTaste reports whether the food carries the given taste tag.
func (f FoodItem) HasTaste(t Taste) bool {
	for _, taste := range f.Tastes {
		if taste == t {
			return true
		}
	}
	return false
}

// InSeason reports whether the food suits the given season. Foods tagged
// "all" match every season; untagged foods match none.
func (f FoodItem) InSeason(s Season) bool {
	for _, season := range f.Seasons {
		if season == SeasonAll || season == s {
			return true
		}
	}
	return false
}

// splitTags breaks a legacy tag string on the separators seen in source
// data (comma, semicolon or pipe) and lowercases each entry.
func splitTags(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '|'
	})
	var out []string
	for _, f := range fields {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// ParseImpacts converts a legacy tag string into Impact values. Unknown
// tags are dropped.
func ParseImpacts(raw string) []Impact {
	var out []Impact
	for _, tag := range splitTags(raw) {
		switch tag {
		case "vata":
			out = append(out, ImpactVata)
		case "pitta":
			out = append(out, ImpactPitta)
		case "kapha":
			out = append(out, ImpactKapha)
		case "balancing":
			out = append(out, ImpactBalancing)
		case "tridoshic":
			out = append(out, ImpactTridoshic)
		}
	}
	return out
}

// ParseTastes converts a legacy tag string into Taste values.
func ParseTastes(raw string) []Taste {
	known := map[string]Taste{
		"sweet": TasteSweet, "sour": TasteSour, "salty": TasteSalty,
		"pungent": TastePungent, "bitter": TasteBitter, "astringent": TasteAstringent,
	}
	var out []Taste
	for _, tag := range splitTags(raw) {
		if t, ok := known[tag]; ok {
			out = append(out, t)
		}
	}
	return out
}

// ParseQualities converts a legacy tag string into Quality values. Tags
// outside the common set are kept verbatim since the guna vocabulary is
// open-ended in source data.
func ParseQualities(raw string) []Quality {
	var out []Quality
	for _, tag := range splitTags(raw) {
		out = append(out, Quality(tag))
	}
	return out
}

// ParseEnergy converts a legacy energy string into an Energy value.
// Anything other than heating/cooling maps to the zero value.
func ParseEnergy(raw string) Energy {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "heating":
		return EnergyHeating
	case "cooling":
		return EnergyCooling
	}
	return ""
}

// ParseSeasons converts a legacy tag string into Season values.
func ParseSeasons(raw string) []Season {
	known := map[string]Season{
		"spring": SeasonSpring, "summer": SeasonSummer, "monsoon": SeasonMonsoon,
		"autumn": SeasonAutumn, "winter": SeasonWinter, "all": SeasonAll,
	}
	var out []Season
	for _, tag := range splitTags(raw) {
		if s, ok := known[tag]; ok {
			out = append(out, s)
		}
	}
	return out
}

// ParseCategory converts a category string into a Category, falling back
// to other for anything unrecognized.
func ParseCategory(raw string) Category {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "grain":
		return CategoryGrain
	case "legume":
		return CategoryLegume
	case "vegetable":
		return CategoryVegetable
	case "fruit":
		return CategoryFruit
	case "nut":
		return CategoryNut
	case "dairy":
		return CategoryDairy
	case "protein":
		return CategoryProtein
	case "spice":
		return CategorySpice
	case "sweetener":
		return CategorySweetener
	}
	return CategoryOther
}
