package score

import (
	"errors"
	"fmt"
)

// Nutrient names registered in the threshold registry.
const (
	NutrientSugar        = "sugar"
	NutrientSaturatedFat = "saturated_fat"
	NutrientSodium       = "sodium"
	NutrientFiber        = "fiber"
	NutrientProtein      = "protein"
	NutrientEnergy       = "energy"
)

// ErrUnknownNutrient is returned when a threshold lookup misses. It should be
// unreachable with the fixed nutrient set above.
var ErrUnknownNutrient = errors.New("unknown nutrient")

// Threshold holds one nutrient's guideline-derived cutoffs per 100g.
// Not every field applies to every nutrient: sugar, saturated fat and sodium
// use Low/High traffic-light cutoffs, fiber uses High/VeryHigh claim levels,
// protein and energy carry a single High cutoff.
type Threshold struct {
	Nutrient    string
	Low         float64
	High        float64
	VeryHigh    float64
	Unit        string
	Citation    string
	CitationURL string
	Explanation string
}

// Citation is one public-health source document backing a threshold.
type Citation struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Explanation string `json:"explanation,omitempty"`
}

// Registry is the fixed table of scoring thresholds and their citations.
// Built once at startup and read-only thereafter; safe for unsynchronized
// concurrent reads.
type Registry struct {
	thresholds map[string]Threshold
	citations  []Citation
}

const (
	citationFDADRV       = "FDA Daily Reference Values (2016)"
	citationWHOSugars    = "WHO Guideline: Sugars intake for adults and children (2015)"
	citationWHOChronic   = "WHO Diet, nutrition and the prevention of chronic diseases (2003)"
	citationWHOSodium    = "WHO Guideline: Sodium intake for adults and children (2012)"
	citationNutriScore   = "Santé Publique France - Nutri-Score (2017)"
	citationUKFSATraffic = "UK Food Standards Agency Traffic Light Labelling (2013)"
	citationEUClaims     = "EU Nutrition and Health Claims Regulation (2006)"
)

// NewRegistry builds the registry with the UK FSA traffic-light cutoffs, the
// EU fiber claim levels, and the FDA reference value for protein. The numbers
// are part of the scoring contract and must not change without reversioning
// the score.
func NewRegistry() *Registry {
	thresholds := []Threshold{
		{
			Nutrient:    NutrientSugar,
			Low:         5,    // ≤5g per 100g = low
			High:        22.5, // >22.5g per 100g = high
			Unit:        "g",
			Citation:    citationUKFSATraffic,
			CitationURL: "https://www.food.gov.uk/safety-hygiene/check-food-labels",
			Explanation: "Traffic light criteria for sugar content per 100g",
		},
		{
			Nutrient:    NutrientSaturatedFat,
			Low:         1.5,
			High:        5,
			Unit:        "g",
			Citation:    citationUKFSATraffic,
			CitationURL: "https://www.food.gov.uk/safety-hygiene/check-food-labels",
			Explanation: "Traffic light criteria for saturated fat content per 100g",
		},
		{
			Nutrient:    NutrientSodium,
			Low:         300, // mg per 100g
			High:        600,
			Unit:        "mg",
			Citation:    citationUKFSATraffic,
			CitationURL: "https://www.food.gov.uk/safety-hygiene/check-food-labels",
			Explanation: "Traffic light criteria for sodium/salt content per 100g",
		},
		{
			Nutrient:    NutrientFiber,
			High:        6,  // ≥6g = source of fiber
			VeryHigh:    12, // ≥12g = high in fiber
			Unit:        "g",
			Citation:    citationEUClaims,
			CitationURL: "https://eur-lex.europa.eu/legal-content/EN/TXT/?uri=CELEX%3A32006R1924",
			Explanation: "EU criteria for 'source of fiber' and 'high in fiber' claims",
		},
		{
			Nutrient:    NutrientProtein,
			High:        10,
			Unit:        "g",
			Citation:    citationFDADRV,
			CitationURL: "https://www.fda.gov/food/nutrition-facts-label/daily-value-nutrition-and-supplement-facts-labels",
			Explanation: "Daily reference value for protein based on a 2000 kcal diet",
		},
		{
			Nutrient: NutrientEnergy,
			High:     400,
			Unit:     "kcal",
			// Calorie-density cutoff is heuristic, not guideline-sourced.
		},
	}

	m := make(map[string]Threshold, len(thresholds))
	for _, t := range thresholds {
		m[t.Nutrient] = t
	}

	return &Registry{
		thresholds: m,
		citations:  buildCitations(thresholds),
	}
}

// Get returns the threshold for a registered nutrient.
func (r *Registry) Get(nutrient string) (Threshold, error) {
	t, ok := r.thresholds[nutrient]
	if !ok {
		return Threshold{}, fmt.Errorf("threshold %q: %w", nutrient, ErrUnknownNutrient)
	}
	return t, nil
}

// AllCitations lists every source document the scoring system draws on, in
// declaration order, deduplicated by title. This backs the UI "sources" panel.
func (r *Registry) AllCitations() []Citation {
	out := make([]Citation, len(r.citations))
	copy(out, r.citations)
	return out
}

func buildCitations(thresholds []Threshold) []Citation {
	// Reference-value and framework sources first, then the per-nutrient
	// threshold sources, keeping first occurrence of each title.
	all := []Citation{
		{
			Title:       citationFDADRV,
			URL:         "https://www.fda.gov/food/nutrition-facts-label/daily-value-nutrition-and-supplement-facts-labels",
			Explanation: "Daily reference values for energy, fiber and protein based on a 2000 kcal diet",
		},
		{
			Title:       citationWHOSugars,
			URL:         "https://www.who.int/publications/i/item/9789241549028",
			Explanation: "WHO strongly recommends reducing free sugars to less than 10% of total energy intake",
		},
		{
			Title:       citationWHOChronic,
			URL:         "https://www.who.int/publications/i/item/924120916X",
			Explanation: "Saturated fat intake should be less than 10% of total energy intake",
		},
		{
			Title:       citationWHOSodium,
			URL:         "https://www.who.int/publications/i/item/9789241504836",
			Explanation: "WHO recommends reducing sodium intake to less than 2000 mg/day (5g salt)",
		},
		{
			Title:       citationNutriScore,
			URL:         "https://www.santepubliquefrance.fr/en/nutri-score",
			Explanation: "Front-of-pack label converting nutritional value into five letters (A to E) and colors",
		},
	}
	for _, t := range thresholds {
		if t.Citation == "" {
			continue
		}
		all = append(all, Citation{Title: t.Citation, URL: t.CitationURL, Explanation: t.Explanation})
	}

	seen := make(map[string]bool, len(all))
	var unique []Citation
	for _, c := range all {
		if seen[c.Title] {
			continue
		}
		seen[c.Title] = true
		unique = append(unique, c)
	}
	return unique
}
