package score

import (
	"log/slog"
	"math"
	"strconv"
)

// AdjustmentKind tags an adjustment as score-lowering or score-raising.
type AdjustmentKind string

const (
	KindPenalty AdjustmentKind = "penalty"
	KindBonus   AdjustmentKind = "bonus"
)

// Adjustment captures one rule's effect on the score. Points is the signed
// contribution already applied to the total; a zero-point bonus is
// informational only (e.g. "Low Sugar").
type Adjustment struct {
	Factor    string         `json:"factor"`
	Kind      AdjustmentKind `json:"kind"`
	Points    float64        `json:"points"`
	Value     string         `json:"value"`
	Threshold string         `json:"threshold"`
	Citation  string         `json:"citation,omitempty"`
}

// Result is the complete output of one scoring call. It is derived entirely
// and deterministically from one Record and the registry — no hidden state.
type Result struct {
	Score       int          `json:"score"`
	Band        string       `json:"band"`
	Adjustments []Adjustment `json:"adjustments"`
	Citations   []string     `json:"citations"`
}

// Penalties returns the adjustments that lowered the score, in evaluation order.
func (r *Result) Penalties() []Adjustment {
	var out []Adjustment
	for _, a := range r.Adjustments {
		if a.Kind == KindPenalty {
			out = append(out, a)
		}
	}
	return out
}

// Bonuses returns the bonus adjustments, in evaluation order.
func (r *Result) Bonuses() []Adjustment {
	var out []Adjustment
	for _, a := range r.Adjustments {
		if a.Kind == KindBonus {
			out = append(out, a)
		}
	}
	return out
}

// Engine computes health scores from nutrient records using WHO/FDA-derived
// thresholds. Score is a pure function: no I/O, no side effects, safe for
// concurrent use.
type Engine struct {
	registry *Registry
	logger   *slog.Logger
}

// NewEngine creates an Engine backed by the given registry.
func NewEngine(registry *Registry, logger *slog.Logger) *Engine {
	return &Engine{registry: registry, logger: logger}
}

// Registry exposes the threshold registry backing this engine.
func (e *Engine) Registry() *Registry { return e.registry }

// rule evaluates one nutrient against its threshold. A nil adjustment means
// the rule did not fire. Rules run in a fixed order so the adjustments list
// is deterministic; the order never changes the final score because every
// effect is additive.
type rule func(rec Record, reg *Registry) (*Adjustment, error)

var rules = []rule{
	sugarRule,
	saturatedFatRule,
	sodiumRule,
	fiberRule,
	proteinRule,
	energyRule,
}

// Score computes the 0-100 health score, A-E band, adjustment breakdown and
// citation set for one nutrient record. Unknown nutrient values score as
// zero; the only error path is a registry lookup failure, which cannot occur
// with the built-in nutrient set.
func (e *Engine) Score(rec Record) (*Result, error) {
	total := 100.0
	var adjustments []Adjustment
	var citations []string
	seen := make(map[string]bool)

	for _, r := range rules {
		adj, err := r(rec, e.registry)
		if err != nil {
			return nil, err
		}
		if adj == nil {
			continue
		}
		total += adj.Points
		adjustments = append(adjustments, *adj)
		if adj.Citation != "" && adj.Points != 0 && !seen[adj.Citation] {
			seen[adj.Citation] = true
			citations = append(citations, adj.Citation)
		}
	}

	// Round once after all adjustments, then clamp into [0, 100].
	final := int(math.Round(total))
	if final < 0 {
		final = 0
	}
	if final > 100 {
		final = 100
	}

	res := &Result{
		Score:       final,
		Band:        BandFor(final),
		Adjustments: adjustments,
		Citations:   citations,
	}

	if e.logger != nil {
		e.logger.Debug("scored record",
			"score", res.Score,
			"band", res.Band,
			"adjustments", len(res.Adjustments),
		)
	}
	return res, nil
}

// BandFor maps a clamped score onto the A-E quality bands:
// [80,100]=A, [60,80)=B, [40,60)=C, [20,40)=D, [0,20)=E.
func BandFor(score int) string {
	switch {
	case score >= 80:
		return "A"
	case score >= 60:
		return "B"
	case score >= 40:
		return "C"
	case score >= 20:
		return "D"
	default:
		return "E"
	}
}

func sugarRule(rec Record, reg *Registry) (*Adjustment, error) {
	t, err := reg.Get(NutrientSugar)
	if err != nil {
		return nil, err
	}
	sugar := rec.Sugars.Value()
	switch {
	case sugar > t.High:
		penalty := math.Min(30, (sugar-t.High)*2)
		return &Adjustment{
			Factor:    "High Sugar",
			Kind:      KindPenalty,
			Points:    -penalty,
			Value:     grams(sugar),
			Threshold: ">" + trimFloat(t.High) + "g",
			Citation:  t.Citation,
		}, nil
	case sugar <= t.Low:
		// Informational: no score change, surfaces as a good point.
		return &Adjustment{
			Factor:    "Low Sugar",
			Kind:      KindBonus,
			Points:    0,
			Value:     grams(sugar),
			Threshold: "≤" + trimFloat(t.Low) + "g",
		}, nil
	}
	return nil, nil
}

func saturatedFatRule(rec Record, reg *Registry) (*Adjustment, error) {
	t, err := reg.Get(NutrientSaturatedFat)
	if err != nil {
		return nil, err
	}
	satFat := rec.SaturatedFat.Value()
	if satFat <= t.High {
		return nil, nil
	}
	penalty := math.Min(25, (satFat-t.High)*3)
	return &Adjustment{
		Factor:    "High Saturated Fat",
		Kind:      KindPenalty,
		Points:    -penalty,
		Value:     grams(satFat),
		Threshold: ">" + trimFloat(t.High) + "g",
		Citation:  t.Citation,
	}, nil
}

func sodiumRule(rec Record, reg *Registry) (*Adjustment, error) {
	t, err := reg.Get(NutrientSodium)
	if err != nil {
		return nil, err
	}
	// Records carry sodium in grams; the threshold is in mg.
	sodiumMg := rec.Sodium.Value() * 1000
	if sodiumMg <= t.High {
		return nil, nil
	}
	penalty := math.Min(25, (sodiumMg-t.High)/50)
	return &Adjustment{
		Factor:    "High Sodium",
		Kind:      KindPenalty,
		Points:    -penalty,
		Value:     trimFloat(sodiumMg) + "mg per 100g",
		Threshold: ">" + trimFloat(t.High) + "mg per 100g",
		Citation:  t.Citation,
	}, nil
}

func fiberRule(rec Record, reg *Registry) (*Adjustment, error) {
	t, err := reg.Get(NutrientFiber)
	if err != nil {
		return nil, err
	}
	fiber := rec.Fiber.Value()
	// Mutually exclusive, most specific first.
	switch {
	case fiber >= t.VeryHigh:
		return &Adjustment{
			Factor:    "Very High Fiber",
			Kind:      KindBonus,
			Points:    15,
			Value:     grams(fiber),
			Threshold: "≥" + trimFloat(t.VeryHigh) + "g",
			Citation:  t.Citation,
		}, nil
	case fiber >= t.High:
		return &Adjustment{
			Factor:    "High Fiber",
			Kind:      KindBonus,
			Points:    8,
			Value:     grams(fiber),
			Threshold: "≥" + trimFloat(t.High) + "g",
			Citation:  t.Citation,
		}, nil
	}
	return nil, nil
}

func proteinRule(rec Record, reg *Registry) (*Adjustment, error) {
	t, err := reg.Get(NutrientProtein)
	if err != nil {
		return nil, err
	}
	protein := rec.Proteins.Value()
	if protein < t.High {
		return nil, nil
	}
	return &Adjustment{
		Factor:    "Good Protein Content",
		Kind:      KindBonus,
		Points:    10,
		Value:     grams(protein),
		Threshold: "≥" + trimFloat(t.High) + "g per 100g",
		Citation:  t.Citation,
	}, nil
}

func energyRule(rec Record, reg *Registry) (*Adjustment, error) {
	t, err := reg.Get(NutrientEnergy)
	if err != nil {
		return nil, err
	}
	energy := rec.EnergyKcal.Value()
	if energy <= t.High {
		return nil, nil
	}
	penalty := math.Min(10, (energy-t.High)/50)
	// No citation: calorie density is a heuristic, not guideline-sourced.
	return &Adjustment{
		Factor:    "High Calorie Density",
		Kind:      KindPenalty,
		Points:    -penalty,
		Value:     trimFloat(energy) + " kcal per 100g",
		Threshold: ">" + trimFloat(t.High) + " kcal per 100g",
	}, nil
}

func grams(v float64) string {
	return trimFloat(v) + "g per 100g"
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
