package score

import "fmt"

// Sentinel strings used when a breakdown side is empty.
const (
	NoGoodPoints = "No significant positive nutritional factors."
	NoConcerns   = "No major nutritional concerns identified."
)

var bandDescriptions = map[string]string{
	"A": "excellent nutritional quality",
	"B": "good nutritional quality",
	"C": "acceptable nutritional quality",
	"D": "poor nutritional quality",
	"E": "very poor nutritional quality",
}

// BandDescription returns the human-readable quality phrase for a band.
func BandDescription(band string) string {
	if d, ok := bandDescriptions[band]; ok {
		return d
	}
	return "moderate nutritional quality"
}

// GoodPoints renders one display string per bonus adjustment. Numeric values
// pass through untouched from the scoring breakdown.
func GoodPoints(res *Result) []string {
	bonuses := res.Bonuses()
	if len(bonuses) == 0 {
		return []string{NoGoodPoints}
	}
	out := make([]string, 0, len(bonuses))
	for _, b := range bonuses {
		out = append(out, fmt.Sprintf("%s: %s", b.Factor, b.Value))
	}
	return out
}

// Concerns renders one display string per penalty adjustment, including the
// threshold that was crossed.
func Concerns(res *Result) []string {
	penalties := res.Penalties()
	if len(penalties) == 0 {
		return []string{NoConcerns}
	}
	out := make([]string, 0, len(penalties))
	for _, p := range penalties {
		out = append(out, fmt.Sprintf("%s: %s (threshold: %s)", p.Factor, p.Value, p.Threshold))
	}
	return out
}

// Explanation builds the natural-language summary for a result. The phrasing
// branches on whether the product has only good points, only concerns, both,
// or neither.
func Explanation(productName string, res *Result) string {
	goodCount := len(res.Bonuses())
	concernCount := len(res.Penalties())

	base := fmt.Sprintf("%s scores %d/100 (Band %s), indicating %s.",
		productName, res.Score, res.Band, BandDescription(res.Band))

	switch {
	case concernCount == 0 && goodCount > 0:
		return fmt.Sprintf("%s This product has %d positive nutritional factor%s with no major concerns based on WHO/FDA guidelines.",
			base, goodCount, plural(goodCount))
	case concernCount > 0 && goodCount == 0:
		return fmt.Sprintf("%s This product has %d nutritional concern%s based on WHO/FDA guidelines.",
			base, concernCount, plural(concernCount))
	case concernCount > 0 && goodCount > 0:
		return fmt.Sprintf("%s This product has %d positive factor%s but also %d concern%s based on WHO/FDA guidelines.",
			base, goodCount, plural(goodCount), concernCount, plural(concernCount))
	default:
		return fmt.Sprintf("%s scores %d/100 (Band %s), indicating %s based on WHO/FDA nutrition guidelines.",
			productName, res.Score, res.Band, BandDescription(res.Band))
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// Report is the full display-ready payload for one scoring call: the raw
// result plus the formatter-derived strings. This is the shape an API
// response or UI carries.
type Report struct {
	ProductName string       `json:"product_name"`
	Score       int          `json:"score"`
	Band        string       `json:"band"`
	GoodPoints  []string     `json:"good_points"`
	Concerns    []string     `json:"concerns"`
	Explanation string       `json:"explanation"`
	Citations   []string     `json:"citations"`
	Adjustments []Adjustment `json:"adjustments"`
}

// BuildReport assembles the display payload for a scored product.
func BuildReport(productName string, res *Result) *Report {
	citations := res.Citations
	if citations == nil {
		citations = []string{}
	}
	adjustments := res.Adjustments
	if adjustments == nil {
		adjustments = []Adjustment{}
	}
	return &Report{
		ProductName: productName,
		Score:       res.Score,
		Band:        res.Band,
		GoodPoints:  GoodPoints(res),
		Concerns:    Concerns(res),
		Explanation: Explanation(productName, res),
		Citations:   citations,
		Adjustments: adjustments,
	}
}
