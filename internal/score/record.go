package score

import (
	"bytes"
	"strconv"
	"strings"
)

// Amount is an optional per-100g nutrient quantity. Upstream databases report
// missing nutrients as "N/A", an empty string, null, or by omitting the field
// entirely; all of those decode to an unknown Amount, which the engine treats
// as zero. The zero-substitution policy is deliberate and load-bearing: a
// record with an unknown nutrient must score identically to one reporting 0.
type Amount struct {
	value float64
	known bool
}

// AmountOf returns a known Amount holding v.
func AmountOf(v float64) Amount {
	return Amount{value: v, known: true}
}

// Value returns the quantity, or 0 when the amount is unknown.
func (a Amount) Value() float64 {
	if !a.known {
		return 0
	}
	return a.value
}

// Known reports whether the amount carried a parseable numeric value.
func (a Amount) Known() bool { return a.known }

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = Amount{}
		return nil
	}

	s := string(data)
	if strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) && len(s) >= 2 {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if s == "" || strings.EqualFold(s, "n/a") {
		*a = Amount{}
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Present but not parseable: same policy as absent.
		*a = Amount{}
		return nil
	}
	*a = Amount{value: v, known: true}
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.known {
		return []byte(`"N/A"`), nil
	}
	return []byte(strconv.FormatFloat(a.value, 'f', -1, 64)), nil
}

// Record holds the per-100g nutrient values for one product. It is the sole
// input to the scoring engine; nutrients are grams unless noted.
type Record struct {
	EnergyKcal    Amount `json:"energy_kcal"` // kcal
	Fat           Amount `json:"fat"`
	SaturatedFat  Amount `json:"saturated_fat"`
	Carbohydrates Amount `json:"carbohydrates"`
	Sugars        Amount `json:"sugars"`
	Fiber         Amount `json:"fiber"`
	Proteins      Amount `json:"proteins"`
	Salt          Amount `json:"salt"`
	Sodium        Amount `json:"sodium"` // grams, converted to mg during scoring
}
