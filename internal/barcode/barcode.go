// Package barcode validates scanned or hand-typed product barcodes. Image
// decoding is the scanner's job; this package only deals with the numeric
// string it produces.
package barcode

import (
	"errors"
	"strings"
)

// ErrInvalid is returned for strings that are not a plausible retail barcode.
var ErrInvalid = errors.New("invalid barcode")

// Normalize strips the separators and whitespace commonly introduced by
// manual entry.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case ' ', '-', '\t':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Validate checks that s looks like a retail barcode: 8 to 13 digits,
// covering EAN-8 through EAN-13 and UPC-A. It accepts any digit string in
// that range; use VerifyCheckDigit for the stricter GS1 check.
func Validate(s string) error {
	if len(s) < 8 || len(s) > 13 {
		return ErrInvalid
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return ErrInvalid
		}
	}
	return nil
}

// VerifyCheckDigit reports whether the trailing GS1 check digit is
// consistent for EAN-8, UPC-A and EAN-13 codes. Lengths without a defined
// check digit scheme pass unchecked.
func VerifyCheckDigit(s string) bool {
	if Validate(s) != nil {
		return false
	}
	switch len(s) {
	case 8, 12, 13:
	default:
		return true
	}

	// Mod-10: weight 3 on alternating digits, counted from the right,
	// starting with the digit next to the check digit.
	sum := 0
	weight := 3
	for i := len(s) - 2; i >= 0; i-- {
		sum += int(s[i]-'0') * weight
		if weight == 3 {
			weight = 1
		} else {
			weight = 3
		}
	}
	check := (10 - sum%10) % 10
	return int(s[len(s)-1]-'0') == check
}
