// Package units parses the free-text numeric fields of the intake form and
// converts between metric and imperial for display.
package units

import (
	"math"
	"strconv"
	"strings"
)

const (
	cmPerInch = 2.54
	kgPerLb   = 0.45359237
)

// ParseAmount reads a free-text numeric field. Blank, negative and non-finite
// values are rejected.
func ParseAmount(raw string) (float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return 0, false
	}
	return n, true
}

func CmToInches(cm float64) float64 { return cm / cmPerInch }

func InchesToCm(in float64) float64 { return in * cmPerInch }

func KgToLb(kg float64) float64 { return kg / kgPerLb }

func LbToKg(lb float64) float64 { return lb * kgPerLb }

// FeetInches splits a height in centimetres into whole feet and rounded inches.
func FeetInches(cm float64) (feet, inches int) {
	total := int(math.Round(CmToInches(cm)))
	return total / 12, total % 12
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
