package service

import (
	"strconv"
	"strings"
)

// FallbackAmount is used when a measurement has no leading number.
const FallbackAmount = 1.0

// Measurement is a parsed recipe quantity. Only Amount (ounces) drives
// timing; Unit is informational.
type Measurement struct {
	Amount   float64
	Unit     string
	Fallback bool
}

// ParseMeasurement splits s on whitespace and reads the first token as a
// number. When that fails the whole input becomes the unit and Amount is
// FallbackAmount, so the ingredient is still poured but flagged.
func ParseMeasurement(s string) Measurement {
	fields := strings.Fields(s)
	if len(fields) > 0 {
		if v, err := strconv.ParseFloat(fields[0], 64); err == nil {
			return Measurement{Amount: v, Unit: strings.Join(fields[1:], " ")}
		}
	}
	return Measurement{Amount: FallbackAmount, Unit: s, Fallback: true}
}
