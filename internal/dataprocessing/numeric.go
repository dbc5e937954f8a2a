package dataprocessing

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber coerces cell text to a number. ok is false when the text is
// not a plain decimal number; hex and digit-separator forms are rejected.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "xX_") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// isIntegerLiteral reports whether s is written as a whole number
func isIntegerLiteral(s string) bool {
	_, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return err == nil
}

// integralColumn reports whether every cell is present and written as a
// whole number. Such columns are rendered as integers; any gap, fraction or
// unparseable entry widens the whole column to floats.
func integralColumn(cells []Cell) bool {
	for _, c := range cells {
		if !c.Valid || !isIntegerLiteral(c.Value) {
			return false
		}
	}
	return true
}

// FormatNumber renders v as an integer, or as a float with at least one
// decimal place when asFloat is set.
func FormatNumber(v float64, asFloat bool) string {
	if !asFloat && !math.IsInf(v, 0) {
		return strconv.FormatInt(int64(v), 10)
	}
	return formatFloat(v)
}

func formatFloat(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	abs := math.Abs(v)
	if abs != 0 && (abs >= 1e16 || abs < 1e-4) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
