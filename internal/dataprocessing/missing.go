package dataprocessing

// naTokens are the cell texts treated as missing on read, in addition to
// the empty string. Matching is exact: " NA" is a value.
var naTokens = map[string]struct{}{
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// IsMissing reports whether a raw cell text denotes a missing value
func IsMissing(s string) bool {
	if s == "" {
		return true
	}
	_, ok := naTokens[s]
	return ok
}

// ParseCell converts raw text to a cell, recognizing missing values
func ParseCell(s string) Cell {
	if IsMissing(s) {
		return Null()
	}
	return Text(s)
}
