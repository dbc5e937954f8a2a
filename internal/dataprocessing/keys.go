package dataprocessing

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// KeyNormalizer maps region names to grouping keys. With Fold unset keys
// are compared exactly.
type KeyNormalizer struct {
	Fold   bool
	folder cases.Caser
}

// NewKeyNormalizer creates a normalizer. fold enables NFC composition,
// whitespace collapsing and Unicode case folding.
func NewKeyNormalizer(fold bool) *KeyNormalizer {
	return &KeyNormalizer{Fold: fold, folder: cases.Fold()}
}

// Key returns the grouping key for a region name
func (k *KeyNormalizer) Key(name string) string {
	if !k.Fold {
		return name
	}
	s := norm.NFC.String(name)
	s = strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
	return k.folder.String(s)
}

// Display returns the spelling written for a group
func (k *KeyNormalizer) Display(name string) string {
	if !k.Fold {
		return name
	}
	return strings.TrimSpace(name)
}
