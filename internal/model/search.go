package model

import (
	"strings"

	"golang.org/x/text/cases"
)

// Folding turns İ into i plus a combining dot and leaves ı alone; both collapse onto plain i.
var searchNormalizer = strings.NewReplacer("\u0307", "", "ı", "i")

// FoldSearch returns the matching key for s. It is computed in Go so every dialect
// compares names the same way regardless of how its LOWER treats non-ASCII letters.
func FoldSearch(s string) string {
	return searchNormalizer.Replace(cases.Fold().String(s))
}
