package helper

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CleanText trims, NFC-normalises and collapses runs of whitespace, so
// "Jane  Doe" and "Jane Doe" (or composed/decomposed accents) store alike.
func CleanText(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), " ")
}

// CleanCode is CleanText without inner-space collapsing; codes stay opaque.
func CleanCode(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
