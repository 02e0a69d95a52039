package utils

import (
	"math/rand/v2"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const suffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// SuffixLength is the length of the random suffix appended to generated slugs and codes.
const SuffixLength = 4

// NormalizeString lowercases s, strips diacritics and joins the remaining
// alphanumeric runs with sep. "Crème Brûlée!" becomes "creme-brulee" for sep "-".
func NormalizeString(s, sep string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}

	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(stripped) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteString(sep)
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}

// RandomSuffix returns n random base36 characters.
func RandomSuffix(n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = suffixAlphabet[rand.IntN(len(suffixAlphabet))]
	}
	return string(buf)
}

// SuffixedSlug returns the normalized name followed by a fresh random suffix,
// e.g. "blue-widget-k3x9". It is used for slugs and facet codes that must not collide.
func SuffixedSlug(name string) string {
	base := NormalizeString(name, "-")
	if base == "" {
		return RandomSuffix(SuffixLength)
	}
	return base + "-" + RandomSuffix(SuffixLength)
}
