package canon

import (
	"slices"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// CompareKeys orders strings by UTF-16 code units as required by RFC 8785.
// Go's native string comparison orders by UTF-8 bytes, which differs for
// characters outside the Basic Multilingual Plane.
func CompareKeys(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	n := min(len(a16), len(b16))
	for i := 0; i < n; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}

	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	}
	return 0
}

// SortKeys sorts keys in place using CompareKeys.
func SortKeys(keys []string) {
	slices.SortFunc(keys, CompareKeys)
}

// NormalizeName returns the NFC form of an item name. Two names that render
// identically always normalize to the same key.
func NormalizeName(name string) string {
	return norm.NFC.String(name)
}
