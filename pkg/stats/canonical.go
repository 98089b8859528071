package stats

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// canonicalNames maps normalized (lowercased, "&" spelled out) labels to
// their display form. Spellings not listed here fall back to title case.
var canonicalNames = map[string]string{
	"andaman and nicobar islands": "Andaman and Nicobar Islands",
	"jammu and kashmir":           "Jammu and Kashmir",
	"west bengal":                 "West Bengal",
	"westbengal":                  "West Bengal",
	"west bangal":                 "West Bengal",
	"uttarakhand":                 "Uttarakhand",
	"uttaranchal":                 "Uttarakhand",
	"orissa":                      "Odisha",
	"pondicherry":                 "Puducherry",
	"chhatisgarh":                 "Chhattisgarh",
	"tamilnadu":                   "Tamil Nadu",
	"dadra and nagar haveli":      "Dadra and Nagar Haveli",
	"daman and diu":               "Daman and Diu",
}

// Canonicalize turns a free-text state label into the single name used to
// group and filter records. It never fails; blank input yields "".
func Canonicalize(label string) string {
	s := strings.Join(strings.Fields(label), " ")
	s = strings.ReplaceAll(s, "&", "and")
	s = strings.ToLower(s)

	if name, ok := canonicalNames[s]; ok {
		return name
	}
	return titleWords(s)
}

// titleWords capitalizes every word except the conjunction "and".
func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if w == "and" {
			continue
		}
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToTitle(r)) + strings.ToLower(w[size:])
}

// Selectable reports whether a canonical label names a real region. Labels
// shorter than three characters or made only of digits are noise.
func Selectable(canonical string) bool {
	if utf8.RuneCountInString(canonical) < 3 {
		return false
	}
	for _, r := range canonical {
		if !unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
