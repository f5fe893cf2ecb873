package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/width"
)

var titleCaser = cases.Title(language.Und)

// idiomatic implements the Idiomatic naming strategy of spec §4.7: split on
// word boundaries, capitalize each word (preserving acronym runs of
// uppercase), and re-join into PascalCase (Type) or camelCase (Member).
func idiomatic(name string, kind Kind) string {
	if name == "" {
		return emptySentinel(kind)
	}
	if name == "_" {
		return "_underscore_"
	}

	// Fold fullwidth/halfwidth forms (e.g. a fullwidth Latin letter or
	// digit from a CJK-authored document) to their standard form before
	// word-boundary splitting, so "Ｓｅｒｖｅｒ" behaves like "Server".
	folded := width.Fold.String(name)

	leading := countLeadingUnderscores(folded)
	rest := folded[leading:]

	unified := unifySeparators(rest)
	var words []string
	for _, chunk := range splitOnUnderscore(unified) {
		words = append(words, splitCaseTransitions(chunk)...)
	}

	if len(words) == 0 {
		return strings.Repeat("_", leading)
	}

	if reservedWord, ok := reservedRawJoin(words); ok {
		return "_" + reservedWord
	}

	cased := caseWords(words, kind)
	result := strings.Repeat("_", leading) + strings.Join(cased, "")

	if r := firstRune(strings.TrimLeft(result, "_")); unicode.IsDigit(r) {
		return "_" + result
	}

	return result
}

// emptySentinel produces the synthesized identifier for an empty
// documented name, cased per kind: "_Empty_" for types, "_empty_" for
// members.
func emptySentinel(kind Kind) string {
	if kind == Member {
		return "_empty_"
	}

	return "_Empty_"
}

// reservedRawJoin reports whether the un-cased, lowercased concatenation of
// words is itself a reserved keyword (e.g. the single word "default"),
// independent of the casing that would otherwise be applied.
func reservedRawJoin(words []string) (string, bool) {
	joined := strings.ToLower(strings.Join(words, ""))
	if IsReserved(joined) {
		return joined, true
	}

	return "", false
}

func countLeadingUnderscores(s string) int {
	n := 0
	for _, r := range s {
		if r != '_' {
			break
		}
		n++
	}

	return n
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}

	return 0
}

// unifySeparators turns the documented word-boundary punctuation
// (hyphen, space, dot, slash) into underscores, and escapes any other
// non-identifier character via the same defensive token mechanism used by
// the Defensive strategy, so nothing is silently dropped.
func unifySeparators(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '-' || r == ' ' || r == '.' || r == '/':
			b.WriteByte('_')
		default:
			if token, ok := escapeTokens[r]; ok {
				b.WriteString("_" + token + "_")
			} else {
				b.WriteString(defensive(string(r)))
			}
		}
	}

	return b.String()
}

func splitOnUnderscore(s string) []string {
	var words []string
	for _, w := range strings.Split(s, "_") {
		if w != "" {
			words = append(words, w)
		}
	}

	return words
}

// splitCaseTransitions further splits a boundary-free chunk on case
// transitions: a lower/digit-to-upper transition starts a new word, and a
// run of uppercase letters immediately followed by a lowercase letter
// breaks before its last letter (so "HTTPServer" -> ["HTTP", "Server"]).
func splitCaseTransitions(chunk string) []string {
	runes := []rune(chunk)
	if len(runes) == 0 {
		return nil
	}

	var words []string
	start := 0
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]

		boundary := false
		if (unicode.IsLower(prev) || unicode.IsDigit(prev)) && unicode.IsUpper(cur) {
			boundary = true
		} else if unicode.IsUpper(prev) && unicode.IsUpper(cur) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
			boundary = true
		}

		if boundary {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	words = append(words, string(runes[start:]))

	return words
}

// isAcronym reports whether word is an all-uppercase run of more than one
// letter, e.g. "HTTP" or "ID" — these keep their casing verbatim rather
// than being title-cased down to "Http"/"Id".
func isAcronym(word string) bool {
	letters := 0
	for _, r := range word {
		if !unicode.IsUpper(r) {
			if unicode.IsLetter(r) {
				return false
			}
			continue
		}
		letters++
	}

	return letters > 1
}

// caseWords applies PascalCase (Type) or camelCase (Member) casing across
// the word list, preserving acronym runs.
func caseWords(words []string, kind Kind) []string {
	out := make([]string, len(words))
	for i, w := range words {
		switch {
		case kind == Member && i == 0:
			out[i] = strings.ToLower(w)
		case isAcronym(w):
			out[i] = w
		default:
			out[i] = titleCaser.String(strings.ToLower(w))
		}
	}

	return out
}
