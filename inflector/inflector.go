// Package inflector implements the singularize/pluralize/underscore/classify
// string transforms used by Rails-family naming conventions. It is pure and
// stateless: four static tables (irregulars, uncountables, plural rules,
// singular rules) plus regexp-based rule application, first-match-wins, in
// the style of the teacher's own small static-table + regex idiom
// (inspector/repository/detector.go's marker regexes).
package inflector

import (
	"regexp"
	"strings"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// irregular holds singular<->plural pairs that no regex rule should touch.
var irregular = map[string]string{
	"person": "people",
	"man":    "men",
	"child":  "children",
	"sex":    "sexes",
	"move":   "moves",
	"ox":     "oxen",
	"foot":   "feet",
	"tooth":  "teeth",
	"goose":  "geese",
	"mouse":  "mice",
	"louse":  "lice",
	"die":    "dice",
	"quiz":   "quizzes",
}

var irregularPluralToSingular = invert(irregular)

func invert(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

var uncountables = map[string]bool{
	"equipment": true, "information": true, "rice": true, "money": true,
	"species": true, "series": true, "fish": true, "sheep": true,
	"jeans": true, "police": true, "data": true, "news": true,
}

// pluralRules is applied in order; the first match wins.
var pluralRules = compile([][2]string{
	{"(?i)(quiz)$", "${1}zes"},
	{"(?i)^(oxen)$", "${1}"},
	{"(?i)(matr|vert|ind)(?:ix|ex)$", "${1}ices"},
	{"(?i)(x|ch|ss|sh)$", "${1}es"},
	{"(?i)([^aeiouy]|qu)y$", "${1}ies"},
	{"(?i)(hive)$", "${1}s"},
	{"(?i)(?:([^f])fe|([lr])f)$", "${1}${2}ves"},
	{"(?i)sis$", "ses"},
	{"(?i)([ti])um$", "${1}a"},
	{"(?i)(buffal|tomat)o$", "${1}oes"},
	{"(?i)(bu)s$", "${1}ses"},
	{"(?i)(alias|status)$", "${1}es"},
	{"(?i)(octop|vir)us$", "${1}i"},
	{"(?i)(ax|test)is$", "${1}es"},
	{"(?i)s$", "s"},
	{"$", "s"},
})

// singularRules is applied in order; the first match wins.
var singularRules = compile([][2]string{
	{"(?i)(quiz)zes$", "${1}"},
	{"(?i)(matr)ices$", "${1}ix"},
	{"(?i)(vert|ind)ices$", "${1}ex"},
	{"(?i)^(ox)en$", "${1}"},
	{"(?i)(alias|status)(es)?$", "${1}"},
	{"(?i)(octop|vir)(us|i)$", "${1}us"},
	{"(?i)(cris|ax|test)es$", "${1}is"},
	{"(?i)(shoe)s$", "${1}"},
	{"(?i)(o)es$", "${1}"},
	{"(?i)(bus)(es)?$", "${1}"},
	{"(?i)([ml])ice$", "${1}ouse"},
	{"(?i)(x|ch|ss|sh)es$", "${1}"},
	{"(?i)([^aeiouy]|qu)ies$", "${1}y"},
	{"(?i)([lr])ves$", "${1}f"},
	{"(?i)(tive)s$", "${1}"},
	{"(?i)(hive)s$", "${1}"},
	{"(?i)([^f])ves$", "${1}fe"},
	{"(?i)(^analy)(sis|ses)$", "${1}sis"},
	{"(?i)((a)naly|(b)a|(d)iagno|(p)arenthe|(p)rogno|(s)ynop|(t)he)(sis|ses)$", "${1}sis"},
	{"(?i)([ti])a$", "${1}um"},
	{"(?i)(n)ews$", "${1}ews"},
	{"(?i)s$", ""},
})

func compile(pairs [][2]string) []rule {
	out := make([]rule, len(pairs))
	for i, p := range pairs {
		out[i] = rule{pattern: regexp.MustCompile(p[0]), replacement: p[1]}
	}
	return out
}

func apply(word string, rules []rule) string {
	for _, r := range rules {
		if r.pattern.MatchString(word) {
			return r.pattern.ReplaceAllString(word, r.replacement)
		}
	}
	return word
}

// Pluralize returns the plural form of word.
func Pluralize(word string) string {
	lower := strings.ToLower(word)
	if uncountables[lower] {
		return word
	}
	if p, ok := irregular[lower]; ok {
		return matchCase(word, p)
	}
	return apply(word, pluralRules)
}

// Singularize returns the singular form of word.
func Singularize(word string) string {
	lower := strings.ToLower(word)
	if uncountables[lower] {
		return word
	}
	if s, ok := irregularPluralToSingular[lower]; ok {
		return matchCase(word, s)
	}
	return apply(word, singularRules)
}

func matchCase(original, replacement string) string {
	if original == strings.ToUpper(original) {
		return strings.ToUpper(replacement)
	}
	if len(original) > 0 && original[0] >= 'A' && original[0] <= 'Z' {
		return strings.ToUpper(replacement[:1]) + replacement[1:]
	}
	return replacement
}

// Underscore inserts `_` before each interior uppercase run and lowercases
// the result (e.g. "HTTPServer" -> "http_server", "UserID" -> "user_id").
func Underscore(word string) string {
	var b strings.Builder
	runes := []rune(word)
	for i, r := range runes {
		isUpper := r >= 'A' && r <= 'Z'
		if isUpper && i > 0 {
			prevLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if prevLower || nextLower {
				b.WriteByte('_')
			}
		}
		b.WriteRune(toLowerRune(r))
	}
	return strings.ReplaceAll(b.String(), "__", "_")
}

func toLowerRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// Classify splits word on `_`, upcases the first letter of each piece, and
// concatenates (e.g. "user_accounts" -> "UserAccount", singularizing the
// last segment).
func Classify(word string) string {
	parts := strings.Split(word, "_")
	if len(parts) == 0 {
		return ""
	}
	parts[len(parts)-1] = Singularize(parts[len(parts)-1])
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}
