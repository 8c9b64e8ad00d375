package surf

import (
	"strings"
	"unicode"
)

func isSwellSeparator(r rune) bool {
	switch r {
	case ',', '，', '、', '・', '·':
		return true
	}
	return unicode.IsSpace(r)
}

// SwellTokens splits a best-swell list such as "NE, ENE・E" into upper-cased tokens.
func SwellTokens(list string) []string {
	fields := strings.FieldsFunc(list, isSwellSeparator)
	for i, f := range fields {
		fields[i] = strings.ToUpper(f)
	}
	return fields
}

// IsBestSwell reports whether dir is listed in the point's best-swell list. Only exact
// symbol matches count; neighbouring buckets do not.
func IsBestSwell(list string, dir Direction) bool {
	if list == "" || !dir.Valid() {
		return false
	}

	name := strings.ToUpper(dir.String())
	for _, tok := range SwellTokens(list) {
		if tok == name {
			return true
		}
	}
	return false
}
