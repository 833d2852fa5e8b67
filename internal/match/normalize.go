package match

import (
	"strings"
	"unicode"
)

// NormalizeTypeName normalizes a type name for fuzzy matching: the package
// qualifier is dropped, an interface "I" prefix and a "Mixin" suffix are
// stripped, and the rest is case-folded without separators.
//
//	"example.com/shop.INotifyTarget" -> "notifytarget"
//	"AuditMixin"                     -> "audit"
func NormalizeTypeName(s string) string {
	if i := strings.LastIndexAny(s, "./"); i >= 0 {
		s = s[i+1:]
	}

	s = stripInterfacePrefix(s)
	if len(s) > len("Mixin") {
		s = strings.TrimSuffix(s, "Mixin")
	}

	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// stripInterfacePrefix removes a leading "I" when it is followed by another
// upper-case letter ("INotify" but not "Item").
func stripInterfacePrefix(s string) string {
	runes := []rune(s)
	if len(runes) > 1 && runes[0] == 'I' && unicode.IsUpper(runes[1]) {
		return string(runes[1:])
	}

	return s
}

// isSeparator returns true if the rune is a common separator.
func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}
