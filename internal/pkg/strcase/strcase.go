// Package strcase converts Go identifiers to the snake_case keys used in
// configuration files.
package strcase

import (
	"strings"
	"unicode"
)

// ToLowerSnake converts an identifier to snake_case, keeping initialisms
// together: "MaxRetries" is "max_retries" and "OTLPEndpoint" is
// "otlp_endpoint".
func ToLowerSnake(s string) string {
	runes := []rune(s)

	var b strings.Builder
	b.Grow(len(s) + 4)

	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && wordStart(runes, i) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// wordStart reports whether the upper case rune at i begins a new word.
func wordStart(runes []rune, i int) bool {
	prev := runes[i-1]
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}
	return unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

// ToKey converts a dotted struct namespace into a configuration key. The
// root type name is dropped and every segment is snake cased, so
// "settings.Image.MaxRetries" becomes "image.max_retries". Index suffixes
// such as "[0]" are kept.
func ToKey(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		return ToLowerSnake(namespace)
	}

	segments := strings.Split(rest, ".")
	for i, seg := range segments {
		name, index, _ := strings.Cut(seg, "[")
		segments[i] = ToLowerSnake(name)
		if index != "" {
			segments[i] += "[" + index
		}
	}
	return strings.Join(segments, ".")
}
