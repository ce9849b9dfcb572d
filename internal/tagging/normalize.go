package tagging

import "strings"

// stopChars may not appear unquoted inside a namespace, name or value.
const stopChars = ":="

// NormalizePart cleans a single namespace, name or value fragment.
//
// Double quotes are structural and always removed. A fragment that still
// contains ':' or '=' afterwards is wrapped in one pair of quotes. A
// fragment that is exactly a quoted keepQuotes literal (for instance "*"
// when '*' is the wildcard) is returned verbatim so the caller can tell a
// quoted literal from the bare one.
func NormalizePart(part string, keepQuotes []string) string {
	for _, keep := range keepQuotes {
		if part == `"`+keep+`"` {
			return part
		}
	}
	part = strings.ReplaceAll(part, `"`, "")
	if part == "" {
		return ""
	}
	if strings.ContainsAny(part, stopChars) {
		return `"` + part + `"`
	}
	return part
}

// SplitStrip splits input on delimiter, trims whitespace from each piece
// and drops the empty ones.
func SplitStrip(input, delimiter string) []string {
	if input == "" {
		return nil
	}
	var words []string
	for _, w := range strings.Split(input, delimiter) {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, w)
		}
	}
	return words
}
