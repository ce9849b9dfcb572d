package tagging

import "strings"

type tokenKind int

const (
	tokenPart tokenKind = iota
	tokenSpace
	tokenComma
	tokenChar
)

func (k tokenKind) String() string {
	switch k {
	case tokenPart:
		return "part"
	case tokenSpace:
		return "space"
	case tokenComma:
		return "comma"
	case tokenChar:
		return "char"
	}
	return "unknown"
}

type token struct {
	kind    tokenKind
	content string
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func isSplit(c byte) bool {
	return c == ':' || c == '='
}

// tokenize splits input into tokens. At every position the first rule that
// matches wins, in this order:
//
//	part   a single ':' or '=', a closed "..." string, or a run of anything
//	       but ',', whitespace, ':', '=' and '"'
//	space  a run of whitespace
//	comma  ',' and the whitespace after it
//	char   a run of anything but ',', whitespace, ':' and '='; this is
//	       where an unclosed '"' ends up
//
// The returned flag reports whether a comma token was produced.
func tokenize(input string) ([]token, bool) {
	var tokens []token
	sawComma := false
	i := 0
	for i < len(input) {
		start := i
		c := input[i]
		switch {
		case isSplit(c):
			i++
			tokens = append(tokens, token{tokenPart, input[start:i]})
		case c == '"' && strings.IndexByte(input[i+1:], '"') >= 0:
			i += strings.IndexByte(input[i+1:], '"') + 2
			tokens = append(tokens, token{tokenPart, input[start:i]})
		case c != ',' && c != '"' && !isSpace(c):
			for i < len(input) && !isPartStop(input[i]) {
				i++
			}
			tokens = append(tokens, token{tokenPart, input[start:i]})
		case isSpace(c):
			for i < len(input) && isSpace(input[i]) {
				i++
			}
			tokens = append(tokens, token{tokenSpace, input[start:i]})
		case c == ',':
			i++
			for i < len(input) && isSpace(input[i]) {
				i++
			}
			tokens = append(tokens, token{tokenComma, input[start:i]})
			sawComma = true
		default:
			// unclosed quote
			for i < len(input) && !isCharStop(input[i]) {
				i++
			}
			tokens = append(tokens, token{tokenChar, input[start:i]})
		}
	}
	return tokens, sawComma
}

func isPartStop(c byte) bool {
	return c == ',' || c == '"' || isSplit(c) || isSpace(c)
}

func isCharStop(c byte) bool {
	return c == ',' || isSplit(c) || isSpace(c)
}
