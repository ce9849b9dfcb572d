package tagging

import (
	"sort"
	"strings"

	"github.com/rcliao/tagkit/internal/errors"
)

// ParseOptions configures ParseInput and GetTagParts.
type ParseOptions struct {
	// DefaultNamespace is applied to tags written without a namespace.
	// Writing ":name" opts a tag out of it.
	DefaultNamespace string

	// KeepQuotes lists literals that keep their quotes when written as
	// "literal". Resolve uses it to tell a quoted wildcard from a bare one.
	KeepQuotes []string
}

// ParseInput parses a user-entered tag expression into canonical tag
// strings of the form namespace:name=value, sorted and without duplicates.
//
// Tags are separated by spaces unless the input contains a comma outside
// of double quotes, in which case commas separate tags and spaces become
// part of them. Malformed fragments are dropped rather than reported.
func ParseInput(input string, opts ParseOptions) []string {
	if input == "" {
		return nil
	}

	defaultNS := ""
	if opts.DefaultNamespace != "" {
		defaultNS = NormalizePart(opts.DefaultNamespace, opts.KeepQuotes)
	}

	if !strings.ContainsAny(input, `,":=`) && !containsAny(input, opts.KeepQuotes) {
		return parseWords(input, defaultNS)
	}

	tokens, sawComma := tokenize(input)
	delimiter := tokenSpace
	if sawComma {
		delimiter = tokenComma
	}

	seen := make(map[string]struct{})
	var word []string
	flush := func() {
		if tag := buildTag(word, defaultNS, opts.KeepQuotes); tag != "" {
			seen[tag] = struct{}{}
		}
		word = word[:0]
	}
	for _, tok := range tokens {
		if tok.kind == delimiter {
			flush()
			continue
		}
		word = append(word, tok.content)
	}
	flush()

	return sortedKeys(seen)
}

// ParseSingle parses input that must name exactly one tag.
func ParseSingle(input string, opts ParseOptions) (string, error) {
	tags := ParseInput(input, opts)
	switch len(tags) {
	case 0:
		return "", errors.Wrapf(ErrNoTags, "%q", input)
	case 1:
		return tags[0], nil
	default:
		return "", errors.Wrapf(ErrMultipleTags, "%q", input)
	}
}

// parseWords handles input made only of plain words separated by spaces.
func parseWords(input, defaultNS string) []string {
	seen := make(map[string]struct{})
	for _, w := range SplitStrip(input, " ") {
		if defaultNS != "" {
			w = defaultNS + ":" + w
		}
		seen[w] = struct{}{}
	}
	return sortedKeys(seen)
}

// buildTag assembles one tag from the token contents of a single word.
//
// The first ':' ends the namespace and the first '=' after a non-empty
// name starts the value. A leading '=' without a name before it is
// dropped, and so is an '=' directly after the ':'. When '=' comes before
// any ':' the tag has no explicit namespace and everything after the '='
// is value. An explicit empty namespace (":name") suppresses defaultNS.
func buildTag(tokens []string, defaultNS string, keepQuotes []string) string {
	if !containsToken(tokens, ":") && !containsToken(tokens, "=") {
		word := NormalizePart(strings.Join(tokens, ""), keepQuotes)
		if word != "" && defaultNS != "" {
			word = defaultNS + ":" + word
		}
		return word
	}

	var left, middle, right []string
	var lms, mrs string
	for _, tok := range tokens {
		switch lms {
		case "":
			switch {
			case tok == ":":
				lms = ":"
			case tok == "=":
				if len(left) > 0 {
					lms = "="
				}
			default:
				left = append(left, tok)
			}
		case ":":
			switch {
			case mrs != "":
				right = append(right, tok)
			case tok == "=":
				if len(middle) > 0 {
					mrs = "="
				}
			default:
				middle = append(middle, tok)
			}
		case "=":
			middle = append(middle, tok)
		}
	}

	var namespace, name, value []string
	var defaultOrEmpty []string
	if defaultNS != "" {
		defaultOrEmpty = []string{defaultNS}
	}
	switch {
	case lms == "=":
		namespace, name, value = defaultOrEmpty, left, middle
	case len(middle) > 0:
		namespace, name, value = left, middle, right
	default:
		namespace, name = defaultOrEmpty, left
	}

	tag := NormalizePart(strings.Join(name, ""), keepQuotes)
	if tag == "" {
		return ""
	}
	if ns := NormalizePart(strings.Join(namespace, ""), keepQuotes); ns != "" {
		tag = ns + ":" + tag
	}
	if v := NormalizePart(strings.Join(value, ""), keepQuotes); v != "" {
		tag = tag + "=" + v
	}
	return tag
}

func containsToken(tokens []string, want string) bool {
	for _, tok := range tokens {
		if tok == want {
			return true
		}
	}
	return false
}

func containsAny(input string, literals []string) bool {
	for _, lit := range literals {
		if strings.Contains(input, lit) {
			return true
		}
	}
	return false
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
