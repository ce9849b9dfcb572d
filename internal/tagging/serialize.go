package tagging

import (
	"strings"

	"github.com/rcliao/tagkit/internal/model"
)

// quoteChars force a rendered part into double quotes.
const quoteChars = ",:="

// EditOptions configures EditString.
type EditOptions struct {
	// DefaultNamespace is left out when rendering tags in it. Tags without a
	// namespace are rendered as ":name" so they survive a re-parse.
	DefaultNamespace string

	// FilterNamespaces keeps only tags in these namespaces. An absent
	// namespace is matched by "".
	FilterNamespaces []string

	// ExcludeNamespaces drops tags in these namespaces.
	ExcludeNamespaces []string
}

// EditString renders tags as a string a user can edit and submit back to
// ParseInput unchanged. Parts containing ',', ':' or '=' are quoted, and
// so are parts that start or end with whitespace. The
// tags are joined by ", " when any unquoted part contains whitespace and
// by a single space otherwise.
func EditString(tags []model.Tag, opts EditOptions) string {
	names := make([]string, 0, len(tags))
	useCommas := false
	for _, tag := range tags {
		if !opts.allows(tag.Namespace) {
			continue
		}

		namespace, nsQuoted := quotePart(tag.Namespace)
		name, nameQuoted := quotePart(tag.Name)
		value, valueQuoted := quotePart(tag.Value)

		isDefault := opts.DefaultNamespace != "" && tag.Namespace == opts.DefaultNamespace
		if !isDefault && !nsQuoted && hasSpace(namespace) {
			useCommas = true
		}
		if (!nameQuoted && hasSpace(name)) || (!valueQuoted && hasSpace(value)) {
			useCommas = true
		}

		rendered := name
		switch {
		case tag.Namespace != "" && !isDefault:
			rendered = namespace + ":" + rendered
		case tag.Namespace == "" && opts.DefaultNamespace != "":
			rendered = ":" + rendered
		}
		if value != "" {
			rendered = rendered + "=" + value
		}
		names = append(names, rendered)
	}

	if !useCommas {
		return strings.Join(names, " ")
	}
	if len(names) == 1 {
		// a lone tag needs a loose comma to keep its spaces
		return names[0] + ","
	}
	return strings.Join(names, ", ")
}

// EditStringFromInput normalizes a raw tag expression through ParseInput
// and renders it back with EditString.
func EditStringFromInput(input string, opts EditOptions) string {
	parsed := ParseInput(input, ParseOptions{DefaultNamespace: opts.DefaultNamespace})
	tags := make([]model.Tag, 0, len(parsed))
	for _, s := range parsed {
		tag, err := GetTagParts(s, ParseOptions{})
		if err != nil {
			continue
		}
		tags = append(tags, tag)
	}
	return EditString(tags, opts)
}

// FormatTag renders a single tag as namespace:name=value.
func FormatTag(tag model.Tag) string {
	return EditString([]model.Tag{tag}, EditOptions{})
}

func (o EditOptions) allows(namespace string) bool {
	if len(o.FilterNamespaces) > 0 && !containsString(o.FilterNamespaces, namespace) {
		return false
	}
	if len(o.ExcludeNamespaces) > 0 && containsString(o.ExcludeNamespaces, namespace) {
		return false
	}
	return true
}

// quotePart quotes parts containing quoteChars, and parts with leading or
// trailing whitespace, which a separator would otherwise swallow.
func quotePart(part string) (string, bool) {
	if strings.ContainsAny(part, quoteChars) || padded(part) {
		return `"` + part + `"`, true
	}
	return part, false
}

func padded(part string) bool {
	return part != "" && (isSpace(part[0]) || isSpace(part[len(part)-1]))
}

func hasSpace(part string) bool {
	for i := 0; i < len(part); i++ {
		if isSpace(part[i]) {
			return true
		}
	}
	return false
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
