package tagging

import (
	"regexp"

	"github.com/rcliao/tagkit/internal/errors"
	"github.com/rcliao/tagkit/internal/model"
)

var tagPartsRE = regexp.MustCompile(`^(?P<namespace>(?:"[^"]+"|[^:="]+)?:)?(?P<name>"[^"]+"|[^="]+)(?P<value>=(?:"[^"]+"|[^"]+)?)?$`)

// GetTagParts splits a canonical tag string, as returned by ParseInput,
// into its namespace, name and value. One layer of quotes is removed from
// each part unless the unquoted content is in opts.KeepQuotes.
//
// opts.DefaultNamespace is used only when the tag has no ':' prefix at
// all; ":name" keeps an empty namespace.
func GetTagParts(tag string, opts ParseOptions) (model.Tag, error) {
	m := tagPartsRE.FindStringSubmatchIndex(tag)
	if m == nil {
		return model.Tag{}, errors.Wrapf(ErrMalformedTag, "%q", tag)
	}
	group := func(name string) (string, bool) {
		i := tagPartsRE.SubexpIndex(name)
		if m[2*i] < 0 {
			return "", false
		}
		return tag[m[2*i]:m[2*i+1]], true
	}

	var t model.Tag
	if ns, ok := group("namespace"); ok {
		t.Namespace = unquotePart(ns[:len(ns)-1], opts.KeepQuotes)
	} else {
		t.Namespace = opts.DefaultNamespace
	}
	name, _ := group("name")
	t.Name = unquotePart(name, opts.KeepQuotes)
	if v, ok := group("value"); ok {
		t.Value = unquotePart(v[1:], opts.KeepQuotes)
	}
	return t, nil
}

func unquotePart(part string, keepQuotes []string) string {
	if len(part) < 2 || part[0] != '"' || part[len(part)-1] != '"' {
		return part
	}
	inner := part[1 : len(part)-1]
	if containsString(keepQuotes, inner) {
		return part
	}
	return inner
}
