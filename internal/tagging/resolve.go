package tagging

import (
	"github.com/rcliao/tagkit/internal/errors"
	"github.com/rcliao/tagkit/internal/model"
)

// ResolveOptions configures Resolve.
type ResolveOptions struct {
	// Wildcard, when set, is a literal that matches any value when it
	// makes up a whole namespace, name or value. Quoting it ("*") turns
	// it back into a literal.
	Wildcard string

	// DefaultNamespace is applied to tag expressions without a namespace.
	DefaultNamespace string
}

// Resolve turns a reference into either known tag records or a Predicate
// for the store.
//
// Tag expressions are parsed with ParseInput and split with GetTagParts.
// Tags with only a name are batched into Predicate.Names; every other tag
// becomes a Clause. With a wildcard configured, clause fields equal to it
// match anything, which means
//
//	*:cheese      any tag named cheese without a value
//	cheese:*      any tag in the cheese namespace without a value
//	*:cheese=*    any tag named cheese
func Resolve(ref Reference, opts ResolveOptions) (Resolution, error) {
	switch r := ref.(type) {
	case TagRef:
		return Resolution{Tags: []model.Tag{r.Tag}}, nil
	case TagsRef:
		return Resolution{Tags: []model.Tag(r)}, nil
	case IDsRef:
		if len(r) == 0 {
			return Resolution{}, nil
		}
		return Resolution{Predicate: &Predicate{IDs: []int64(r)}}, nil
	case StringRef:
		return resolveStrings([]string{string(r)}, opts), nil
	case StringsRef:
		return resolveStrings([]string(r), opts), nil
	case nil:
		return Resolution{}, errors.Wrap(ErrUnsupportedReference, "nil reference")
	}
	return Resolution{}, errors.Wrapf(ErrUnsupportedReference, "%T", ref)
}

// ResolveInput is shorthand for resolving a single tag expression.
func ResolveInput(input string, opts ResolveOptions) Resolution {
	return resolveStrings([]string{input}, opts)
}

func resolveStrings(inputs []string, opts ResolveOptions) Resolution {
	var keepQuotes []string
	if opts.Wildcard != "" {
		keepQuotes = []string{opts.Wildcard}
	}
	parseOpts := ParseOptions{DefaultNamespace: opts.DefaultNamespace, KeepQuotes: keepQuotes}

	set := make(map[string]struct{})
	for _, input := range inputs {
		for _, tag := range ParseInput(input, parseOpts) {
			set[tag] = struct{}{}
		}
	}

	var names []string
	var clauses []Clause
	for _, s := range sortedKeys(set) {
		t, err := GetTagParts(s, ParseOptions{KeepQuotes: keepQuotes})
		if err != nil {
			continue
		}
		if t.Namespace == "" && t.Value == "" {
			names = append(names, literal(t.Name, opts.Wildcard))
			continue
		}
		clauses = append(clauses, Clause{
			Namespace: wildField(t.Namespace, opts.Wildcard),
			Name:      wildField(t.Name, opts.Wildcard),
			Value:     wildField(t.Value, opts.Wildcard),
		})
	}
	if len(names) == 0 && len(clauses) == 0 {
		return Resolution{}
	}
	return Resolution{Predicate: &Predicate{Names: sortedUnique(names), Clauses: clauses}}
}

func wildField(part, wildcard string) Field {
	if wildcard != "" && part == wildcard {
		return Wild()
	}
	return Exact(literal(part, wildcard))
}

// literal unquotes a quoted wildcard.
func literal(part, wildcard string) string {
	if wildcard != "" && part == `"`+wildcard+`"` {
		return wildcard
	}
	return part
}
