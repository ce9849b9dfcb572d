package tagging

import (
	"strconv"
	"strings"

	"github.com/rcliao/tagkit/internal/model"
)

// Field constrains one tag part. An Any field matches every value.
type Field struct {
	Any   bool   `json:"any,omitempty" yaml:"any,omitempty"`
	Value string `json:"value" yaml:"value"`
}

// Exact returns a field matching exactly v. The empty string matches an
// absent part.
func Exact(v string) Field { return Field{Value: v} }

// Wild returns a field matching any value.
func Wild() Field { return Field{Any: true} }

func (f Field) matches(v string) bool {
	return f.Any || f.Value == v
}

func (f Field) String() string {
	if f.Any {
		return "*"
	}
	return f.Value
}

// Clause matches a tag when all three fields match.
type Clause struct {
	Namespace Field `json:"namespace" yaml:"namespace"`
	Name      Field `json:"name" yaml:"name"`
	Value     Field `json:"value" yaml:"value"`
}

// Match reports whether t satisfies the clause.
func (c Clause) Match(t model.Tag) bool {
	return c.Namespace.matches(t.Namespace) && c.Name.matches(t.Name) && c.Value.matches(t.Value)
}

// Predicate is a disjunction over tags: a tag matches when its id is in
// IDs, or when it has no namespace and no value and its name is in Names,
// or when it matches any of the Clauses.
type Predicate struct {
	IDs     []int64  `json:"ids,omitempty" yaml:"ids,omitempty"`
	Names   []string `json:"names,omitempty" yaml:"names,omitempty"`
	Clauses []Clause `json:"clauses,omitempty" yaml:"clauses,omitempty"`
}

// Empty reports whether p can match nothing.
func (p *Predicate) Empty() bool {
	return p == nil || (len(p.IDs) == 0 && len(p.Names) == 0 && len(p.Clauses) == 0)
}

// Match evaluates p against a single tag.
func (p *Predicate) Match(t model.Tag) bool {
	if p == nil {
		return false
	}
	for _, id := range p.IDs {
		if t.ID == id {
			return true
		}
	}
	if t.Namespace == "" && t.Value == "" {
		for _, name := range p.Names {
			if t.Name == name {
				return true
			}
		}
	}
	for _, c := range p.Clauses {
		if c.Match(t) {
			return true
		}
	}
	return false
}

func (p *Predicate) String() string {
	if p.Empty() {
		return "<none>"
	}
	var terms []string
	if len(p.IDs) > 0 {
		ids := make([]string, len(p.IDs))
		for i, id := range p.IDs {
			ids[i] = strconv.FormatInt(id, 10)
		}
		terms = append(terms, "id in ("+strings.Join(ids, ", ")+")")
	}
	if len(p.Names) > 0 {
		terms = append(terms, "name in ("+strings.Join(p.Names, ", ")+")")
	}
	for _, c := range p.Clauses {
		terms = append(terms, "("+c.Namespace.String()+":"+c.Name.String()+"="+c.Value.String()+")")
	}
	return strings.Join(terms, " or ")
}

// Resolution is the result of Resolve: either a set of known tag records
// or a predicate for the store to evaluate. When both are nil nothing
// matches.
type Resolution struct {
	Tags      []model.Tag `json:"tags,omitempty" yaml:"tags,omitempty"`
	Predicate *Predicate  `json:"predicate,omitempty" yaml:"predicate,omitempty"`
}

// Empty reports whether r matches no tag.
func (r Resolution) Empty() bool {
	return len(r.Tags) == 0 && r.Predicate.Empty()
}

// Filter returns the tags in candidates matched by r, in candidate
// order. Known tag records match by id when both ids are set and by their
// parts otherwise.
func (r Resolution) Filter(candidates []model.Tag) []model.Tag {
	var out []model.Tag
	for _, t := range candidates {
		if r.contains(t) {
			out = append(out, t)
		}
	}
	return out
}

func (r Resolution) contains(t model.Tag) bool {
	if r.Predicate != nil {
		return r.Predicate.Match(t)
	}
	for _, known := range r.Tags {
		if known.ID != 0 && t.ID != 0 {
			if known.ID == t.ID {
				return true
			}
			continue
		}
		if known.SameParts(t) {
			return true
		}
	}
	return false
}

func sortedUnique(names []string) []string {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return sortedKeys(set)
}
