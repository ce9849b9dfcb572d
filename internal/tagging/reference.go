package tagging

import (
	"github.com/rcliao/tagkit/internal/errors"
	"github.com/rcliao/tagkit/internal/model"
)

// Reference is anything Resolve accepts as a way of naming tags.
type Reference interface {
	isReference()
}

// TagRef names one known tag record.
type TagRef struct {
	Tag model.Tag
}

// TagsRef is a collection of tag records that passes through unresolved.
type TagsRef []model.Tag

// IDsRef names tags by their store ids.
type IDsRef []int64

// StringsRef is a list of tag expressions, each parsed with ParseInput.
type StringsRef []string

// StringRef is a single tag expression that may name several tags.
type StringRef string

func (TagRef) isReference()     {}
func (TagsRef) isReference()    {}
func (IDsRef) isReference()     {}
func (StringsRef) isReference() {}
func (StringRef) isReference()  {}

type refKind int

const (
	kindString refKind = iota + 1
	kindTag
	kindID
)

// NewReference builds a Reference from loosely typed input. A single item
// may be a model.Tag, a string, or a slice of strings, tags or ids. Several
// items must all be of the same kind: strings, tags or integer ids.
func NewReference(items ...any) (Reference, error) {
	if len(items) == 1 {
		return singleReference(items[0])
	}
	if len(items) == 0 {
		return TagsRef{}, nil
	}

	var (
		kind refKind
		strs StringsRef
		tags TagsRef
		ids  IDsRef
	)
	for _, item := range items {
		k, err := classify(item)
		if err != nil {
			return nil, err
		}
		if kind != 0 && k != kind {
			return nil, ErrMixedReferenceKinds
		}
		kind = k
		switch v := item.(type) {
		case string:
			strs = append(strs, v)
		case model.Tag:
			tags = append(tags, v)
		case *model.Tag:
			tags = append(tags, *v)
		default:
			id, _ := toID(item)
			ids = append(ids, id)
		}
	}
	switch kind {
	case kindString:
		return strs, nil
	case kindTag:
		return tags, nil
	default:
		return ids, nil
	}
}

func singleReference(item any) (Reference, error) {
	switch v := item.(type) {
	case Reference:
		return v, nil
	case model.Tag:
		return TagRef{Tag: v}, nil
	case *model.Tag:
		if v == nil {
			return nil, errors.Wrap(ErrUnsupportedReference, "nil tag")
		}
		return TagRef{Tag: *v}, nil
	case string:
		return StringRef(v), nil
	case []string:
		return StringsRef(v), nil
	case []model.Tag:
		return TagsRef(v), nil
	case []int64:
		return IDsRef(v), nil
	case []int:
		ids := make(IDsRef, len(v))
		for i, id := range v {
			ids[i] = int64(id)
		}
		return ids, nil
	}
	return nil, errors.Wrapf(ErrUnsupportedReference, "%T", item)
}

func classify(item any) (refKind, error) {
	switch v := item.(type) {
	case string:
		return kindString, nil
	case model.Tag:
		return kindTag, nil
	case *model.Tag:
		if v != nil {
			return kindTag, nil
		}
	}
	if _, ok := toID(item); ok {
		return kindID, nil
	}
	return 0, errors.Wrapf(ErrUnsupportedReference, "%T", item)
}

func toID(item any) (int64, bool) {
	switch v := item.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint32:
		return int64(v), true
	}
	return 0, false
}
