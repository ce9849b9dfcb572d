package tagging

import (
	"fmt"

	"github.com/rcliao/tagkit/internal/errors"
)

var (
	// ErrNoTags is returned when an input that must name a tag names none.
	ErrNoTags = errors.New("no tags were given")

	// ErrMultipleTags is returned when an input that must name exactly one
	// tag names several.
	ErrMultipleTags = errors.New("multiple tags were given")

	// ErrMixedReferenceKinds is returned for reference lists that mix tag
	// names, tag records and tag ids.
	ErrMixedReferenceKinds = errors.New("if a list of tags is provided, they must all be tag names, tag records or tag ids")

	// ErrUnsupportedReference is returned for reference values of an
	// unknown type.
	ErrUnsupportedReference = errors.New("the tag input given was invalid")

	// ErrMalformedTag is returned by GetTagParts for strings that were not
	// produced by ParseInput.
	ErrMalformedTag = errors.New("malformed tag string")

	// ErrNonPositiveCount is returned by CalculateCloud for a logarithmic
	// cloud over a tag used fewer than once.
	ErrNonPositiveCount = errors.New("logarithmic cloud needs counts of at least 1")
)

// PartTooLongError reports a namespace, name or value over its limit.
type PartTooLongError struct {
	Part  string
	Limit int
}

func (e *PartTooLongError) Error() string {
	return fmt.Sprintf("tag's %s part is too long (limit %d)", e.Part, e.Limit)
}

// TagTooLongError reports a tag whose parts together exceed the limit.
type TagTooLongError struct {
	Limit int
}

func (e *TagTooLongError) Error() string {
	return fmt.Sprintf("tag is too long (limit %d)", e.Limit)
}

// UnknownDistributionError reports an unsupported cloud distribution.
type UnknownDistributionError struct {
	Name string
}

func (e *UnknownDistributionError) Error() string {
	return fmt.Sprintf("invalid distribution algorithm specified: %s", e.Name)
}

// ValidationMessage renders err as the message shown to a user editing
// tags. Errors that are not validation failures render unchanged.
func ValidationMessage(err error) string {
	var part *PartTooLongError
	if errors.As(err, &part) {
		return fmt.Sprintf("Each tag's %s may be no more than %d characters long.", part.Part, part.Limit)
	}
	var tag *TagTooLongError
	if errors.As(err, &tag) {
		return fmt.Sprintf("Each tag may be no more than %d characters long.", tag.Limit)
	}
	return err.Error()
}
