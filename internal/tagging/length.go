package tagging

import (
	"unicode/utf8"

	"github.com/rcliao/tagkit/internal/errors"
	"github.com/rcliao/tagkit/internal/model"
)

// MaxLength is the upper bound for every configured length limit.
const MaxLength = 50

// Limits holds the maximum lengths, in characters, of a tag and its parts.
// The ':' and '=' delimiters are not counted.
type Limits struct {
	Tag       int `json:"tag" yaml:"tag"`
	Namespace int `json:"namespace" yaml:"namespace"`
	Name      int `json:"name" yaml:"name"`
	Value     int `json:"value" yaml:"value"`
}

// DefaultLimits returns MaxLength for every limit.
func DefaultLimits() Limits {
	return Limits{Tag: MaxLength, Namespace: MaxLength, Name: MaxLength, Value: MaxLength}
}

// Clamp returns l with every limit forced into 1..MaxLength. Unset limits
// become MaxLength.
func (l Limits) Clamp() Limits {
	clamp := func(n int) int {
		if n <= 0 || n > MaxLength {
			return MaxLength
		}
		return n
	}
	return Limits{
		Tag:       clamp(l.Tag),
		Namespace: clamp(l.Namespace),
		Name:      clamp(l.Name),
		Value:     clamp(l.Value),
	}
}

// CheckLength validates the parts of t against limits. The namespace, name
// and value are checked in that order before the total, and the first
// violation is returned as a *PartTooLongError or *TagTooLongError.
func CheckLength(t model.Tag, limits Limits) error {
	nsLen := utf8.RuneCountInString(t.Namespace)
	nameLen := utf8.RuneCountInString(t.Name)
	valueLen := utf8.RuneCountInString(t.Value)

	switch {
	case nsLen > limits.Namespace:
		return &PartTooLongError{Part: "namespace", Limit: limits.Namespace}
	case nameLen > limits.Name:
		return &PartTooLongError{Part: "name", Limit: limits.Name}
	case valueLen > limits.Value:
		return &PartTooLongError{Part: "value", Limit: limits.Value}
	case nsLen+nameLen+valueLen > limits.Tag:
		return &TagTooLongError{Limit: limits.Tag}
	}
	return nil
}

// CheckInput parses a raw tag expression and checks every tag in it.
func CheckInput(input string, opts ParseOptions, limits Limits) error {
	for _, s := range ParseInput(input, opts) {
		t, err := GetTagParts(s, ParseOptions{KeepQuotes: opts.KeepQuotes})
		if err != nil {
			return err
		}
		if err := CheckLength(t, limits); err != nil {
			return errors.Wrapf(err, "%s", s)
		}
	}
	return nil
}
