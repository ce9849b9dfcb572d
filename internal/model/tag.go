// Package model defines the core tagging data types.
package model

import "time"

// Tag is a structured tag. An empty Namespace or Value means the part is
// absent; Name is never empty for a stored tag.
type Tag struct {
	ID        int64  `json:"id,omitempty" yaml:"id,omitempty"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Name      string `json:"name" yaml:"name"`
	Value     string `json:"value,omitempty" yaml:"value,omitempty"`
}

// SameParts reports whether both tags have the same (namespace, name, value)
// triple. IDs are ignored.
func (t Tag) SameParts(o Tag) bool {
	return t.Namespace == o.Namespace && t.Name == o.Name && t.Value == o.Value
}

// TagCount is a tag with its usage count and, once a cloud has been
// calculated, its font size bucket.
type TagCount struct {
	Tag
	Count    int `json:"count" yaml:"count"`
	FontSize int `json:"font_size,omitempty" yaml:"font_size,omitempty"`
}

// ObjectRef identifies an arbitrary tagged object.
type ObjectRef struct {
	Type string `json:"type" yaml:"type"`
	ID   string `json:"id" yaml:"id"`
}

// TaggedItem associates a tag with an object.
type TaggedItem struct {
	ID        string    `json:"id" yaml:"id"`
	TagID     int64     `json:"tag_id" yaml:"tag_id"`
	Object    ObjectRef `json:"object" yaml:"object"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
