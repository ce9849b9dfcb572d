// Package store provides the tag storage interface and SQLite implementation.
package store

import (
	"context"

	"github.com/rcliao/tagkit/internal/model"
	"github.com/rcliao/tagkit/internal/tagging"
)

// Scope limits an operation to some namespaces. The empty string stands for
// tags without a namespace. A zero Scope covers every tag.
type Scope struct {
	Namespaces        []string
	ExcludeNamespaces []string
}

// IsZero reports whether the scope covers every tag.
func (s Scope) IsZero() bool {
	return len(s.Namespaces) == 0 && len(s.ExcludeNamespaces) == 0
}

// UpdateOptions controls how tag input for an object is interpreted.
type UpdateOptions struct {
	DefaultNamespace string
	Scope            Scope
	ForceLowercase   bool
	Limits           tagging.Limits // zero limits mean tagging.MaxLength
}

func (o UpdateOptions) editOptions() tagging.EditOptions {
	return tagging.EditOptions{
		DefaultNamespace:  o.DefaultNamespace,
		FilterNamespaces:  o.Scope.Namespaces,
		ExcludeNamespaces: o.Scope.ExcludeNamespaces,
	}
}

// UsageParams holds parameters for tag usage counts.
type UsageParams struct {
	ObjectType string // empty counts every object type
	MinCount   int
}

// CloudParams holds parameters for a tag cloud.
type CloudParams struct {
	ObjectType   string
	MinCount     int
	Steps        int
	Distribution tagging.Distribution
}

// RelatedParams holds parameters for related tag lookups.
type RelatedParams struct {
	ObjectType string
	MinCount   int
}

// RelatedObject is an object sharing tags with another object.
type RelatedObject struct {
	Object model.ObjectRef `json:"object" yaml:"object"`
	Shared int             `json:"shared" yaml:"shared"`
}

// Store defines the tag storage interface.
type Store interface {
	// FindTag looks up a tag by its parts.
	FindTag(ctx context.Context, t model.Tag) (*model.Tag, error)

	// FindTags returns the stored tags matched by a resolution.
	FindTags(ctx context.Context, res tagging.Resolution) ([]model.Tag, error)

	// SaveAssociations tags obj with every tag, creating missing tags.
	SaveAssociations(ctx context.Context, obj model.ObjectRef, tags []model.Tag) error

	// GetTag parses input naming exactly one tag and looks it up.
	GetTag(ctx context.Context, input, defaultNamespace string) (*model.Tag, error)
	GetTagByID(ctx context.Context, id int64) (*model.Tag, error)

	// ResolveTags resolves a reference and returns the matching tags.
	ResolveTags(ctx context.Context, ref tagging.Reference, opts tagging.ResolveOptions) ([]model.Tag, error)

	// UpdateTags replaces the tags of obj within opts.Scope by input.
	UpdateTags(ctx context.Context, obj model.ObjectRef, input string, opts UpdateOptions) ([]model.Tag, error)
	AddTag(ctx context.Context, obj model.ObjectRef, input string, opts UpdateOptions) (*model.Tag, error)
	RemoveTag(ctx context.Context, obj model.ObjectRef, input string, opts UpdateOptions) error
	ClearTags(ctx context.Context, obj model.ObjectRef, scope Scope) (int, error)

	TagsForObject(ctx context.Context, obj model.ObjectRef, scope Scope) ([]model.Tag, error)
	EditStringForObject(ctx context.Context, obj model.ObjectRef, opts UpdateOptions) (string, error)

	Usage(ctx context.Context, p UsageParams) ([]model.TagCount, error)
	Cloud(ctx context.Context, p CloudParams) ([]model.TagCount, error)
	Related(ctx context.Context, res tagging.Resolution, p RelatedParams) ([]model.TagCount, error)

	ObjectsWithAll(ctx context.Context, res tagging.Resolution, objectType string) ([]model.ObjectRef, error)
	ObjectsWithAny(ctx context.Context, res tagging.Resolution, objectType string) ([]model.ObjectRef, error)
	RelatedObjects(ctx context.Context, obj model.ObjectRef, objectType string, limit int) ([]RelatedObject, error)

	ListNamespaces(ctx context.Context) ([]NamespaceStats, error)
	Stats(ctx context.Context, dbPath string) (*Stats, error)
	ExportAll(ctx context.Context, objectType string) (*Export, error)
	Import(ctx context.Context, exp *Export) (int, error)

	// Close closes the store.
	Close() error
}

var _ Store = (*SQLiteStore)(nil)
