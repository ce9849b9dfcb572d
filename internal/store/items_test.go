package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/tagkit/internal/errors"
	"github.com/rcliao/tagkit/internal/model"
	"github.com/rcliao/tagkit/internal/tagging"
)

func tagStrings(tags []model.Tag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = tagging.FormatTag(t)
	}
	return out
}

func TestUpdateTags(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	obj := model.ObjectRef{Type: "parrot", ID: "1"}

	got, err := s.UpdateTags(ctx, obj, "ter bar", UpdateOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"bar", "ter"}, tagStrings(got))

	got, err = s.UpdateTags(ctx, obj, "ter foo", UpdateOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"foo", "ter"}, tagStrings(got))

	// removed tags survive in the tag table
	_, err = s.FindTag(ctx, model.Tag{Name: "bar"})
	require.NoError(t, err)

	got, err = s.UpdateTags(ctx, obj, "", UpdateOptions{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpdateTagsScope(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	obj := model.ObjectRef{Type: "parrot", ID: "1"}

	_, err := s.UpdateTags(ctx, obj, "a:x b:y plain", UpdateOptions{})
	require.NoError(t, err)

	got, err := s.UpdateTags(ctx, obj, "a:z b:q", UpdateOptions{Scope: Scope{Namespaces: []string{"a"}}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a:z"}, tagStrings(got))

	all, err := s.TagsForObject(ctx, obj, Scope{})
	require.NoError(t, err)
	assert.Equal(t, []string{"plain", "a:z", "b:y"}, tagStrings(all))

	got, err = s.UpdateTags(ctx, obj, "c:w", UpdateOptions{Scope: Scope{ExcludeNamespaces: []string{"a"}}})
	require.NoError(t, err)
	assert.Equal(t, []string{"c:w"}, tagStrings(got))

	all, err = s.TagsForObject(ctx, obj, Scope{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a:z", "c:w"}, tagStrings(all))

	n, err := s.ClearTags(ctx, obj, Scope{Namespaces: []string{"c"}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = s.ClearTags(ctx, obj, Scope{})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestUpdateTagsDefaultNamespace(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	obj := model.ObjectRef{Type: "parrot", ID: "1"}
	opts := UpdateOptions{DefaultNamespace: "food"}

	got, err := s.UpdateTags(ctx, obj, "cheese :toast", opts)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, model.Tag{ID: got[0].ID, Name: "toast"}, got[0])
	assert.Equal(t, model.Tag{ID: got[1].ID, Namespace: "food", Name: "cheese"}, got[1])

	edit, err := s.EditStringForObject(ctx, obj, opts)
	require.NoError(t, err)
	assert.Equal(t, ":toast cheese", edit)

	// the edit string submits back to the same tags
	again, err := s.UpdateTags(ctx, obj, edit, opts)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestUpdateTagsUnicode(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	obj := model.ObjectRef{Type: "parrot", ID: "1"}

	got, err := s.UpdateTags(ctx, obj, "ŠĐĆŽćžšđ", UpdateOptions{DefaultNamespace: "你好"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "你好", got[0].Namespace)
	assert.Equal(t, "ŠĐĆŽćžšđ", got[0].Name)

	got, err = s.UpdateTags(ctx, obj, "Foo BAR", UpdateOptions{ForceLowercase: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"bar", "foo"}, tagStrings(got))
}

func TestUpdateTagsLength(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	obj := model.ObjectRef{Type: "parrot", ID: "1"}

	_, err := s.UpdateTags(ctx, obj, "short toolongname", UpdateOptions{Limits: tagging.Limits{Name: 5}})
	require.Error(t, err)
	var partErr *tagging.PartTooLongError
	require.True(t, errors.As(err, &partErr))
	assert.Equal(t, "name", partErr.Part)
	assert.Contains(t, errors.GetAllHints(err), "Each tag's name may be no more than 5 characters long.")

	// nothing was stored
	tags, err := s.TagsForObject(ctx, obj, Scope{})
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestAddRemoveTag(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	obj := model.ObjectRef{Type: "parrot", ID: "1"}

	added, err := s.AddTag(ctx, obj, "spam:egg=ham", UpdateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "spam:egg=ham", tagging.FormatTag(*added))

	// adding twice keeps one association
	_, err = s.AddTag(ctx, obj, "spam:egg=ham", UpdateOptions{})
	require.NoError(t, err)
	tags, err := s.TagsForObject(ctx, obj, Scope{})
	require.NoError(t, err)
	assert.Len(t, tags, 1)

	_, err = s.AddTag(ctx, obj, "foo bar", UpdateOptions{})
	assert.True(t, errors.Is(err, tagging.ErrMultipleTags))
	_, err = s.AddTag(ctx, obj, "  ", UpdateOptions{})
	assert.True(t, errors.Is(err, tagging.ErrNoTags))

	require.NoError(t, s.RemoveTag(ctx, obj, "spam:egg=ham", UpdateOptions{}))
	err = s.RemoveTag(ctx, obj, "spam:egg=ham", UpdateOptions{})
	assert.True(t, errors.IsNotFoundError(err))
	err = s.RemoveTag(ctx, obj, "never", UpdateOptions{})
	assert.True(t, errors.IsNotFoundError(err))

	_, err = s.AddTag(ctx, model.ObjectRef{ID: "1"}, "foo", UpdateOptions{})
	assert.True(t, errors.IsInvalidRequestError(err))
}
