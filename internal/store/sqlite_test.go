package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/tagkit/internal/errors"
	"github.com/rcliao/tagkit/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	require.NoError(t, err, "create store")
	t.Cleanup(func() { s.Close() })
	return s
}

func createTags(t *testing.T, s *SQLiteStore, tags ...model.Tag) []model.Tag {
	t.Helper()
	ctx := context.Background()
	out := make([]model.Tag, len(tags))
	for i, tag := range tags {
		stored, err := s.getOrCreateTag(ctx, s.db, tag)
		require.NoError(t, err)
		out[i] = stored
	}
	return out
}

func TestSaveAssociationsAndFindTag(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	obj := model.ObjectRef{Type: "parrot", ID: "1"}

	err := s.SaveAssociations(ctx, obj, []model.Tag{
		{Name: "bar"},
		{Namespace: "food", Name: "egg", Value: "tasty"},
	})
	require.NoError(t, err)
	// saving again is a no-op
	require.NoError(t, s.SaveAssociations(ctx, obj, []model.Tag{{Name: "bar"}}))

	got, err := s.FindTag(ctx, model.Tag{Namespace: "food", Name: "egg", Value: "tasty"})
	require.NoError(t, err)
	assert.NotZero(t, got.ID)
	assert.Equal(t, "egg", got.Name)

	byID, err := s.GetTagByID(ctx, got.ID)
	require.NoError(t, err)
	assert.Equal(t, *got, *byID)

	tags, err := s.TagsForObject(ctx, obj, Scope{})
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "bar", tags[0].Name)

	_, err = s.FindTag(ctx, model.Tag{Name: "egg"})
	assert.True(t, errors.IsNotFoundError(err))
	_, err = s.GetTagByID(ctx, 999)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestSaveAssociationsValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.SaveAssociations(ctx, model.ObjectRef{Type: "parrot"}, []model.Tag{{Name: "bar"}})
	assert.True(t, errors.IsInvalidRequestError(err))
	assert.NotEmpty(t, errors.GetAllHints(err))

	err = s.SaveAssociations(ctx, model.ObjectRef{Type: "parrot", ID: "1"}, []model.Tag{{Namespace: "food"}})
	assert.True(t, errors.IsInvalidRequestError(err))
}

func TestGetTag(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	stored := createTags(t, s,
		model.Tag{Name: "foo"},
		model.Tag{Name: "foo:bar"},
		model.Tag{Name: "bar=baz"},
		model.Tag{Name: "bar", Value: "baz"},
		model.Tag{Namespace: "foo", Name: "bar"},
		model.Tag{Namespace: "foo", Name: "bar", Value: "baz"},
		model.Tag{Namespace: "one", Name: "two three", Value: "four"},
		model.Tag{Namespace: ":=", Name: ":=", Value: ":="},
	)

	tests := []struct {
		input string
		want  model.Tag
	}{
		{"foo", stored[0]},
		{`"foo:bar"`, stored[1]},
		{`"bar=baz"`, stored[2]},
		{"bar=baz", stored[3]},
		{"foo:bar", stored[4]},
		{"foo:bar=baz", stored[5]},
		{`"foo":"bar"="baz"`, stored[5]},
		{`one:"two three"=four`, stored[6]},
		{`":=":":="=":="`, stored[7]},
	}
	for _, tt := range tests {
		got, err := s.GetTag(ctx, tt.input, "")
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, *got, "input %q", tt.input)
	}

	got, err := s.GetTag(ctx, "bar", "foo")
	require.NoError(t, err)
	assert.Equal(t, stored[4], *got)

	got, err = s.GetTag(ctx, ":foo", "foo")
	require.NoError(t, err)
	assert.Equal(t, stored[0], *got)

	_, err = s.GetTag(ctx, "mouse", "")
	assert.True(t, errors.IsNotFoundError(err))

	_, err = s.GetTag(ctx, "foo bar", "")
	assert.Error(t, err)
}

func TestTagIDsAreStable(t *testing.T) {
	s := newTestStore(t)
	first := createTags(t, s, model.Tag{Name: "foo"}, model.Tag{Namespace: "a", Name: "foo"})
	again := createTags(t, s, model.Tag{Name: "foo"})
	assert.Equal(t, first[0].ID, again[0].ID)
	assert.NotEqual(t, first[0].ID, first[1].ID)
}
