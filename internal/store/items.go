package store

import (
	"context"
	"strings"
	"time"

	"github.com/rcliao/tagkit/internal/errors"
	"github.com/rcliao/tagkit/internal/model"
	"github.com/rcliao/tagkit/internal/tagging"
)

// prepareTags turns user input into validated tag parts. With a scope the
// input is first rendered through EditString so tags outside the scope
// are dropped.
func prepareTags(input string, opts UpdateOptions) ([]model.Tag, error) {
	if opts.ForceLowercase {
		input = strings.ToLower(input)
	}
	if !opts.Scope.IsZero() {
		input = tagging.EditStringFromInput(input, opts.editOptions())
	}
	limits := opts.Limits.Clamp()

	var tags []model.Tag
	for _, s := range tagging.ParseInput(input, tagging.ParseOptions{DefaultNamespace: opts.DefaultNamespace}) {
		t, err := tagging.GetTagParts(s, tagging.ParseOptions{})
		if err != nil {
			return nil, err
		}
		if err := tagging.CheckLength(t, limits); err != nil {
			return nil, errors.WithHint(errors.Wrapf(err, "%s", s), tagging.ValidationMessage(err))
		}
		tags = append(tags, t)
	}
	return tags, nil
}

func prepareSingle(input string, opts UpdateOptions) (model.Tag, error) {
	if opts.ForceLowercase {
		input = strings.ToLower(input)
	}
	s, err := tagging.ParseSingle(input, tagging.ParseOptions{DefaultNamespace: opts.DefaultNamespace})
	if err != nil {
		return model.Tag{}, err
	}
	t, err := tagging.GetTagParts(s, tagging.ParseOptions{})
	if err != nil {
		return model.Tag{}, err
	}
	if err := tagging.CheckLength(t, opts.Limits.Clamp()); err != nil {
		return model.Tag{}, errors.WithHint(errors.Wrapf(err, "%s", s), tagging.ValidationMessage(err))
	}
	return t, nil
}

// UpdateTags makes input the complete set of tags of obj within
// opts.Scope. Tags outside the scope are untouched. Empty input clears
// the scope.
func (s *SQLiteStore) UpdateTags(ctx context.Context, obj model.ObjectRef, input string, opts UpdateOptions) ([]model.Tag, error) {
	if err := validateObject(obj); err != nil {
		return nil, err
	}
	wanted, err := prepareTags(input, opts)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	current, err := tagsForObject(ctx, tx, obj, opts.Scope)
	if err != nil {
		return nil, err
	}

	removed := 0
	for _, t := range current {
		if containsParts(wanted, t) {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM tagged_items WHERE tag_id = ? AND object_type = ? AND object_id = ?`,
			t.ID, obj.Type, obj.ID); err != nil {
			return nil, errors.Wrap(err, "delete tagged item")
		}
		removed++
	}

	added := 0
	for _, t := range wanted {
		if containsParts(current, t) {
			continue
		}
		stored, err := s.getOrCreateTag(ctx, tx, t)
		if err != nil {
			return nil, err
		}
		if _, err := s.link(ctx, tx, stored.ID, obj, "", time.Time{}); err != nil {
			return nil, err
		}
		added++
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	s.log.Debugw("updated tags", "object", obj.Type+"/"+obj.ID, "added", added, "removed", removed)

	return s.TagsForObject(ctx, obj, opts.Scope)
}

// AddTag tags obj with the single tag named by input.
func (s *SQLiteStore) AddTag(ctx context.Context, obj model.ObjectRef, input string, opts UpdateOptions) (*model.Tag, error) {
	if err := validateObject(obj); err != nil {
		return nil, err
	}
	t, err := prepareSingle(input, opts)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	stored, err := s.getOrCreateTag(ctx, tx, t)
	if err != nil {
		return nil, err
	}
	if _, err := s.link(ctx, tx, stored.ID, obj, "", time.Time{}); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &stored, nil
}

// RemoveTag removes the single tag named by input from obj. The tag itself
// is kept.
func (s *SQLiteStore) RemoveTag(ctx context.Context, obj model.ObjectRef, input string, opts UpdateOptions) error {
	if err := validateObject(obj); err != nil {
		return err
	}
	t, err := prepareSingle(input, opts)
	if err != nil {
		return err
	}
	stored, err := s.FindTag(ctx, t)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM tagged_items WHERE tag_id = ? AND object_type = ? AND object_id = ?`,
		stored.ID, obj.Type, obj.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NewNotFoundError("%s/%s is not tagged with %s", obj.Type, obj.ID, tagging.FormatTag(t))
	}
	return nil
}

// ClearTags removes every tag of obj within scope and returns how many
// associations were deleted.
func (s *SQLiteStore) ClearTags(ctx context.Context, obj model.ObjectRef, scope Scope) (int, error) {
	if err := validateObject(obj); err != nil {
		return 0, err
	}
	where, args := scopeSQL(scope)
	args = append([]any{obj.Type, obj.ID}, args...)
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM tagged_items WHERE object_type = ? AND object_id = ?
		 AND tag_id IN (SELECT t.id FROM tags t WHERE `+where+`)`, args...)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// TagsForObject returns the tags of obj within scope.
func (s *SQLiteStore) TagsForObject(ctx context.Context, obj model.ObjectRef, scope Scope) ([]model.Tag, error) {
	return tagsForObject(ctx, s.db, obj, scope)
}

func tagsForObject(ctx context.Context, q querier, obj model.ObjectRef, scope Scope) ([]model.Tag, error) {
	where, args := scopeSQL(scope)
	args = append([]any{obj.Type, obj.ID}, args...)
	rows, err := q.QueryContext(ctx,
		`SELECT `+tagColumns+` FROM tags t
		 JOIN tagged_items i ON i.tag_id = t.id
		 WHERE i.object_type = ? AND i.object_id = ? AND `+where+`
		 ORDER BY t.namespace, t.name, t.value`, args...)
	if err != nil {
		return nil, err
	}
	return collectTags(rows)
}

// EditStringForObject renders the tags of obj as editable input.
func (s *SQLiteStore) EditStringForObject(ctx context.Context, obj model.ObjectRef, opts UpdateOptions) (string, error) {
	tags, err := s.TagsForObject(ctx, obj, opts.Scope)
	if err != nil {
		return "", err
	}
	return tagging.EditString(tags, opts.editOptions()), nil
}

func containsParts(tags []model.Tag, t model.Tag) bool {
	for _, o := range tags {
		if o.SameParts(t) {
			return true
		}
	}
	return false
}
