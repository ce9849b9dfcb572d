package store

import (
	"context"

	"github.com/rcliao/tagkit/internal/model"
	"github.com/rcliao/tagkit/internal/tagging"
)

// Related returns the tags found on objects that carry every tag matched
// by res, excluding those tags, most frequent first.
func (s *SQLiteStore) Related(ctx context.Context, res tagging.Resolution, p RelatedParams) ([]model.TagCount, error) {
	ids, err := s.tagIDs(ctx, res)
	if err != nil || len(ids) == 0 {
		return nil, err
	}

	sub := `SELECT object_type, object_id FROM tagged_items WHERE tag_id IN (` + placeholders(len(ids)) + `)`
	args := int64Args(ids)
	if p.ObjectType != "" {
		sub += ` AND object_type = ?`
		args = append(args, p.ObjectType)
	}
	sub += ` GROUP BY object_type, object_id HAVING COUNT(DISTINCT tag_id) = ?`
	args = append(args, len(ids))

	query := `SELECT ` + tagColumns + `, COUNT(*) AS cnt
		FROM tagged_items i
		JOIN tags t ON t.id = i.tag_id
		JOIN (` + sub + `) o ON o.object_type = i.object_type AND o.object_id = i.object_id
		WHERE t.id NOT IN (` + placeholders(len(ids)) + `)
		GROUP BY t.id`
	args = append(args, int64Args(ids)...)
	if p.MinCount > 1 {
		query += ` HAVING COUNT(*) >= ?`
		args = append(args, p.MinCount)
	}
	query += ` ORDER BY cnt DESC, t.namespace, t.name, t.value`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectCounts(rows)
}

// ObjectsWithAll returns the objects tagged with every tag matched by res.
func (s *SQLiteStore) ObjectsWithAll(ctx context.Context, res tagging.Resolution, objectType string) ([]model.ObjectRef, error) {
	return s.objectsWith(ctx, res, objectType, true)
}

// ObjectsWithAny returns the objects tagged with at least one tag matched
// by res.
func (s *SQLiteStore) ObjectsWithAny(ctx context.Context, res tagging.Resolution, objectType string) ([]model.ObjectRef, error) {
	return s.objectsWith(ctx, res, objectType, false)
}

func (s *SQLiteStore) objectsWith(ctx context.Context, res tagging.Resolution, objectType string, all bool) ([]model.ObjectRef, error) {
	ids, err := s.tagIDs(ctx, res)
	if err != nil || len(ids) == 0 {
		return nil, err
	}

	query := `SELECT object_type, object_id FROM tagged_items WHERE tag_id IN (` + placeholders(len(ids)) + `)`
	args := int64Args(ids)
	if objectType != "" {
		query += ` AND object_type = ?`
		args = append(args, objectType)
	}
	query += ` GROUP BY object_type, object_id`
	if all {
		query += ` HAVING COUNT(DISTINCT tag_id) = ?`
		args = append(args, len(ids))
	}
	query += ` ORDER BY object_type, object_id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var objects []model.ObjectRef
	for rows.Next() {
		var o model.ObjectRef
		if err := rows.Scan(&o.Type, &o.ID); err != nil {
			return nil, err
		}
		objects = append(objects, o)
	}
	return objects, rows.Err()
}

// RelatedObjects returns objects sharing tags with obj, those sharing the
// most tags first. A limit of zero or less returns every related object.
func (s *SQLiteStore) RelatedObjects(ctx context.Context, obj model.ObjectRef, objectType string, limit int) ([]RelatedObject, error) {
	if err := validateObject(obj); err != nil {
		return nil, err
	}
	query := `SELECT i.object_type, i.object_id, COUNT(*) AS shared
		FROM tagged_items i
		WHERE i.tag_id IN (SELECT tag_id FROM tagged_items WHERE object_type = ? AND object_id = ?)
		  AND NOT (i.object_type = ? AND i.object_id = ?)`
	args := []any{obj.Type, obj.ID, obj.Type, obj.ID}
	if objectType != "" {
		query += ` AND i.object_type = ?`
		args = append(args, objectType)
	}
	query += ` GROUP BY i.object_type, i.object_id ORDER BY shared DESC, i.object_type, i.object_id`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var related []RelatedObject
	for rows.Next() {
		var r RelatedObject
		if err := rows.Scan(&r.Object.Type, &r.Object.ID, &r.Shared); err != nil {
			return nil, err
		}
		related = append(related, r)
	}
	return related, rows.Err()
}
