package store

import (
	"context"
	"time"

	"github.com/rcliao/tagkit/internal/errors"
	"github.com/rcliao/tagkit/internal/model"
)

// ExportVersion is the current export format version.
const ExportVersion = 1

// Export is a dump of tags and their associations. Items refer to tags by
// the ids in Tags.
type Export struct {
	Version int                `json:"version" yaml:"version"`
	Tags    []model.Tag        `json:"tags" yaml:"tags"`
	Items   []model.TaggedItem `json:"items" yaml:"items"`
}

// ExportAll returns every tag and association, optionally limited to
// associations with one object type. Tags without associations are
// exported too unless an object type is given.
func (s *SQLiteStore) ExportAll(ctx context.Context, objectType string) (*Export, error) {
	exp := &Export{Version: ExportVersion}

	tagQuery := `SELECT ` + tagColumns + ` FROM tags t ORDER BY t.id`
	var tagArgs []any
	if objectType != "" {
		tagQuery = `SELECT ` + tagColumns + ` FROM tags t
			WHERE t.id IN (SELECT tag_id FROM tagged_items WHERE object_type = ?) ORDER BY t.id`
		tagArgs = append(tagArgs, objectType)
	}
	rows, err := s.db.QueryContext(ctx, tagQuery, tagArgs...)
	if err != nil {
		return nil, err
	}
	if exp.Tags, err = collectTags(rows); err != nil {
		return nil, err
	}

	itemQuery := `SELECT id, tag_id, object_type, object_id, created_at FROM tagged_items`
	var itemArgs []any
	if objectType != "" {
		itemQuery += ` WHERE object_type = ?`
		itemArgs = append(itemArgs, objectType)
	}
	itemQuery += ` ORDER BY object_type, object_id, tag_id`

	rows, err = s.db.QueryContext(ctx, itemQuery, itemArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var it model.TaggedItem
		var createdAt string
		if err := rows.Scan(&it.ID, &it.TagID, &it.Object.Type, &it.Object.ID, &createdAt); err != nil {
			return nil, err
		}
		it.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		exp.Items = append(exp.Items, it)
	}
	return exp, rows.Err()
}

// Import stores the tags and associations of an export. Tags are matched
// by their parts, so ids in the export need not match this store.
// Associations that already exist are skipped. It returns the number of
// associations created.
func (s *SQLiteStore) Import(ctx context.Context, exp *Export) (int, error) {
	if exp == nil {
		return 0, nil
	}
	if exp.Version > ExportVersion {
		return 0, errors.WithHintf(
			errors.NewInvalidRequestError("export version %d", exp.Version),
			"this build reads versions up to %d", ExportVersion)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	ids := make(map[int64]int64, len(exp.Tags))
	for _, t := range exp.Tags {
		if t.Name == "" {
			return 0, errors.NewInvalidRequestError("tag %d has no name", t.ID)
		}
		stored, err := s.getOrCreateTag(ctx, tx, t)
		if err != nil {
			return 0, err
		}
		ids[t.ID] = stored.ID
	}

	imported := 0
	for _, it := range exp.Items {
		tagID, ok := ids[it.TagID]
		if !ok {
			return imported, errors.NewInvalidRequestError("item %s refers to unknown tag %d", it.ID, it.TagID)
		}
		if err := validateObject(it.Object); err != nil {
			return imported, err
		}
		created, err := s.link(ctx, tx, tagID, it.Object, it.ID, it.CreatedAt)
		if err != nil {
			return imported, err
		}
		if created {
			imported++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return imported, nil
}
