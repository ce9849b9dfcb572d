package store

import (
	"context"
	"database/sql"

	"github.com/rcliao/tagkit/internal/model"
	"github.com/rcliao/tagkit/internal/tagging"
)

// Usage returns every tag in use with the number of objects carrying it.
func (s *SQLiteStore) Usage(ctx context.Context, p UsageParams) ([]model.TagCount, error) {
	query := `SELECT ` + tagColumns + `, COUNT(*) AS cnt
		FROM tags t JOIN tagged_items i ON i.tag_id = t.id`
	var args []any
	if p.ObjectType != "" {
		query += ` WHERE i.object_type = ?`
		args = append(args, p.ObjectType)
	}
	query += ` GROUP BY t.id`
	if p.MinCount > 1 {
		query += ` HAVING COUNT(*) >= ?`
		args = append(args, p.MinCount)
	}
	query += ` ORDER BY t.namespace, t.name, t.value`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectCounts(rows)
}

// Cloud returns the tag usage of Usage with font sizes calculated.
func (s *SQLiteStore) Cloud(ctx context.Context, p CloudParams) ([]model.TagCount, error) {
	counts, err := s.Usage(ctx, UsageParams{ObjectType: p.ObjectType, MinCount: p.MinCount})
	if err != nil {
		return nil, err
	}
	dist := p.Distribution
	if dist == 0 {
		dist = tagging.Logarithmic
	}
	return tagging.CalculateCloud(counts, p.Steps, dist)
}

func collectCounts(rows *sql.Rows) ([]model.TagCount, error) {
	defer rows.Close()
	var counts []model.TagCount
	for rows.Next() {
		var tc model.TagCount
		if err := rows.Scan(&tc.ID, &tc.Namespace, &tc.Name, &tc.Value, &tc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, tc)
	}
	return counts, rows.Err()
}
