package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath       string           `json:"db_path" yaml:"db_path"`
	DBSizeBytes  int64            `json:"db_size_bytes" yaml:"db_size_bytes"`
	TotalTags    int              `json:"total_tags" yaml:"total_tags"`
	UsedTags     int              `json:"used_tags" yaml:"used_tags"`
	TotalItems   int              `json:"total_items" yaml:"total_items"`
	TotalObjects int              `json:"total_objects" yaml:"total_objects"`
	Namespaces   []NamespaceStats `json:"namespaces" yaml:"namespaces"`
}

// NamespaceStats holds per-namespace counts. An empty Namespace stands for
// tags without one.
type NamespaceStats struct {
	Namespace string `json:"namespace" yaml:"namespace"`
	Tags      int    `json:"tags" yaml:"tags"`
	Items     int    `json:"items" yaml:"items"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	// DB file size
	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	for _, q := range []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM tags`, &st.TotalTags},
		{`SELECT COUNT(DISTINCT tag_id) FROM tagged_items`, &st.UsedTags},
		{`SELECT COUNT(*) FROM tagged_items`, &st.TotalItems},
		{`SELECT COUNT(*) FROM (SELECT DISTINCT object_type, object_id FROM tagged_items)`, &st.TotalObjects},
	} {
		if err := s.db.QueryRowContext(ctx, q.query).Scan(q.dest); err != nil {
			return st, err
		}
	}

	namespaces, err := s.ListNamespaces(ctx)
	if err != nil {
		return st, err
	}
	st.Namespaces = namespaces
	return st, nil
}

// ListNamespaces returns every namespace with its tag and association
// counts, busiest first.
func (s *SQLiteStore) ListNamespaces(ctx context.Context) ([]NamespaceStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.namespace, COUNT(DISTINCT t.id) AS tags, COUNT(i.id) AS items
		FROM tags t LEFT JOIN tagged_items i ON i.tag_id = t.id
		GROUP BY t.namespace ORDER BY items DESC, t.namespace`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var namespaces []NamespaceStats
	for rows.Next() {
		var ns NamespaceStats
		if err := rows.Scan(&ns.Namespace, &ns.Tags, &ns.Items); err != nil {
			return nil, err
		}
		namespaces = append(namespaces, ns)
	}
	return namespaces, rows.Err()
}
