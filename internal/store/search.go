package store

import (
	"context"
	"strings"

	"github.com/rcliao/tagkit/internal/errors"
	"github.com/rcliao/tagkit/internal/model"
	"github.com/rcliao/tagkit/internal/tagging"
)

// predicateSQL compiles p into a WHERE expression over the tags table
// aliased as t. Absent parts are stored as empty strings, so an exact
// empty field compiles to = ''.
func predicateSQL(p *tagging.Predicate) (string, []any) {
	var terms []string
	var args []any

	if len(p.IDs) > 0 {
		terms = append(terms, "t.id IN ("+placeholders(len(p.IDs))+")")
		for _, id := range p.IDs {
			args = append(args, id)
		}
	}
	if len(p.Names) > 0 {
		terms = append(terms, "(t.namespace = '' AND t.value = '' AND t.name IN ("+placeholders(len(p.Names))+"))")
		for _, n := range p.Names {
			args = append(args, n)
		}
	}
	for _, c := range p.Clauses {
		var conds []string
		for _, f := range []struct {
			col   string
			field tagging.Field
		}{
			{"t.namespace", c.Namespace},
			{"t.name", c.Name},
			{"t.value", c.Value},
		} {
			if f.field.Any {
				continue
			}
			conds = append(conds, f.col+" = ?")
			args = append(args, f.field.Value)
		}
		if len(conds) == 0 {
			terms = append(terms, "1 = 1")
			continue
		}
		terms = append(terms, "("+strings.Join(conds, " AND ")+")")
	}
	if len(terms) == 0 {
		return "0 = 1", nil
	}
	return "(" + strings.Join(terms, " OR ") + ")", args
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// FindTags returns the stored tags matched by res, ordered by namespace,
// name and value. Tag records in res are returned as given.
func (s *SQLiteStore) FindTags(ctx context.Context, res tagging.Resolution) ([]model.Tag, error) {
	if res.Predicate == nil {
		return res.Tags, nil
	}
	if res.Predicate.Empty() {
		return nil, nil
	}
	where, args := predicateSQL(res.Predicate)
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tagColumns+` FROM tags t WHERE `+where+` ORDER BY t.namespace, t.name, t.value`,
		args...)
	if err != nil {
		return nil, err
	}
	return collectTags(rows)
}

// ResolveTags resolves ref and looks up the matching tags.
func (s *SQLiteStore) ResolveTags(ctx context.Context, ref tagging.Reference, opts tagging.ResolveOptions) ([]model.Tag, error) {
	res, err := tagging.Resolve(ref, opts)
	if err != nil {
		return nil, err
	}
	return s.FindTags(ctx, res)
}

// tagIDs returns the ids of the stored tags matched by res. Tag records
// without an id are looked up by their parts and skipped when missing.
func (s *SQLiteStore) tagIDs(ctx context.Context, res tagging.Resolution) ([]int64, error) {
	tags, err := s.FindTags(ctx, res)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(tags))
	seen := make(map[int64]bool, len(tags))
	for _, t := range tags {
		if t.ID == 0 {
			found, err := s.FindTag(ctx, t)
			if errors.IsNotFoundError(err) {
				continue
			}
			if err != nil {
				return nil, err
			}
			t = *found
		}
		if !seen[t.ID] {
			seen[t.ID] = true
			ids = append(ids, t.ID)
		}
	}
	return ids, nil
}

// scopeSQL compiles a namespace scope over the tags table aliased as t.
func scopeSQL(scope Scope) (string, []any) {
	var conds []string
	var args []any
	if len(scope.Namespaces) > 0 {
		conds = append(conds, "t.namespace IN ("+placeholders(len(scope.Namespaces))+")")
		for _, ns := range scope.Namespaces {
			args = append(args, ns)
		}
	}
	if len(scope.ExcludeNamespaces) > 0 {
		conds = append(conds, "t.namespace NOT IN ("+placeholders(len(scope.ExcludeNamespaces))+")")
		for _, ns := range scope.ExcludeNamespaces {
			args = append(args, ns)
		}
	}
	if len(conds) == 0 {
		return "1 = 1", nil
	}
	return strings.Join(conds, " AND "), args
}

func int64Args(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
