package store

import (
	"context"
	"database/sql"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/rcliao/tagkit/internal/errors"
	"github.com/rcliao/tagkit/internal/logger"
	"github.com/rcliao/tagkit/internal/model"
	"github.com/rcliao/tagkit/internal/tagging"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db  *sql.DB
	log *zap.SugaredLogger

	mu      sync.Mutex
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create db dir")
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, errors.Wrap(err, "open db")
	}

	s := &SQLiteStore{
		db:      db,
		log:     logger.Named("store"),
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "migrate")
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tags (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		namespace   TEXT NOT NULL DEFAULT '',
		name        TEXT NOT NULL,
		value       TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		UNIQUE (namespace, name, value)
	);
	CREATE INDEX IF NOT EXISTS idx_tags_name ON tags(name);

	CREATE TABLE IF NOT EXISTS tagged_items (
		id          TEXT PRIMARY KEY,
		tag_id      INTEGER NOT NULL REFERENCES tags(id),
		object_type TEXT NOT NULL,
		object_id   TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		UNIQUE (tag_id, object_type, object_id)
	);
	CREATE INDEX IF NOT EXISTS idx_items_object ON tagged_items(object_type, object_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const tagColumns = `t.id, t.namespace, t.name, t.value`

type scanner interface {
	Scan(dest ...any) error
}

func scanTag(row scanner) (model.Tag, error) {
	var t model.Tag
	err := row.Scan(&t.ID, &t.Namespace, &t.Name, &t.Value)
	return t, err
}

func collectTags(rows *sql.Rows) ([]model.Tag, error) {
	defer rows.Close()
	var tags []model.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (s *SQLiteStore) FindTag(ctx context.Context, t model.Tag) (*model.Tag, error) {
	return findTag(ctx, s.db, t)
}

func findTag(ctx context.Context, q querier, t model.Tag) (*model.Tag, error) {
	found, err := scanTag(q.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags t WHERE t.namespace = ? AND t.name = ? AND t.value = ?`,
		t.Namespace, t.Name, t.Value))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFoundError("tag %s", tagging.FormatTag(t))
	}
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (s *SQLiteStore) GetTagByID(ctx context.Context, id int64) (*model.Tag, error) {
	t, err := scanTag(s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags t WHERE t.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFoundError("tag id %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTag parses input, which must name exactly one tag, and looks it up.
func (s *SQLiteStore) GetTag(ctx context.Context, input, defaultNamespace string) (*model.Tag, error) {
	name, err := tagging.ParseSingle(input, tagging.ParseOptions{DefaultNamespace: defaultNamespace})
	if err != nil {
		return nil, errors.WithHint(err, "give exactly one tag")
	}
	t, err := tagging.GetTagParts(name, tagging.ParseOptions{})
	if err != nil {
		return nil, err
	}
	return s.FindTag(ctx, t)
}

// getOrCreateTag returns the stored tag with the parts of t, inserting it
// when missing.
func (s *SQLiteStore) getOrCreateTag(ctx context.Context, q querier, t model.Tag) (model.Tag, error) {
	res, err := q.ExecContext(ctx,
		`INSERT OR IGNORE INTO tags (namespace, name, value, created_at) VALUES (?, ?, ?, ?)`,
		t.Namespace, t.Name, t.Value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return model.Tag{}, errors.Wrapf(err, "insert tag %s", tagging.FormatTag(t))
	}
	if n, _ := res.RowsAffected(); n > 0 {
		s.log.Debugw("created tag", "tag", tagging.FormatTag(t))
	}
	found, err := findTag(ctx, q, t)
	if err != nil {
		return model.Tag{}, err
	}
	return *found, nil
}

// link associates a tag with an object. It reports whether a new
// association was created.
func (s *SQLiteStore) link(ctx context.Context, q querier, tagID int64, obj model.ObjectRef, id string, createdAt time.Time) (bool, error) {
	if id == "" {
		id = s.newID()
	}
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	res, err := q.ExecContext(ctx,
		`INSERT OR IGNORE INTO tagged_items (id, tag_id, object_type, object_id, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		id, tagID, obj.Type, obj.ID, createdAt.UTC().Format(time.RFC3339))
	if err != nil {
		return false, errors.Wrap(err, "insert tagged item")
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// SaveAssociations tags obj with tags, creating tags that do not exist yet.
// Existing associations are left alone.
func (s *SQLiteStore) SaveAssociations(ctx context.Context, obj model.ObjectRef, tags []model.Tag) error {
	if err := validateObject(obj); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, t := range tags {
		if t.Name == "" {
			return errors.NewInvalidRequestError("tag name is required")
		}
		stored, err := s.getOrCreateTag(ctx, tx, t)
		if err != nil {
			return err
		}
		if _, err := s.link(ctx, tx, stored.ID, obj, "", time.Time{}); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func validateObject(obj model.ObjectRef) error {
	if obj.Type == "" || obj.ID == "" {
		return errors.WithHint(
			errors.NewInvalidRequestError("object type and id are required"),
			"pass --type and --id")
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
