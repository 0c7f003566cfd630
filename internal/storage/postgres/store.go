package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"jobmatch/internal/common"
	"jobmatch/internal/storage"
)

var _ storage.Store = (*Store)(nil)

const schema = `CREATE TABLE IF NOT EXISTS collections (
	name       TEXT PRIMARY KEY,
	payload    BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

// Store keeps each collection as one row of the collections table.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the collections table when it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return common.NewError(common.CodeInternal, "failed to create collections table", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, name string) ([]byte, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT payload FROM collections WHERE name = $1`, name)
	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, common.NewError(common.CodeInternal, "failed to load collection "+name, err)
	}
	return payload, true, nil
}

func (s *Store) Save(ctx context.Context, name string, blob []byte) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO collections (name, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`,
		name, blob, time.Now().UTC())
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to save collection "+name, err)
	}
	return nil
}

// LoadMany fetches several collections in one round trip. Missing names are
// absent from the result.
func (s *Store) LoadMany(ctx context.Context, names []string) (map[string][]byte, error) {
	result := make(map[string][]byte, len(names))
	if len(names) == 0 {
		return result, nil
	}
	rows, err := s.db.QueryContext(ctx, `SELECT name, payload FROM collections WHERE name = ANY($1)`, pq.Array(names))
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to load collections", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		var payload []byte
		if err := rows.Scan(&name, &payload); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan collection", err)
		}
		result[name] = payload
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to read collections", err)
	}
	return result, nil
}
