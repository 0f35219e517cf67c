package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/strata/internal/domain"
)

// SQLiteProfileRepo stores named column mappings as JSON. Profiles have
// replace-on-save semantics and no version history.
type SQLiteProfileRepo struct {
	db *sql.DB
}

// NewSQLiteProfileRepo creates a new SQLiteProfileRepo.
func NewSQLiteProfileRepo(database *sql.DB) *SQLiteProfileRepo {
	return &SQLiteProfileRepo{db: database}
}

func (r *SQLiteProfileRepo) Save(ctx context.Context, name string, mapping domain.ColumnMapping) error {
	data, err := json.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("serializing column mapping: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO import_profiles (name, mapping) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET mapping = excluded.mapping`,
		name, string(data))
	if err != nil {
		return fmt.Errorf("saving import profile: %w", err)
	}
	return nil
}

func (r *SQLiteProfileRepo) Get(ctx context.Context, name string) (*domain.ColumnMapping, error) {
	var data string
	err := r.db.QueryRowContext(ctx,
		`SELECT mapping FROM import_profiles WHERE name = ?`, name).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading import profile: %w", err)
	}

	var mapping domain.ColumnMapping
	if err := json.Unmarshal([]byte(data), &mapping); err != nil {
		return nil, fmt.Errorf("parsing import profile %q: %w", name, err)
	}
	return &mapping, nil
}

func (r *SQLiteProfileRepo) ListNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name FROM import_profiles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing import profiles: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning profile name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating profile names: %w", err)
	}
	return names, nil
}

func (r *SQLiteProfileRepo) Delete(ctx context.Context, name string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM import_profiles WHERE name = ?`, name)
	if err != nil {
		return 0, fmt.Errorf("deleting import profile: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted profiles: %w", err)
	}
	return n, nil
}

// SQLiteParamRepo is a free-form key/value store for app parameters.
type SQLiteParamRepo struct {
	db *sql.DB
}

// NewSQLiteParamRepo creates a new SQLiteParamRepo.
func NewSQLiteParamRepo(database *sql.DB) *SQLiteParamRepo {
	return &SQLiteParamRepo{db: database}
}

func (r *SQLiteParamRepo) SetParam(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO app_params (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("setting app param: %w", err)
	}
	return nil
}

func (r *SQLiteParamRepo) GetParam(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM app_params WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("getting app param: %w", err)
	}
	return value, nil
}
