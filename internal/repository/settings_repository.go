package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
)

// avgTurnKey is the settings key holding the average table turn duration in
// minutes.  The key name is kept as-is for compatibility with existing
// deployments.
const avgTurnKey = "tempo_medio_mesa"

// defaultAvgTurnMinutes applies when the key is missing or holds a
// non-positive value.
const defaultAvgTurnMinutes = 60

// SettingsRepo provides access to the key/value settings table.  Values are
// read at call time, never cached, so a changed turn duration applies to the
// next occupancy query.
type SettingsRepo struct {
	db *sql.DB
}

// NewSettingsRepo returns a SettingsRepo bound to the given database.
func NewSettingsRepo(db *sql.DB) *SettingsRepo { return &SettingsRepo{db: db} }

// Get returns the value for a key.  ok is false when the key is absent.
func (r *SettingsRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE `+"`key`"+` = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Upsert creates or replaces a setting.
func (r *SettingsRepo) Upsert(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (`+"`key`"+`, value) VALUES (?, ?)
		 ON DUPLICATE KEY UPDATE value = VALUES(value), updated_at = CURRENT_TIMESTAMP`,
		key, value)
	return err
}

// All returns every setting as a map.
func (r *SettingsRepo) All(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+"`key`"+`, value FROM settings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// parseTurnMinutes applies the fallback rule: a missing, malformed or
// non-positive value yields the 60 minute default.
func parseTurnMinutes(raw string, present bool) int {
	if !present {
		return defaultAvgTurnMinutes
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return defaultAvgTurnMinutes
	}
	return n
}

// AvgTurnMinutes returns the configured table turn duration, falling back
// to 60 minutes when the setting is absent, malformed or non-positive.
func (r *SettingsRepo) AvgTurnMinutes(ctx context.Context) (int, error) {
	raw, ok, err := r.Get(ctx, avgTurnKey)
	if err != nil {
		return 0, err
	}
	return parseTurnMinutes(raw, ok), nil
}

// AvgTurnMinutesTx is AvgTurnMinutes inside an existing transaction, so the
// assignment conflict check uses the same turn duration the transaction
// would see.
func (r *SettingsRepo) AvgTurnMinutesTx(ctx context.Context, tx *sql.Tx) (int, error) {
	var raw string
	err := tx.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE `+"`key`"+` = ?`, avgTurnKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return parseTurnMinutes("", false), nil
	}
	if err != nil {
		return 0, err
	}
	return parseTurnMinutes(raw, true), nil
}
