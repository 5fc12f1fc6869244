package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mzanotti/restaurant-seating/internal/model"
)

// ErrTokenInvalid covers unknown, revoked and expired refresh tokens alike,
// so a caller cannot tell which guard rejected a token.
var ErrTokenInvalid = errors.New("refresh token invalid")

// TokenRepo provides access to stored refresh token hashes.  Raw tokens never
// reach this layer; callers hash them first.
type TokenRepo struct {
	db *sql.DB
}

// NewTokenRepo returns a TokenRepo bound to the given database.
func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{db: db} }

// StoreRefresh persists a refresh token and fills in its generated ID.
func (r *TokenRepo) StoreRefresh(ctx context.Context, t *model.RefreshToken) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?, ?, ?)`,
		t.UserID, t.TokenHash, t.ExpiresAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// ValidateRefresh looks a token hash up and returns the stored token when it
// is still usable.  Unknown, revoked and expired hashes all yield
// ErrTokenInvalid.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	var t model.RefreshToken
	var revoked sql.NullTime
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, token_hash, expires_at, revoked_at, created_at
		 FROM refresh_tokens WHERE token_hash = ?`,
		tokenHash).Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &revoked, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTokenInvalid
	}
	if err != nil {
		return nil, err
	}
	if revoked.Valid {
		at := revoked.Time
		t.RevokedAt = &at
	}
	if !t.Usable(time.Now().UTC()) {
		return nil, ErrTokenInvalid
	}
	return &t, nil
}

// RevokeByHash revokes a single session's token.
func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked_at = NOW() WHERE token_hash = ? AND revoked_at IS NULL`,
		tokenHash)
	return err
}

// RevokeAllForUser revokes every active session of one user.
func (r *TokenRepo) RevokeAllForUser(ctx context.Context, userID uint64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked_at = NOW() WHERE user_id = ? AND revoked_at IS NULL`,
		userID)
	return err
}
