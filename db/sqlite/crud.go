package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	storage "NewsHunter/db"
	"NewsHunter/internal/models"
)

var _ storage.AccountStorage = (*SQLiteDB)(nil)

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.Code == sqlite3.ErrConstraint &&
			(se.ExtendedCode == sqlite3.ErrConstraintUnique || se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey)
	}
	return false
}

func (s *SQLiteDB) CreateUser(ctx context.Context, name, email, passwordHash string) (*models.User, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (name, email, password, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		name, email, passwordHash, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, storage.ErrDuplicate
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.User{ID: id, Name: name, Email: email, CreatedAt: now, UpdatedAt: now}, nil
}

func (s *SQLiteDB) FindUserByEmail(ctx context.Context, email string) (*models.User, string, error) {
	var u models.User
	var hash string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, password, created_at, updated_at FROM users WHERE email = ?`, email,
	).Scan(&u.ID, &u.Name, &u.Email, &hash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", storage.ErrNotFound
	}
	if err != nil {
		return nil, "", err
	}
	return &u, hash, nil
}

func (s *SQLiteDB) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, created_at, updated_at FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *SQLiteDB) CreateToken(ctx context.Context, userID int64, tokenHash string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO access_tokens (user_id, token_hash, created_at) VALUES (?, ?, ?)`,
		userID, tokenHash, time.Now().UTC())
	if isUniqueViolation(err) {
		return storage.ErrDuplicate
	}
	return err
}

func (s *SQLiteDB) FindUserByToken(ctx context.Context, tokenHash string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `
	SELECT u.id, u.name, u.email, u.created_at, u.updated_at
	FROM access_tokens t JOIN users u ON u.id = t.user_id
	WHERE t.token_hash = ?`, tokenHash,
	).Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	// 最近使用时间只做记录，失败不影响鉴权
	_, _ = s.db.ExecContext(ctx, `UPDATE access_tokens SET last_used_at = ? WHERE token_hash = ?`, time.Now().UTC(), tokenHash)
	return &u, nil
}

func (s *SQLiteDB) DeleteToken(ctx context.Context, tokenHash string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM access_tokens WHERE token_hash = ?`, tokenHash)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *SQLiteDB) GetPreference(ctx context.Context, userID int64) (*models.Preference, error) {
	var p models.Preference
	var categories, authors, sources string
	err := s.db.QueryRowContext(ctx, `
	SELECT id, user_id, categories, authors, sources, created_at, updated_at
	FROM user_preferences WHERE user_id = ?`, userID,
	).Scan(&p.ID, &p.UserID, &categories, &authors, &sources, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	for _, f := range []struct {
		raw string
		dst *[]string
	}{{categories, &p.Categories}, {authors, &p.Authors}, {sources, &p.Sources}} {
		if err := decodeList(f.raw, f.dst); err != nil {
			return nil, fmt.Errorf("decode preference of user %d: %w", userID, err)
		}
	}
	return &p, nil
}

func (s *SQLiteDB) UpsertPreference(ctx context.Context, pref *models.Preference) (*models.Preference, error) {
	categories, err := encodeList(pref.Categories)
	if err != nil {
		return nil, err
	}
	authors, err := encodeList(pref.Authors)
	if err != nil {
		return nil, err
	}
	sources, err := encodeList(pref.Sources)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
	INSERT INTO user_preferences (user_id, categories, authors, sources, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(user_id) DO UPDATE SET
		categories = excluded.categories,
		authors = excluded.authors,
		sources = excluded.sources,
		updated_at = excluded.updated_at
	`, pref.UserID, categories, authors, sources, now, now)
	if err != nil {
		return nil, err
	}
	return s.GetPreference(ctx, pref.UserID)
}

func encodeList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	return string(b), err
}

func decodeList(raw string, dst *[]string) error {
	*dst = []string{}
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), dst)
}
