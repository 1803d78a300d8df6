package db

import (
	"context"
	"errors"

	"NewsHunter/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// AccountStorage 用户、访问令牌与偏好的存储
// 令牌只保存哈希值，明文只在签发时返回给客户端
type AccountStorage interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (*models.User, error)

	// FindUserByEmail 返回用户及其密码哈希
	FindUserByEmail(ctx context.Context, email string) (*models.User, string, error)

	FindUserByID(ctx context.Context, id int64) (*models.User, error)

	CreateToken(ctx context.Context, userID int64, tokenHash string) error

	FindUserByToken(ctx context.Context, tokenHash string) (*models.User, error)

	DeleteToken(ctx context.Context, tokenHash string) error

	// GetPreference 没有偏好记录时返回 (nil, nil)
	GetPreference(ctx context.Context, userID int64) (*models.Preference, error)

	UpsertPreference(ctx context.Context, pref *models.Preference) (*models.Preference, error)

	Close() error
}
