package account

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/crypto/bcrypt"

	storage "NewsHunter/db"
	"NewsHunter/internal/core"
	"NewsHunter/internal/models"
	"NewsHunter/pkg/logger"
)

var (
	ErrUnauthenticated    = errors.New("Unauthenticated.")
	ErrUserNotFound       = errors.New("User not found")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrEmailTaken         = errors.New("The email has already been taken.")
	ErrEmptyPreference    = errors.New("Request is empty")
)

const DefaultBcryptCost = 12

var namePattern = regexp.MustCompile(`^[a-zA-Z ]*$`)

// PreferencePatch 一次追加的偏好，空字段表示不修改
type PreferencePatch struct {
	Category string
	Author   string
	Source   string
}

// Service 用户注册、登录、令牌校验与偏好读写
type Service struct {
	store storage.AccountStorage
	cost  int
	log   *logger.Logger
}

func NewService(store storage.AccountStorage, bcryptCost int) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = DefaultBcryptCost
	}
	return &Service{store: store, cost: bcryptCost, log: logger.WithPrefix("Account")}
}

// Signup 校验后创建用户并签发令牌
func (s *Service) Signup(ctx context.Context, name, email, password string) (string, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	switch {
	case name == "":
		return "", required("name")
	case !namePattern.MatchString(name):
		return "", invalid("name", "The name field format is invalid.")
	case !between(name, 7, 50):
		return "", invalid("name", "The name field must be between 7 and 50 characters.")
	}
	if err := checkEmail(email); err != nil {
		return "", err
	}
	if !between(email, 10, 50) {
		return "", invalid("email", "The email field must be between 10 and 50 characters.")
	}
	if password == "" {
		return "", required("password")
	}
	if utf8.RuneCountInString(password) < 6 {
		return "", invalid("password", "The password field must be at least 6 characters.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, name, email, string(hash))
	if errors.Is(err, storage.ErrDuplicate) {
		return "", &core.ValidationError{Field: "email", Message: ErrEmailTaken.Error()}
	}
	if err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}
	s.log.Info("新用户注册: id=%d", user.ID)
	return s.issueToken(ctx, user.ID)
}

// Login 邮箱不存在返回 ErrUserNotFound，密码不匹配返回 ErrInvalidCredentials
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if err := checkEmail(email); err != nil {
		return "", err
	}
	if password == "" {
		return "", required("password")
	}

	user, hash, err := s.store.FindUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		s.log.Debug("密码校验失败: id=%d", user.ID)
		return "", ErrInvalidCredentials
	}
	return s.issueToken(ctx, user.ID)
}

// Logout 只吊销当前令牌，同一用户的其他令牌不受影响
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return ErrUnauthenticated
	}
	err := s.store.DeleteToken(ctx, hashToken(token))
	if errors.Is(err, storage.ErrNotFound) {
		return ErrUnauthenticated
	}
	if err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// Authenticate 令牌 -> 用户身份
func (s *Service) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	user, err := s.store.FindUserByToken(ctx, hashToken(token))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("find token: %w", err)
	}
	return user, nil
}

func (s *Service) User(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.store.FindUserByID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// Preferences 没有保存过偏好时返回 nil
func (s *Service) Preferences(ctx context.Context, userID int64) (*models.Preference, error) {
	pref, err := s.store.GetPreference(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get preference: %w", err)
	}
	return pref, nil
}

// SavePreference 把 patch 中的各项追加到已有偏好，已存在的值不重复添加
func (s *Service) SavePreference(ctx context.Context, userID int64, patch PreferencePatch) (*models.Preference, error) {
	patch.Category = strings.TrimSpace(patch.Category)
	patch.Author = strings.TrimSpace(patch.Author)
	patch.Source = strings.TrimSpace(patch.Source)

	if patch.Category == "" && patch.Author == "" && patch.Source == "" {
		return nil, ErrEmptyPreference
	}
	fields := []struct{ name, value string }{
		{"category", patch.Category},
		{"author", patch.Author},
		{"source", patch.Source},
	}
	for _, f := range fields {
		if f.value != "" && utf8.RuneCountInString(f.value) < 3 {
			return nil, invalid(f.name, fmt.Sprintf("The %s field must be at least 3 characters.", f.name))
		}
	}

	current, err := s.store.GetPreference(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get preference: %w", err)
	}
	if current == nil {
		current = &models.Preference{UserID: userID}
	}

	next := &models.Preference{
		UserID:     userID,
		Categories: appendIfAbsent(current.Categories, patch.Category),
		Authors:    appendIfAbsent(current.Authors, patch.Author),
		Sources:    appendIfAbsent(current.Sources, patch.Source),
	}
	saved, err := s.store.UpsertPreference(ctx, next)
	if err != nil {
		return nil, fmt.Errorf("save preference: %w", err)
	}
	s.log.Debug("偏好已更新: user=%d categories=%v authors=%v sources=%v",
		userID, saved.Categories, saved.Authors, saved.Sources)
	return saved, nil
}

func (s *Service) issueToken(ctx context.Context, userID int64) (string, error) {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	if err := s.store.CreateToken(ctx, userID, hashToken(token)); err != nil {
		return "", fmt.Errorf("create token: %w", err)
	}
	return token, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func appendIfAbsent(list []string, v string) []string {
	out := append([]string{}, list...)
	if v == "" || lo.Contains(out, v) {
		return out
	}
	return append(out, v)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkEmail(email string) error {
	if email == "" {
		return required("email")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return invalid("email", "The email field must be a valid email address.")
	}
	return nil
}

func between(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= min && n <= max
}

func required(field string) *core.ValidationError {
	return &core.ValidationError{Field: field, Message: fmt.Sprintf("The %s field is required.", field)}
}

func invalid(field, msg string) *core.ValidationError {
	return &core.ValidationError{Field: field, Message: msg}
}
