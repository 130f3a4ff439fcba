// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jemin1834/orders-prediction/internal/lib/jwt"
	"github.com/jemin1834/orders-prediction/internal/lib/password"
	"github.com/jemin1834/orders-prediction/internal/models"
	"github.com/jemin1834/orders-prediction/internal/storage/repository"
)

// ErrInvalidCredentials возвращается при неверной паре имя/пароль.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его ID.
	// Возвращает repository.ErrUserExists, если имя занято.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// ListUsernames возвращает имена всех зарегистрированных пользователей.
	ListUsernames(ctx context.Context) ([]string, error)
}

// Cache описывает хранилище чёрного списка отозванных токенов.
type Cache interface {
	Set(key string, value any, expiration time.Duration) error
	Exists(key string) (bool, error)
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker *jwt.MakerImpl
	cache    Cache
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker *jwt.MakerImpl, cache Cache) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		cache:    cache,
	}
}

// Register создает нового пользователя с хэшированием пароля и дефолтной ролью "user".
// Дубликат имени пользователя отклоняется базой, а не отдельной проверкой.
func (s *AuthService) Register(ctx context.Context, username, rawPassword, email string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Role:         "user", // дефолтная роль при регистрации
	}
	return s.users.RegisterUser(ctx, user)
}

// IsDuplicate сообщает, вызвана ли ошибка регистрации занятым именем.
func IsDuplicate(err error) bool {
	return errors.Is(err, repository.ErrUserExists)
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (token, role string, err error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", ErrInvalidCredentials
	}
	token, err = s.jwtMaker.GenerateToken(user.Username, user.Role)
	if err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}

// Logout отзывает токен: он попадает в чёрный список до истечения своего TTL
// и перестаёт приниматься middleware.
func (s *AuthService) Logout(_ context.Context, token string) error {
	const op = "services.auth.Logout"
	if err := s.cache.Set("blacklist:"+token, true, s.jwtMaker.TokenTTL()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ValidateToken проверяет подпись токена и его отсутствие в чёрном списке,
// возвращает claims с именем пользователя и ролью.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*jwt.CustomClaims, error) {
	const op = "services.auth.ValidateToken"
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	revoked, err := s.cache.Exists("blacklist:" + token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if revoked {
		return nil, fmt.Errorf("%s: token revoked", op)
	}
	return claims, nil
}

// ListUsernames возвращает имена всех пользователей для панели администратора.
func (s *AuthService) ListUsernames(ctx context.Context) ([]string, error) {
	return s.users.ListUsernames(ctx)
}
