// Package services содержит логику бизнес-уровня для регистрации и входа
// пользователей.
package services

import (
	"context"
	"errors"

	"github.com/greenbowl/salad-storefront/internal/lib/jwt"
	"github.com/greenbowl/salad-storefront/internal/lib/password"
	"github.com/greenbowl/salad-storefront/internal/models"
)

// ErrInvalidCredentials возвращается при неверной паре почта/пароль.
// Наружу не раскрывается, существует ли такая учётная запись.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает пользователя по почте или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля и ролью customer
// и сразу выдает JWT, чтобы клиенту не требовался отдельный вход после
// регистрации. Членства при регистрации нет.
func (s *AuthService) Register(ctx context.Context, req models.SignupRequest) (uid, token string, err error) {
	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return "", "", err
	}
	user := models.User{
		Email:            req.Email,
		Name:             req.Name,
		Phone:            req.Phone,
		City:             req.City,
		Address:          req.Address,
		PasswordHash:     &hashed,
		Role:             models.RoleCustomer,
		MembershipStatus: models.MembershipNone,
	}
	uid, err = s.users.RegisterUser(ctx, user)
	if err != nil {
		return "", "", err
	}
	token, err = s.jwtMaker.GenerateToken(user.Email, user.Role, uid)
	if err != nil {
		return "", "", err
	}
	return uid, token, nil
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (token, role string, err error) {
	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}
	if user.PasswordHash == nil {
		return "", "", ErrInvalidCredentials
	}
	if err := password.CompareHash(*user.PasswordHash, req.Password); err != nil {
		return "", "", ErrInvalidCredentials
	}
	token, err = s.jwtMaker.GenerateToken(user.Email, user.Role, user.UID)
	if err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}

// ValidateToken проверяет JWT и возвращает информацию о пользователе.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, err
	}
	return &models.User{
		Email: claims.Email,
		Role:  claims.Role,
		UID:   claims.UserUID,
	}, nil
}
