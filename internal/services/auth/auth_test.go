package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	customjwt "github.com/greenbowl/salad-storefront/internal/lib/jwt"
	"github.com/greenbowl/salad-storefront/internal/lib/password"
	"github.com/greenbowl/salad-storefront/internal/models"
	services "github.com/greenbowl/salad-storefront/internal/services/auth"
	"github.com/greenbowl/salad-storefront/internal/storage"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UserRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// Мок для jwt.Maker
type JwtMakerMock struct {
	mock.Mock
}

func (m *JwtMakerMock) GenerateToken(email, role, userUID string) (string, error) {
	args := m.Called(email, role, userUID)
	return args.String(0), args.Error(1)
}

func (m *JwtMakerMock) ParseToken(token string) (*customjwt.CustomClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customjwt.CustomClaims), args.Error(1)
}

func TestAuthService_Register(t *testing.T) {
	repo := new(UserRepoMock)
	repo.On("RegisterUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
		return user.Email == "anna@example.com" &&
			user.Name == "Anna Smith" &&
			user.PasswordHash != nil && *user.PasswordHash != "" &&
			user.Role == models.RoleCustomer &&
			user.MembershipStatus == models.MembershipNone
	})).Return("user-uid-1", nil).Once()

	maker := new(JwtMakerMock)
	maker.On("GenerateToken", "anna@example.com", models.RoleCustomer, "user-uid-1").
		Return("signed-token", nil).Once()

	svc := services.NewAuthService(repo, maker)
	uid, token, err := svc.Register(context.Background(), models.SignupRequest{
		Name:     "Anna Smith",
		Email:    "anna@example.com",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.Equal(t, "user-uid-1", uid)
	assert.Equal(t, "signed-token", token)
	repo.AssertExpectations(t)
	maker.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := new(UserRepoMock)
	repo.On("RegisterUser", mock.Anything, mock.Anything).
		Return("", errors.New("duplicate key value violates unique constraint")).Once()

	svc := services.NewAuthService(repo, new(JwtMakerMock))
	_, _, err := svc.Register(context.Background(), models.SignupRequest{
		Name:     "Anna Smith",
		Email:    "anna@example.com",
		Password: "password123",
	})

	require.Error(t, err)
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := password.GetHash("password123")
	require.NoError(t, err)

	tests := []struct {
		name       string
		req        models.LoginRequest
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantToken  string
		wantRole   string
		wantErr    error
	}{
		{
			name: "successful login",
			req:  models.LoginRequest{Email: "anna@example.com", Password: "password123"},
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "anna@example.com").Return(&models.User{
					UID:          "user-uid-1",
					Email:        "anna@example.com",
					PasswordHash: &hashed,
					Role:         models.RoleCustomer,
				}, nil).Once()
				j.On("GenerateToken", "anna@example.com", models.RoleCustomer, "user-uid-1").
					Return("signed-token", nil).Once()
			},
			wantToken: "signed-token",
			wantRole:  models.RoleCustomer,
		},
		{
			name: "wrong password",
			req:  models.LoginRequest{Email: "anna@example.com", Password: "letmein"},
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "anna@example.com").Return(&models.User{
					UID:          "user-uid-1",
					Email:        "anna@example.com",
					PasswordHash: &hashed,
				}, nil).Once()
			},
			wantErr: services.ErrInvalidCredentials,
		},
		{
			name: "unknown email maps to the same error",
			req:  models.LoginRequest{Email: "ghost@example.com", Password: "password123"},
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "ghost@example.com").
					Return(nil, storage.ErrNotFound).Once()
			},
			wantErr: services.ErrInvalidCredentials,
		},
		{
			name: "account without a password",
			req:  models.LoginRequest{Email: "guest@example.com", Password: "password123"},
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "guest@example.com").Return(&models.User{
					UID:   "user-uid-2",
					Email: "guest@example.com",
				}, nil).Once()
			},
			wantErr: services.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			maker := new(JwtMakerMock)
			tt.setupMocks(repo, maker)

			svc := services.NewAuthService(repo, maker)
			token, role, err := svc.Login(context.Background(), tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
			assert.Equal(t, tt.wantRole, role)
			repo.AssertExpectations(t)
			maker.AssertExpectations(t)
		})
	}
}

func TestAuthService_ValidateToken(t *testing.T) {
	maker := new(JwtMakerMock)
	maker.On("ParseToken", "signed-token").Return(&customjwt.CustomClaims{
		Email:   "anna@example.com",
		Role:    models.RoleAdmin,
		UserUID: "user-uid-1",
	}, nil).Once()

	svc := services.NewAuthService(new(UserRepoMock), maker)
	user, err := svc.ValidateToken(context.Background(), "signed-token")

	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", user.Email)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.Equal(t, "user-uid-1", user.UID)
}
