package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/altynpony/mediaschoolsandbox/internal/lib/jwt"
	"github.com/altynpony/mediaschoolsandbox/internal/lib/password"
	"github.com/altynpony/mediaschoolsandbox/internal/models"
	"github.com/altynpony/mediaschoolsandbox/internal/storage"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestService(users UserRepository) *AuthService {
	maker := jwt.NewJWTMaker("test-secret-key", time.Hour)
	return NewAuthService(users, maker)
}

func TestRegister_HashesPassword(t *testing.T) {
	users := new(mockUserRepo)
	svc := newTestService(users)

	users.On("RegisterUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Email == "anna@example.com" &&
			u.Role == "user" &&
			u.ID != "" &&
			u.PasswordHash != "secret123" &&
			password.CompareHash(u.PasswordHash, "secret123") == nil
	})).Return("user-1", nil)

	id, err := svc.Register(context.Background(), "anna@example.com", "Anna", "secret123")

	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
	users.AssertExpectations(t)
}

func TestRegister_EmailTaken(t *testing.T) {
	users := new(mockUserRepo)
	svc := newTestService(users)

	users.On("RegisterUser", mock.Anything, mock.Anything).Return("", storage.ErrDuplicate)

	_, err := svc.Register(context.Background(), "anna@example.com", "Anna", "secret123")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_Success(t *testing.T) {
	users := new(mockUserRepo)
	svc := newTestService(users)

	hash, err := password.GetHash("secret123")
	require.NoError(t, err)
	users.On("GetUserByEmail", mock.Anything, "anna@example.com").Return(&models.User{
		ID:           "user-1",
		Email:        "anna@example.com",
		Name:         "Anna",
		PasswordHash: hash,
		Role:         "user",
	}, nil)

	token, user, err := svc.Login(context.Background(), "anna@example.com", "secret123")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "user-1", user.ID)

	// Выданный токен должен проходить валидацию и восстанавливать сессию.
	session, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", session.ID)
	assert.Equal(t, "anna@example.com", session.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(mockUserRepo)
	svc := newTestService(users)

	hash, err := password.GetHash("secret123")
	require.NoError(t, err)
	users.On("GetUserByEmail", mock.Anything, "anna@example.com").Return(&models.User{
		Email:        "anna@example.com",
		PasswordHash: hash,
	}, nil)

	_, _, err = svc.Login(context.Background(), "anna@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	users := new(mockUserRepo)
	svc := newTestService(users)

	users.On("GetUserByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "secret123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateToken_Invalid(t *testing.T) {
	svc := newTestService(new(mockUserRepo))

	_, err := svc.ValidateToken(context.Background(), "not-a-token")
	require.Error(t, err)
}
