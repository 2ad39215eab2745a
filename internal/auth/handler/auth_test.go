package handler

import (
	"os"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gridpoint/console/internal/repositories/sql/auth"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	jwtKey = []byte("test-signing-key")
	tokenTTL = time.Hour
	os.Exit(m.Run())
}

type mockAuthRepo struct {
	mock.Mock
}

func (m *mockAuthRepo) GetAllUsers() ([]auth.User, error) {
	args := m.Called()
	return args.Get(0).([]auth.User), args.Error(1)
}

func (m *mockAuthRepo) GetUserByEmail(email string) (*auth.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func (m *mockAuthRepo) CreateUser(user *auth.User) (uint, error) {
	args := m.Called(user)
	return args.Get(0).(uint), args.Error(1)
}

func (m *mockAuthRepo) UpdateUserAccessAndRole(email string, isActive bool, role string) error {
	return m.Called(email, isActive, role).Error(0)
}

type mockTokenRepo struct {
	mock.Mock
}

func (m *mockTokenRepo) SaveToken(email, token string, expiration time.Time) error {
	return m.Called(email, token, expiration).Error(0)
}

func (m *mockTokenRepo) InvalidateToken(token string) error {
	return m.Called(token).Error(0)
}

func (m *mockTokenRepo) IsTokenValid(token string) (bool, error) {
	args := m.Called(token)
	return args.Bool(0), args.Error(1)
}

func (m *mockTokenRepo) CleanupExpiredTokens() error {
	return m.Called().Error(0)
}

func newTestAuthHandler() (*AuthHandler, *mockAuthRepo, *mockTokenRepo) {
	authRepo := &mockAuthRepo{}
	tokenRepo := &mockTokenRepo{}
	return &AuthHandler{authRepo: authRepo, tokenRepo: tokenRepo}, authRepo, tokenRepo
}

func TestRegisterHashesPassword(t *testing.T) {
	h, authRepo, _ := newTestAuthHandler()
	authRepo.On("CreateUser", mock.MatchedBy(func(user *auth.User) bool {
		return user.Email == "dev@example.com" && user.Role == "user" &&
			bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Sup3r$ecret")) == nil
	})).Return(uint(1), nil)

	err := h.Register(&User{Email: "dev@example.com", Password: "Sup3r$ecret"})

	require.NoError(t, err)
	authRepo.AssertExpectations(t)
}

func TestRegisterRejectsWeakPasswords(t *testing.T) {
	h, authRepo, _ := newTestAuthHandler()

	for _, password := range []string{"short", "alllowercase1!", "ALLUPPERCASE1!", "NoDigitsHere!", "NoSpecial123", "Has Spaces1!"} {
		err := h.Register(&User{Email: "dev@example.com", Password: password})
		assert.Error(t, err, "password %q should be rejected", password)
	}
	authRepo.AssertNotCalled(t, "CreateUser", mock.Anything)
}

func TestLoginIssuesSignedToken(t *testing.T) {
	h, authRepo, tokenRepo := newTestAuthHandler()
	hash, err := bcrypt.GenerateFromPassword([]byte("Sup3r$ecret"), bcrypt.MinCost)
	require.NoError(t, err)
	authRepo.On("GetUserByEmail", "dev@example.com").Return(&auth.User{
		Email:        "dev@example.com",
		PasswordHash: string(hash),
		Role:         "admin",
		IsActive:     true,
	}, nil)
	tokenRepo.On("SaveToken", "dev@example.com", mock.Anything, mock.Anything).Return(nil)

	response, err := h.Login(&Login{Email: "dev@example.com", Password: "Sup3r$ecret"})

	require.NoError(t, err)
	assert.Equal(t, "admin", response.Role)

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(response.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey, nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "dev@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	h, authRepo, tokenRepo := newTestAuthHandler()
	hash, err := bcrypt.GenerateFromPassword([]byte("Sup3r$ecret"), bcrypt.MinCost)
	require.NoError(t, err)
	authRepo.On("GetUserByEmail", "dev@example.com").Return(&auth.User{
		Email:        "dev@example.com",
		PasswordHash: string(hash),
		IsActive:     true,
	}, nil)

	_, err = h.Login(&Login{Email: "dev@example.com", Password: "wrong"})

	require.Error(t, err)
	tokenRepo.AssertNotCalled(t, "SaveToken", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	h, authRepo, _ := newTestAuthHandler()
	hash, err := bcrypt.GenerateFromPassword([]byte("Sup3r$ecret"), bcrypt.MinCost)
	require.NoError(t, err)
	authRepo.On("GetUserByEmail", "dev@example.com").Return(&auth.User{
		Email:        "dev@example.com",
		PasswordHash: string(hash),
		IsActive:     false,
	}, nil)

	_, err = h.Login(&Login{Email: "dev@example.com", Password: "Sup3r$ecret"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not active")
}

func TestLogoutInvalidatesToken(t *testing.T) {
	h, _, tokenRepo := newTestAuthHandler()
	tokenRepo.On("InvalidateToken", "session-token").Return(nil)

	require.NoError(t, h.Logout("session-token"))
	tokenRepo.AssertExpectations(t)
}
