package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"parley/internal/app/user"
	"parley/internal/pkg/auth/jwt"
	"parley/internal/pkg/errs"
)

const testSecret = "test_secret_key"

type MockUserSource struct {
	mock.Mock
}

func (m *MockUserSource) GetUserByID(ctx context.Context, id string) (user.Identity, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.Identity), args.Error(1)
}

func TestVerifyResolvesIdentity(t *testing.T) {
	users := new(MockUserSource)
	users.On("GetUserByID", mock.Anything, "user-123").
		Return(user.Identity{ID: "user-123", Username: "alice"}, nil)

	token, err := jwt.GenerateToken("user-123", testSecret, jwt.TokenExpiration)
	require.NoError(t, err)

	v := NewVerifier(users, testSecret)
	ident, customErr := v.Verify(context.Background(), token)
	require.Nil(t, customErr)

	assert.Equal(t, user.Identity{ID: "user-123", Username: "alice"}, ident)
}

func TestVerifyMissingCredential(t *testing.T) {
	v := NewVerifier(new(MockUserSource), testSecret)

	_, customErr := v.Verify(context.Background(), "")
	require.NotNil(t, customErr)
	assert.Equal(t, errs.ErrTokenMissing, customErr.Code)
}

func TestVerifyBadSignature(t *testing.T) {
	token, err := jwt.GenerateToken("user-123", "some_other_secret", jwt.TokenExpiration)
	require.NoError(t, err)

	v := NewVerifier(new(MockUserSource), testSecret)
	_, customErr := v.Verify(context.Background(), token)
	require.NotNil(t, customErr)
	assert.Equal(t, errs.ErrTokenInvalid, customErr.Code)
}

func TestVerifyExpiredCredential(t *testing.T) {
	token, err := jwt.GenerateToken("user-123", testSecret, -time.Minute)
	require.NoError(t, err)

	v := NewVerifier(new(MockUserSource), testSecret)
	_, customErr := v.Verify(context.Background(), token)
	require.NotNil(t, customErr)
	assert.Equal(t, errs.ErrTokenExpired, customErr.Code)
}

func TestVerifyUnknownUser(t *testing.T) {
	users := new(MockUserSource)
	users.On("GetUserByID", mock.Anything, "user-gone").
		Return(user.Identity{}, pgx.ErrNoRows)

	token, err := jwt.GenerateToken("user-gone", testSecret, jwt.TokenExpiration)
	require.NoError(t, err)

	v := NewVerifier(users, testSecret)
	_, customErr := v.Verify(context.Background(), token)
	require.NotNil(t, customErr)
	assert.Equal(t, errs.ErrUserNotFound, customErr.Code)
}

func TestVerifyStoreFailure(t *testing.T) {
	users := new(MockUserSource)
	users.On("GetUserByID", mock.Anything, "user-123").
		Return(user.Identity{}, errors.New("connection refused"))

	token, err := jwt.GenerateToken("user-123", testSecret, jwt.TokenExpiration)
	require.NoError(t, err)

	v := NewVerifier(users, testSecret)
	_, customErr := v.Verify(context.Background(), token)
	require.NotNil(t, customErr)
	assert.Equal(t, errs.ErrUnknown, customErr.Code)
}
