package service

import (
	"context"
	"testing"
	"time"

	entity "leafloop/internal/domain"
	"leafloop/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testSecret        = []byte("test-secret")
	testRefreshSecret = []byte("test-refresh-secret")
)

func newAuthService() (*AuthService, *fakeUserRepo) {
	users := newFakeUserRepo()
	return NewAuthService(users, testSecret, testRefreshSecret, time.Hour), users
}

func registerUser(t *testing.T, svc *AuthService) *entity.User {
	t.Helper()
	user, err := svc.Register(context.Background(), entity.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	return user
}

func TestRegister(t *testing.T) {
	svc, users := newAuthService()

	user := registerUser(t, svc)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "correct horse", user.PasswordHash)
	assert.NotNil(t, users.users[user.ID])
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, users := newAuthService()
	users.createErr = &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}

	_, err := svc.Register(context.Background(), entity.RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "correct horse",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, users := newAuthService()
	users.createErr = &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}

	_, err := svc.Register(context.Background(), entity.RegisterInput{
		Username: "alice2", Email: "alice@example.com", Password: "correct horse",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthService()
	registerUser(t, svc)

	resp, err := svc.Login(context.Background(), entity.LoginInput{Username: "alice", Password: "correct horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "alice", resp.User.Username)

	claims, err := utils.ValidateToken(resp.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthService()
	registerUser(t, svc)

	_, err := svc.Login(context.Background(), entity.LoginInput{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.Login(context.Background(), entity.LoginInput{Username: "nobody", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, users := newAuthService()
	user := registerUser(t, svc)
	users.users[user.ID].IsActive = false

	_, err := svc.Login(context.Background(), entity.LoginInput{Username: "alice", Password: "correct horse"})
	assert.ErrorIs(t, err, ErrInactiveAccount)
}

func TestRefresh(t *testing.T) {
	svc, _ := newAuthService()
	registerUser(t, svc)

	login, err := svc.Login(context.Background(), entity.LoginInput{Username: "alice", Password: "correct horse"})
	require.NoError(t, err)

	resp, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestRefreshGarbageToken(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.Refresh(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefreshWrongSecret(t *testing.T) {
	svc, _ := newAuthService()
	user := registerUser(t, svc)

	foreign, err := utils.GenerateRefreshToken(user, []byte("some other secret"))
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), foreign)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestMe(t *testing.T) {
	svc, _ := newAuthService()
	user := registerUser(t, svc)

	resp, err := svc.Me(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "alice@example.com", resp.Email)

	_, err = svc.Me(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
