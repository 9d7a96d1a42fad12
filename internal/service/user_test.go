package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sursrinu/artandcraft-platform/internal/apperr"
)

func TestUserService_UpdateStatus(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &UserService{Repo: r}
	user := seedBuyer(t, r)

	updated, err := svc.UpdateStatus(context.Background(), user.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	updated, err = svc.UpdateStatus(context.Background(), user.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.IsActive)

	_, err = svc.UpdateStatus(context.Background(), 999, false)
	requireCode(t, err, apperr.CodeNotFound)
}

func TestUserService_List(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &UserService{Repo: r}
	for i := 0; i < 3; i++ {
		seedBuyer(t, r)
	}

	users, total, err := svc.List(context.Background(), 0, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, users, 2)
}

func TestAuthService_Login_DisabledAccount(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	authSvc := &AuthService{Repo: r, JWTSecret: []byte("s"), RefreshSecret: []byte("r")}
	userSvc := &UserService{Repo: r}

	user, err := authSvc.Register(context.Background(), "mallory", "mallory@example.com", "password123")
	require.NoError(t, err)

	_, err = authSvc.Login(context.Background(), "mallory", "password123")
	require.NoError(t, err)

	_, err = userSvc.UpdateStatus(context.Background(), user.ID, false)
	require.NoError(t, err)

	_, err = authSvc.Login(context.Background(), "mallory", "password123")
	requireCode(t, err, apperr.CodeUnauthorized)

	// reactivation restores access
	_, err = userSvc.UpdateStatus(context.Background(), user.ID, true)
	require.NoError(t, err)
	_, err = authSvc.Login(context.Background(), "mallory", "password123")
	require.NoError(t, err)
}
