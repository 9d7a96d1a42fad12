package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sursrinu/artandcraft-platform/internal/apperr"
	"github.com/sursrinu/artandcraft-platform/internal/transport"
)

func TestAdminUsers_RequiresAdmin(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, token := env.seedBuyerUser(t)

	rec := env.do(t, http.MethodGet, "/api/v1/admin/users", token, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminUsers_ListAndStatusUpdate(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	user, _ := env.seedBuyerUser(t)
	adminToken := env.seedAdmin(t)

	rec := env.do(t, http.MethodGet, "/api/v1/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := env.decode(t, rec)
	require.Equal(t, true, body["success"])
	users := body["data"].(map[string]interface{})["users"].([]interface{})
	require.Len(t, users, 2)

	inactive := false
	rec = env.do(t, http.MethodPut, fmt.Sprintf("/api/v1/admin/users/%d/status", user.ID),
		adminToken, transport.UpdateUserStatusRequest{IsActive: &inactive})
	require.Equal(t, http.StatusOK, rec.Code)

	body = env.decode(t, rec)
	assert.Equal(t, false, body["data"].(map[string]interface{})["is_active"])

	fresh, err := env.Repo.UserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.False(t, fresh.IsActive)

	// missing is_active is rejected
	rec = env.do(t, http.MethodPut, fmt.Sprintf("/api/v1/admin/users/%d/status", user.ID),
		adminToken, map[string]interface{}{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body = env.decode(t, rec)
	assert.Equal(t, apperr.CodeValidation, body["error"])
}

func TestAuthorizationHeaderRequiresBearerScheme(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, token := env.seedBuyerUser(t)

	// a valid token without the Bearer prefix is a malformed header
	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
	req.Header.Set(echo.HeaderAuthorization, token)
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	body := env.decode(t, rec)
	assert.Equal(t, apperr.CodeUnauthorized, body["error"])

	// the same token with the proper scheme passes
	rec2 := env.do(t, http.MethodGet, "/api/v1/notifications", token, nil)
	require.Equal(t, http.StatusOK, rec2.Code)
}
