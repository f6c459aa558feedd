package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-floor/models"
)

func TestLoginAndProfile(t *testing.T) {
	s := setupTestServer(t)
	token := s.login("maria@floor.local")

	w, env := s.do(http.MethodGet, "/admin/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := decode[models.User](t, env)
	assert.Equal(t, "Maria", user.Name)
	assert.Equal(t, models.RoleStaff, user.Role)
	assert.NotContains(t, string(env.Data), "password")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	s := setupTestServer(t)

	w, env := s.do(http.MethodPost, "/login", "", map[string]string{"email": "maria@floor.local", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, env.Status)
	assert.Equal(t, "invalid credentials", env.Message)

	w, _ = s.do(http.MethodPost, "/login", "", map[string]string{"email": "nobody@floor.local", "password": "secret123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(http.MethodPost, "/login", "", map[string]string{"email": "maria@floor.local"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	s := setupTestServer(t)

	w, _ := s.do(http.MethodGet, "/admin/tables", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(http.MethodGet, "/admin/tables", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterIsAdminOnly(t *testing.T) {
	s := setupTestServer(t)
	admin := s.login("admin@floor.local")
	staff := s.login("maria@floor.local")

	body := map[string]string{"name": "Ana", "email": "ana@floor.local", "password": "clean123", "role": "cleaner"}

	w, _ := s.do(http.MethodPost, "/admin/users", staff, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(http.MethodPost, "/admin/users", admin, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, _ = s.do(http.MethodPost, "/admin/users", admin, body)
	assert.Equal(t, http.StatusConflict, w.Code)

	body["email"] = "chef@floor.local"
	body["role"] = "chef"
	w, _ = s.do(http.MethodPost, "/admin/users", admin, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPing(t *testing.T) {
	s := setupTestServer(t)
	w, env := s.do(http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", env.Message)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}
