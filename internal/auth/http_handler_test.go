package auth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"librarian/internal/httpx"
	"librarian/internal/platform/crypto"
	"librarian/internal/platform/logging"
	"librarian/internal/testutil"
	"librarian/internal/user"
)

func TestHTTPHandler_Login_JSON(t *testing.T) {
	svc, users, _ := newTestService()
	users.On("GetByEmail", mock.Anything, "ada@example.com").Return(activeUser(t, 3, user.RoleUser), nil)
	h := NewHTTPHandler(svc, logging.Discard())

	w := httptest.NewRecorder()
	h.Login(w, testutil.NewRequest(http.MethodPost, "/auth/login", map[string]string{
		"email":    "ada@example.com",
		"password": "Secret123!",
	}))

	resp := testutil.RecordHTTPResponse(w)
	require.Equal(t, http.StatusCreated, resp.Code)
	assert.Equal(t, "bearer", resp.Data()["token_type"])
	assert.NotEmpty(t, resp.Data()["access_token"])
}

func TestHTTPHandler_Login_Form(t *testing.T) {
	svc, users, _ := newTestService()
	users.On("GetByEmail", mock.Anything, "ada@example.com").Return(activeUser(t, 3, user.RoleUser), nil)
	h := NewHTTPHandler(svc, logging.Discard())

	form := url.Values{"username": {"ada@example.com"}, "password": {"Secret123!"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.Login(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestHTTPHandler_Login_BadCredentials(t *testing.T) {
	svc, users, _ := newTestService()
	users.On("GetByEmail", mock.Anything, "ada@example.com").Return(activeUser(t, 3, user.RoleUser), nil)
	h := NewHTTPHandler(svc, logging.Discard())

	w := httptest.NewRecorder()
	h.Login(w, testutil.NewRequest(http.MethodPost, "/auth/login", map[string]string{
		"email":    "ada@example.com",
		"password": "nope",
	}))

	resp := testutil.RecordHTTPResponse(w)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, httpx.CodeUnauthorized, resp.ErrorCode())
}

func TestHTTPHandler_Login_MissingFields(t *testing.T) {
	svc, _, _ := newTestService()
	h := NewHTTPHandler(svc, logging.Discard())

	w := httptest.NewRecorder()
	h.Login(w, testutil.NewRequest(http.MethodPost, "/auth/login", map[string]string{"email": "ada@example.com"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHTTPHandler_Logout(t *testing.T) {
	svc, _, revs := newTestService()
	revs.On("Revoke", mock.Anything, mock.Anything, int64(3), mock.Anything).Return(nil)
	h := NewHTTPHandler(svc, logging.Discard())

	token, _, err := crypto.GenerateToken(testutil.TestSecret, "3", user.RoleUser, time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	h.Logout(w, testutil.NewRequestWithAuth(http.MethodPost, "/auth/logout", nil, token))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	h.Logout(w, testutil.NewRequest(http.MethodPost, "/auth/logout", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
