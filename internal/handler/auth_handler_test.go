package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kawanlib/internal/model"
	"kawanlib/internal/response"
	"kawanlib/internal/service"
	"kawanlib/internal/utils"
)

// fakeAuthService returns canned results for handler tests.
type fakeAuthService struct {
	signupUser *model.User
	signupErr  error

	loginUser    *model.User
	loginAccess  string
	loginRefresh string
	loginErr     error

	verifyUser   *model.User
	verifyAccess string
	verifyErr    error

	logoutErr    error
	logoutCalled bool
}

func (f *fakeAuthService) Signup(context.Context, model.SignupRequest) (*model.User, error) {
	return f.signupUser, f.signupErr
}

func (f *fakeAuthService) Login(context.Context, string, string) (*model.User, string, string, error) {
	return f.loginUser, f.loginAccess, f.loginRefresh, f.loginErr
}

func (f *fakeAuthService) Verify(context.Context, string) (*model.User, string, error) {
	return f.verifyUser, f.verifyAccess, f.verifyErr
}

func (f *fakeAuthService) Logout(context.Context, string) error {
	f.logoutCalled = true
	return f.logoutErr
}

func newAuthRouter(svc service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	issuer := utils.NewTokenIssuer("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	router := gin.New()
	NewAuthHandler(svc, issuer).RegisterAuthRoutes(router.Group("/api/v1"))
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func refreshCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == RefreshCookieName {
			return c
		}
	}
	return nil
}

func TestAuthHandler_Signup(t *testing.T) {
	svc := &fakeAuthService{
		signupUser: &model.User{ID: 1, Name: "Budi Santoso", Username: "budisantoso", Role: model.RoleUser},
	}
	router := newAuthRouter(svc)

	w := postJSON(router, "/api/v1/auth/signup",
		`{"name":"Budi Santoso","username":"budisantoso","password":"password123","confirmPassword":"password123"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, response.StatusSuccess, env.Status)
	assert.Equal(t, http.StatusCreated, env.Code)
}

func TestAuthHandler_Signup_PasswordMismatch(t *testing.T) {
	router := newAuthRouter(&fakeAuthService{})

	w := postJSON(router, "/api/v1/auth/signup",
		`{"name":"Budi Santoso","username":"budisantoso","password":"password123","confirmPassword":"different456"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Signup_UsernameTaken(t *testing.T) {
	router := newAuthRouter(&fakeAuthService{signupErr: service.ErrUsernameTaken})

	w := postJSON(router, "/api/v1/auth/signup",
		`{"name":"Budi Santoso","username":"budisantoso","password":"password123","confirmPassword":"password123"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, response.StatusError, env.Status)
	assert.Equal(t, "Username already taken", env.Message)
}

func TestAuthHandler_Login_SetsCookieAndReturnsAccessToken(t *testing.T) {
	svc := &fakeAuthService{
		loginUser:    &model.User{ID: 1, Name: "Budi Santoso", Username: "budisantoso", Role: model.RoleAdmin},
		loginAccess:  "access-token-value",
		loginRefresh: "refresh-token-value",
	}
	router := newAuthRouter(svc)

	w := postJSON(router, "/api/v1/auth/login", `{"username":"budisantoso","password":"password123"}`)

	assert.Equal(t, http.StatusOK, w.Code)

	// The body carries the access token and nothing else about the
	// session; the refresh token lives only in the cookie
	body := w.Body.String()
	assert.Contains(t, body, "access-token-value")
	assert.NotContains(t, body, "refresh-token-value")
	assert.NotContains(t, body, "userId")

	cookie := refreshCookie(w)
	require.NotNil(t, cookie)
	assert.Equal(t, "refresh-token-value", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteNoneMode, cookie.SameSite)
	assert.Equal(t, int((7 * 24 * time.Hour).Seconds()), cookie.MaxAge)
}

func TestAuthHandler_Login_UnknownUsername(t *testing.T) {
	router := newAuthRouter(&fakeAuthService{loginErr: service.ErrUserNotFound})

	w := postJSON(router, "/api/v1/auth/login", `{"username":"nobody","password":"password123"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, response.StatusError, env.Status)
	assert.Equal(t, "Username not found", env.Message)
	assert.Nil(t, refreshCookie(w))
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	router := newAuthRouter(&fakeAuthService{loginErr: service.ErrIncorrectPassword})

	w := postJSON(router, "/api/v1/auth/login", `{"username":"budisantoso","password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, http.StatusUnauthorized, env.Code)
	assert.Equal(t, "Incorrect password", env.Message)
}

func TestAuthHandler_Verify(t *testing.T) {
	svc := &fakeAuthService{
		verifyUser:   &model.User{ID: 1, Name: "Budi Santoso", Username: "budisantoso", Role: model.RoleUser},
		verifyAccess: "fresh-access-token",
	}
	router := newAuthRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/verify", nil)
	req.AddCookie(&http.Cookie{Name: RefreshCookieName, Value: "refresh-token-value"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fresh-access-token")
}

func TestAuthHandler_Verify_NoCookie(t *testing.T) {
	router := newAuthRouter(&fakeAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/verify", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, response.StatusError, env.Status)
	assert.NotEmpty(t, env.Message)
}

func TestAuthHandler_Verify_InvalidSession(t *testing.T) {
	router := newAuthRouter(&fakeAuthService{verifyErr: service.ErrInvalidSession})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/verify", nil)
	req.AddCookie(&http.Cookie{Name: RefreshCookieName, Value: "stale-token"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, http.StatusUnauthorized, env.Code)
	assert.Equal(t, "Invalid or expired session", env.Message)
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	svc := &fakeAuthService{}
	router := newAuthRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: RefreshCookieName, Value: "refresh-token-value"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.logoutCalled)

	cookie := refreshCookie(w)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
}

func TestAuthHandler_Logout_NoCookie(t *testing.T) {
	router := newAuthRouter(&fakeAuthService{})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/auth/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, response.StatusError, env.Status)
	assert.Equal(t, "Session not found", env.Message)
}

// A second logout finds no stored session: it reports 401 rather than
// pretending a session was ended, and clears the stale cookie.
func TestAuthHandler_Logout_StaleSession(t *testing.T) {
	router := newAuthRouter(&fakeAuthService{logoutErr: service.ErrInvalidSession})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: RefreshCookieName, Value: "already-cleared"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "Invalid or expired session", env.Message)

	cookie := refreshCookie(w)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
}
