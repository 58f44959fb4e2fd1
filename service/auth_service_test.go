package service_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Kotlang/leadsGo/auth"
	"github.com/Kotlang/leadsGo/interceptors"
	"github.com/Kotlang/leadsGo/mocks"
	"github.com/Kotlang/leadsGo/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func authTestRouter(users *mocks.UserRepositoryMock) *gin.Engine {
	gin.SetMode(gin.TestMode)

	authService := service.ProvideAuthService(users, testSecret, auth.CookieSettings{})

	router := gin.New()
	router.POST("/auth/register", authService.Register)
	router.POST("/auth/login", authService.Login)
	router.POST("/auth/logout", authService.Logout)
	router.GET("/auth/me", interceptors.SessionAuth(users, testSecret), authService.Me)
	return router
}

func doJSON(router *gin.Engine, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	router.ServeHTTP(w, req)
	return w
}

func sessionCookieFrom(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == auth.SessionCookieName {
			return cookie
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func TestRegister(t *testing.T) {
	router := authTestRouter(mocks.NewUserRepositoryMock())

	w := doJSON(router, http.MethodPost, "/auth/register", `{"name":"A","email":"a@x.com","password":"p1"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"a@x.com"`)
	assert.Contains(t, w.Body.String(), `"name":"A"`)
	assert.NotContains(t, w.Body.String(), "password")

	cookie := sessionCookieFrom(t, w)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.Equal(t, int(auth.SessionDuration.Seconds()), cookie.MaxAge)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	router := authTestRouter(mocks.NewUserRepositoryMock())

	w := doJSON(router, http.MethodPost, "/auth/register", `{"name":"A","email":"a@x.com","password":"p1"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodPost, "/auth/register", `{"name":"B","email":"a@x.com","password":"p2"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"User already exists"}`, w.Body.String())
}

func TestRegister_MissingFields(t *testing.T) {
	router := authTestRouter(mocks.NewUserRepositoryMock())

	w := doJSON(router, http.MethodPost, "/auth/register", `{"email":"a@x.com","password":"p1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	router := authTestRouter(mocks.NewUserRepositoryMock())
	doJSON(router, http.MethodPost, "/auth/register", `{"name":"A","email":"a@x.com","password":"p1"}`)

	w := doJSON(router, http.MethodPost, "/auth/login", `{"email":"a@x.com","password":"p1"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"a@x.com"`)

	cookie := sessionCookieFrom(t, w)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	router := authTestRouter(mocks.NewUserRepositoryMock())
	doJSON(router, http.MethodPost, "/auth/register", `{"name":"A","email":"a@x.com","password":"p1"}`)

	tests := []struct {
		desc string
		body string
	}{
		{desc: "wrong password", body: `{"email":"a@x.com","password":"nope"}`},
		{desc: "unknown email", body: `{"email":"b@x.com","password":"p1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/auth/login", tt.body)

			// same response either way
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"message":"Invalid Credentials"}`, w.Body.String())
		})
	}
}

func TestLogout_ClearsCookie(t *testing.T) {
	router := authTestRouter(mocks.NewUserRepositoryMock())

	// logout needs no valid session
	w := doJSON(router, http.MethodPost, "/auth/logout", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Logged out successfully"}`, w.Body.String())

	cookie := sessionCookieFrom(t, w)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
}

func TestMe(t *testing.T) {
	router := authTestRouter(mocks.NewUserRepositoryMock())

	w := doJSON(router, http.MethodPost, "/auth/register", `{"name":"A","email":"a@x.com","password":"p1"}`)
	cookie := sessionCookieFrom(t, w)

	w = doJSON(router, http.MethodGet, "/auth/me", "", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"a@x.com"`)

	w = doJSON(router, http.MethodGet, "/auth/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
