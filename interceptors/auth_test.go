package interceptors_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Kotlang/leadsGo/auth"
	"github.com/Kotlang/leadsGo/interceptors"
	"github.com/Kotlang/leadsGo/mocks"
	"github.com/Kotlang/leadsGo/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func protectedRouter(users *mocks.UserRepositoryMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", interceptors.SessionAuth(users, testSecret), func(c *gin.Context) {
		user, ok := interceptors.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "no user in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": user.UserId, "email": user.Email})
	})
	return router
}

func registeredUser(t *testing.T, users *mocks.UserRepositoryMock) *models.UserModel {
	t.Helper()
	user := &models.UserModel{Name: "A", Email: "a@x.com", Password: "hash"}
	assert.NoError(t, users.Save(context.Background(), user))
	return user
}

func sessionCookie(t *testing.T, userId string) *http.Cookie {
	t.Helper()
	token, err := auth.CreateSessionToken(testSecret, userId)
	assert.NoError(t, err)
	return &http.Cookie{Name: auth.SessionCookieName, Value: token}
}

func TestSessionAuth_NoCookie(t *testing.T) {
	router := protectedRouter(mocks.NewUserRepositoryMock())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Not authenticated"}`, w.Body.String())
}

func TestSessionAuth_InvalidToken(t *testing.T) {
	router := protectedRouter(mocks.NewUserRepositoryMock())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "garbage"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionAuth_ValidSession(t *testing.T) {
	users := mocks.NewUserRepositoryMock()
	user := registeredUser(t, users)
	router := protectedRouter(users)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(sessionCookie(t, user.UserId))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.UserId)
	assert.Contains(t, w.Body.String(), "a@x.com")
}

func TestSessionAuth_UserNoLongerExists(t *testing.T) {
	users := mocks.NewUserRepositoryMock()
	user := registeredUser(t, users)
	router := protectedRouter(users)

	// valid token, but the account behind it is gone
	cookie := sessionCookie(t, user.UserId)
	users.Remove(user.UserId)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(cookie)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionAuth_TokenForOtherSecret(t *testing.T) {
	users := mocks.NewUserRepositoryMock()
	user := registeredUser(t, users)
	router := protectedRouter(users)

	token, err := auth.CreateSessionToken("rogue-secret", user.UserId)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
