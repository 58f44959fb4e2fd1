package interceptors

import (
	"net/http"

	"github.com/Kotlang/leadsGo/auth"
	"github.com/Kotlang/leadsGo/db"
	"github.com/Kotlang/leadsGo/models"
	"github.com/gin-gonic/gin"
)

const userContextKey = "authenticatedUser"

// SessionAuth guards protected routes. It extracts the session cookie,
// validates the token and resolves the subject to a stored user. Requests
// fail with 401 when the cookie is absent, the token invalid or expired,
// or the account no longer exists.
func SessionAuth(users db.UserRepositoryInterface, accessSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(auth.SessionCookieName)
		if err != nil || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
			return
		}

		claims, err := auth.ParseSessionToken(accessSecret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
			return
		}

		user, err := users.FindOneById(c.Request.Context(), claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the user resolved by SessionAuth for this request.
func CurrentUser(c *gin.Context) (*models.UserModel, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}

	user, ok := value.(*models.UserModel)
	return user, ok
}
