package service

import (
	"errors"
	"net/http"

	"github.com/Kotlang/leadsGo/auth"
	"github.com/Kotlang/leadsGo/db"
	"github.com/Kotlang/leadsGo/interceptors"
	"github.com/Kotlang/leadsGo/logger"
	"github.com/Kotlang/leadsGo/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users        db.UserRepositoryInterface
	accessSecret string
	cookies      auth.CookieSettings
}

func ProvideAuthService(users db.UserRepositoryInterface, accessSecret string, cookies auth.CookieSettings) *AuthService {
	return &AuthService{
		users:        users,
		accessSecret: accessSecret,
		cookies:      cookies,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileResponse struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *AuthService) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	// only the hash is ever stored
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Error hashing password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	user := &models.UserModel{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
	}

	if err := s.users.Save(c.Request.Context(), user); err != nil {
		if errors.Is(err, db.ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
			return
		}

		validationErr := &models.ValidationError{}
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"message": validationErr.Reason})
			return
		}

		logger.Error("Error saving user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	if !s.issueSession(c, user.UserId) {
		return
	}

	c.JSON(http.StatusCreated, profileResponse{Id: user.UserId, Name: user.Name, Email: user.Email})
}

func (s *AuthService) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	// a missing account and a wrong password are indistinguishable
	user, err := s.users.FindOneByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			logger.Error("Error fetching user", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid Credentials"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid Credentials"})
		return
	}

	if !s.issueSession(c, user.UserId) {
		return
	}

	c.JSON(http.StatusOK, profileResponse{Id: user.UserId, Name: user.Name, Email: user.Email})
}

// Logout clears the cookie and succeeds regardless of session state.
func (s *AuthService) Logout(c *gin.Context) {
	s.cookies.ClearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (s *AuthService) Me(c *gin.Context) {
	user, ok := interceptors.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
		return
	}

	c.JSON(http.StatusOK, profileResponse{Id: user.UserId, Name: user.Name, Email: user.Email})
}

func (s *AuthService) issueSession(c *gin.Context, userId string) bool {
	token, err := auth.CreateSessionToken(s.accessSecret, userId)
	if err != nil {
		logger.Error("Error signing session token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return false
	}

	s.cookies.SetSessionCookie(c, token)
	return true
}
