package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fintrack/fintrack/backend/go-services/internal/users"
	"github.com/fintrack/fintrack/backend/go-services/pkg/logger"
	"github.com/fintrack/fintrack/backend/go-services/pkg/metrics"
	"github.com/fintrack/fintrack/backend/go-services/pkg/middleware"
)

// RegisterRequest is the signup payload
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthHandler holds dependencies
type AuthHandler struct {
	usersSvc *users.Service
}

func NewAuthHandler(u *users.Service) *AuthHandler {
	return &AuthHandler{usersSvc: u}
}

// Register routes under /api/auth. The dashboard is the only protected one.
func (h *AuthHandler) Register(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	a := rg.Group("/api/auth")
	a.POST("/register", h.RegisterUser)
	a.POST("/login", h.Login)
	a.GET("/dashboard", auth, h.Dashboard)
}

// RegisterUser creates an account and returns the assigned id
func (h *AuthHandler) RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.usersSvc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		var ve *users.ValidationError
		switch {
		case errors.As(err, &ve):
			metrics.RegisterAttempts.WithLabelValues("validation_error").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Reason})
		case errors.Is(err, users.ErrDuplicateEmail):
			metrics.RegisterAttempts.WithLabelValues("duplicate_email").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already in use"})
		default:
			// store failures stay server-side; the client gets an opaque 500
			logger.Errorf("registration failed: %v", err)
			metrics.RegisterAttempts.WithLabelValues("store_error").Inc()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error registering user"})
		}
		return
	}

	metrics.RegisterAttempts.WithLabelValues("success").Inc()
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "userId": id})
}

// Login checks credentials and returns a signed token plus a user summary
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, summary, err := h.usersSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var ve *users.ValidationError
		switch {
		case errors.As(err, &ve):
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Reason})
		case errors.Is(err, users.ErrInvalidCredentials):
			// same body for unknown email and wrong password
			metrics.LoginAttempts.WithLabelValues("invalid_credentials").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
		default:
			logger.Errorf("login failed: %v", err)
			metrics.LoginAttempts.WithLabelValues("store_error").Inc()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error during login"})
		}
		return
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "token": token, "user": summary})
}

// Dashboard returns the profile for the identity the middleware verified
func (h *AuthHandler) Dashboard(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}

	summary, err := h.usersSvc.Profile(c.Request.Context(), ident.UserID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		logger.Errorf("profile lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, summary)
}
