package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"callme/internal/auth"
	"callme/internal/models"

	"github.com/gin-gonic/gin"
)

// Login authenticates against the mock identity provider and sets the guard
// cookie.
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid input: %s", err.Error())})
		return
	}

	user, err := h.identity.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		handleError(c, http.StatusInternalServerError, "Login failed", err)
		return
	}

	auth.SetAuthCookie(c, user.ID)
	log.Printf("login: %s from %s", user.Email, clientIP(c))
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Register creates a new account and logs it in.
func (h *Handler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid input: %s", err.Error())})
		return
	}

	user, err := h.identity.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		handleError(c, http.StatusInternalServerError, "Registration failed", err)
		return
	}

	auth.SetAuthCookie(c, user.ID)
	log.Printf("register: %s from %s", user.Email, clientIP(c))
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// Logout clears the session and the guard cookie.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.identity.Logout(); err != nil {
		log.Printf("Warning: failed to clear session: %v", err)
	}
	auth.ClearAuthCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "logout successful"})
}

// Me returns the currently authenticated user
func (h *Handler) Me(c *gin.Context) {
	user, err := h.identity.CurrentUser()
	if err != nil {
		if errors.Is(err, auth.ErrNotAuthenticated) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		handleError(c, http.StatusInternalServerError, "Failed to load user", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfile patches the current user's name/avatar.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid input: %s", err.Error())})
		return
	}

	user, err := h.identity.UpdateProfile(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrNotAuthenticated) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		handleError(c, http.StatusInternalServerError, "Failed to update profile", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
