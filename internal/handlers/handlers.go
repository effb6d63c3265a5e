package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"callme/internal/api"
	"callme/internal/auth"
	"callme/internal/reminders"
	"callme/internal/services"

	"github.com/gin-gonic/gin"
)

// Handler bundles the services used by the HTTP layer. Everything is passed
// in explicitly so tests can wire fakes.
type Handler struct {
	identity *auth.Service
	syncer   *reminders.Syncer
	notifier *services.Notifier
}

// New creates the handler set.
func New(identity *auth.Service, syncer *reminders.Syncer, notifier *services.Notifier) *Handler {
	return &Handler{identity: identity, syncer: syncer, notifier: notifier}
}

// handleError provides a consistent way to handle and log errors
func handleError(c *gin.Context, status int, message string, err error) {
	log.Printf("Error: %v", err)
	c.JSON(status, gin.H{"error": message})
}

// handleAPIError maps a remote-client failure onto this server's response:
// server-side rejections pass their status through, connectivity failures
// become 503, anything else 502.
func handleAPIError(c *gin.Context, err error) {
	log.Printf("Error: %v", err)
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status >= 400 && apiErr.Status < 600 {
			c.JSON(apiErr.Status, gin.H{"error": apiErr.Message})
			return
		}
		if api.IsNetworkError(err) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": apiErr.Message})
			return
		}
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": "reminders API request failed"})
}

// clientIP extracts the real client IP, preferring proxy headers.
func clientIP(c *gin.Context) string {
	if ip := c.GetHeader("X-Real-IP"); ip != "" {
		return ip
	}
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		if parts := strings.Split(xff, ","); len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	return c.ClientIP()
}

// HomeHandler handles requests to the root path "/"
func (h *Handler) HomeHandler(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to CallMe Reminders!")
}

// HealthHandler is a simple health check endpoint
func (h *Handler) HealthHandler(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// LoginPage serves the login screen
func (h *Handler) LoginPage(c *gin.Context) {
	from := c.Query("from")
	if from == "" {
		from = "/dashboard"
	}
	c.String(http.StatusOK, "Log in to continue. You will be returned to %s.", from)
}

// SignupPage serves the registration screen
func (h *Handler) SignupPage(c *gin.Context) {
	c.String(http.StatusOK, "Create your CallMe account.")
}

// DashboardPage serves the dashboard shell for authenticated users
func (h *Handler) DashboardPage(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to your dashboard, user %s!", c.GetString("user_id"))
}
