package auth

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// RequireAuth guards page routes: unauthenticated requests are redirected to
// the login screen with the originally requested path preserved as a return
// target.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAuthenticated(c) {
			c.Redirect(http.StatusTemporaryRedirect,
				"/login?from="+url.QueryEscape(c.Request.URL.Path))
			c.Abort()
			return
		}
		userID, _ := c.Cookie(AuthCookieName)
		c.Set("user_id", userID)
		c.Next()
	}
}

// RedirectIfAuthenticated sends already-authenticated users away from the
// login/signup screens toward the dashboard.
func RedirectIfAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsAuthenticated(c) {
			c.Redirect(http.StatusTemporaryRedirect, "/dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAuthAPI guards JSON endpoints, answering 401 instead of redirecting.
func RequireAuthAPI() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAuthenticated(c) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}
		userID, _ := c.Cookie(AuthCookieName)
		c.Set("user_id", userID)
		c.Next()
	}
}
