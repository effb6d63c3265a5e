package auth

import "github.com/gin-gonic/gin"

const (
	// AuthCookieName is the marker cookie read by the access guard.
	AuthCookieName = "callme-auth"
	// cookieMaxAge is 30 days, matching the session record's intended life.
	cookieMaxAge = 30 * 24 * 60 * 60
)

// SetAuthCookie sets the guard cookie carrying the user id.
func SetAuthCookie(c *gin.Context, userID string) {
	secure := gin.Mode() != gin.DebugMode
	c.SetCookie(AuthCookieName, userID, cookieMaxAge, "/", "", secure, true)
}

// ClearAuthCookie expires the guard cookie.
func ClearAuthCookie(c *gin.Context) {
	c.SetCookie(AuthCookieName, "", -1, "/", "", false, true)
}

// IsAuthenticated reports whether the request carries a guard cookie.
func IsAuthenticated(c *gin.Context) bool {
	value, err := c.Cookie(AuthCookieName)
	return err == nil && value != ""
}
