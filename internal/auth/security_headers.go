package auth

import "github.com/gin-gonic/gin"

// SecurityHeaders sets the response headers that keep browsers from
// sniffing, framing or caching API responses.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "no-referrer")
		// JSON only: nothing may load, nothing may embed us.
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		// Responses carry tokens and user data.
		c.Header("Cache-Control", "no-store")

		c.Next()
	}
}
