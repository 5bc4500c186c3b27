package middleware

import (
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
)

// extraSecurityHeaders are not covered by gin-contrib/secure.
var extraSecurityHeaders = map[string]string{
	"X-DNS-Prefetch-Control":            "off",
	"X-Permitted-Cross-Domain-Policies": "none",
	"X-XSS-Protection":                  "0",
	"Cross-Origin-Opener-Policy":        "same-origin",
	"Cross-Origin-Resource-Policy":      "same-origin",
	"Origin-Agent-Cluster":              "?1",
}

// SecurityHeaders hardens every response. Content-Security-Policy is left
// unset so the bundled front-end can use inline styles.
func SecurityHeaders() gin.HandlerFunc {
	secureHandler := secure.New(secure.Config{
		CustomFrameOptionsValue: "SAMEORIGIN",
		ContentTypeNosniff:      true,
		ReferrerPolicy:          "no-referrer",
		IENoOpen:                true,
		// Only emitted for TLS requests.
		STSSeconds:           15552000,
		STSIncludeSubdomains: true,
	})

	return func(c *gin.Context) {
		header := c.Writer.Header()
		for name, value := range extraSecurityHeaders {
			header.Set(name, value)
		}
		secureHandler(c)
	}
}
