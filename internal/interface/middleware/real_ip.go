package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

const CtxRealIPKey = "real_ip"

// RealIP stores the client address under CtxRealIPKey. Forwarding headers
// (CF-Connecting-IP, then the left-most X-Forwarded-For entry) are honoured
// only when trustForwarded is set; otherwise gin's ClientIP is used.
func RealIP(trustForwarded bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := ""
		if trustForwarded {
			ip = forwardedIP(c)
		}
		if ip == "" {
			ip = c.ClientIP()
		}
		c.Set(CtxRealIPKey, ip)
		c.Next()
	}
}

func forwardedIP(c *gin.Context) string {
	if ip := net.ParseIP(strings.TrimSpace(c.GetHeader("CF-Connecting-IP"))); ip != nil {
		return ip.String()
	}
	first, _, _ := strings.Cut(c.GetHeader("X-Forwarded-For"), ",")
	if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
		return ip.String()
	}
	return ""
}
