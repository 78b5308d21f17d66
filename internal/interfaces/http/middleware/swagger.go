package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// SwaggerConfig controls access to the API documentation endpoints.
type SwaggerConfig struct {
	Enabled     bool     // Serve documentation at all; disabled returns 404
	RequireAuth bool     // Gate documentation behind JWT authentication
	AllowedIPs  []string // Client whitelist, single IPs or CIDR ranges; empty allows everyone
}

// ipWhitelist holds pre-parsed whitelist entries so request-time checks
// avoid re-parsing the configured strings.
type ipWhitelist struct {
	ips  []net.IP
	nets []*net.IPNet
}

func parseIPWhitelist(entries []string) ipWhitelist {
	var wl ipWhitelist
	for _, entry := range entries {
		if strings.Contains(entry, "/") {
			if _, network, err := net.ParseCIDR(entry); err == nil {
				wl.nets = append(wl.nets, network)
			}
			continue
		}
		if ip := net.ParseIP(entry); ip != nil {
			wl.ips = append(wl.ips, ip)
		}
	}
	return wl
}

func (wl ipWhitelist) allows(ip net.IP) bool {
	if ip == nil {
		return false
	}
	for _, allowed := range wl.ips {
		if allowed.Equal(ip) {
			return true
		}
	}
	for _, network := range wl.nets {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// SwaggerProtection guards documentation routes. Checks run in order:
// enabled flag, IP whitelist, then JWT when RequireAuth is set. The
// checks compose, so a deployment can require both a trusted network
// and a valid token.
func SwaggerProtection(cfg SwaggerConfig, jwtMiddleware gin.HandlerFunc) gin.HandlerFunc {
	whitelist := parseIPWhitelist(cfg.AllowedIPs)

	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":   "not_found",
				"message": "API documentation is not available",
			})
			return
		}

		if len(cfg.AllowedIPs) > 0 && !whitelist.allows(clientIP(c)) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "Access to API documentation is restricted",
			})
			return
		}

		if cfg.RequireAuth && jwtMiddleware != nil {
			jwtMiddleware(c)
			if c.IsAborted() {
				return
			}
		}

		c.Next()
	}
}

// clientIP resolves the caller's address, preferring gin's ClientIP
// which honors the trusted proxy settings. Falls back to RemoteAddr.
func clientIP(c *gin.Context) net.IP {
	if addr := c.ClientIP(); addr != "" {
		if ip := net.ParseIP(addr); ip != nil {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		host = c.Request.RemoteAddr
	}
	return net.ParseIP(host)
}
