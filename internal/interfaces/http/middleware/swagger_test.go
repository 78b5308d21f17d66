package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// docsRouter mounts SwaggerProtection in front of a stub docs handler.
func docsRouter(cfg SwaggerConfig, jwtMiddleware gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.GET("/swagger/*any", SwaggerProtection(cfg, jwtMiddleware), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "swagger"})
	})
	return router
}

func requestDocs(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/swagger/index.html", nil)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSwaggerProtection(t *testing.T) {
	t.Run("disabled returns 404", func(t *testing.T) {
		router := docsRouter(SwaggerConfig{Enabled: false}, nil)

		w := requestDocs(router, "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "not_found")
	})

	t.Run("enabled without restrictions serves docs", func(t *testing.T) {
		router := docsRouter(SwaggerConfig{Enabled: true}, nil)

		w := requestDocs(router, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("whitelisted IP is allowed", func(t *testing.T) {
		router := docsRouter(SwaggerConfig{
			Enabled:    true,
			AllowedIPs: []string{"127.0.0.1"},
		}, nil)

		w := requestDocs(router, "127.0.0.1:12345")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unlisted IP is rejected", func(t *testing.T) {
		router := docsRouter(SwaggerConfig{
			Enabled:    true,
			AllowedIPs: []string{"10.0.0.1"},
		}, nil)

		w := requestDocs(router, "192.168.1.1:12345")

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "forbidden")
	})

	t.Run("CIDR range matches", func(t *testing.T) {
		router := docsRouter(SwaggerConfig{
			Enabled:    true,
			AllowedIPs: []string{"10.0.0.0/8"},
		}, nil)

		assert.Equal(t, http.StatusOK, requestDocs(router, "10.50.100.200:12345").Code)
		assert.Equal(t, http.StatusForbidden, requestDocs(router, "192.168.1.1:12345").Code)
	})

	t.Run("auth middleware rejection aborts", func(t *testing.T) {
		deny := func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		}
		router := docsRouter(SwaggerConfig{Enabled: true, RequireAuth: true}, deny)

		w := requestDocs(router, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("auth middleware success passes through", func(t *testing.T) {
		allow := func(c *gin.Context) {
			c.Set("user_id", "test-user")
			c.Next()
		}
		router := docsRouter(SwaggerConfig{Enabled: true, RequireAuth: true}, allow)

		w := requestDocs(router, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("IP check runs before auth", func(t *testing.T) {
		allow := func(c *gin.Context) {
			c.Set("user_id", "test-user")
			c.Next()
		}
		router := docsRouter(SwaggerConfig{
			Enabled:     true,
			RequireAuth: true,
			AllowedIPs:  []string{"127.0.0.1"},
		}, allow)

		assert.Equal(t, http.StatusOK, requestDocs(router, "127.0.0.1:12345").Code)
		assert.Equal(t, http.StatusForbidden, requestDocs(router, "192.168.1.1:12345").Code)
	})
}

func TestIPWhitelist(t *testing.T) {
	tests := []struct {
		name    string
		ip      string
		entries []string
		want    bool
	}{
		{"exact IP match", "192.168.1.1", []string{"192.168.1.1"}, true},
		{"no match", "192.168.1.2", []string{"192.168.1.1"}, false},
		{"CIDR match", "10.0.0.5", []string{"10.0.0.0/8"}, true},
		{"CIDR no match", "11.0.0.5", []string{"10.0.0.0/8"}, false},
		{"localhost IPv4", "127.0.0.1", []string{"127.0.0.1"}, true},
		{"IPv6 localhost", "::1", []string{"::1"}, true},
		{"mixed entries", "172.16.4.9", []string{"127.0.0.1", "172.16.0.0/12"}, true},
		{"malformed entry ignored", "192.168.1.1", []string{"not-an-ip", "192.168.1.1"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wl := parseIPWhitelist(tt.entries)
			assert.Equal(t, tt.want, wl.allows(net.ParseIP(tt.ip)))
		})
	}

	t.Run("nil IP is never allowed", func(t *testing.T) {
		wl := parseIPWhitelist([]string{"127.0.0.1", "10.0.0.0/8"})
		assert.False(t, wl.allows(nil))
	})
}
