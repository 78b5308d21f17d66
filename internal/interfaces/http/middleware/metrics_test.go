package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// newManualMeter wires a manual-reader meter provider and returns a
// meter plus the reader for collecting recorded data.
func newManualMeter(t *testing.T) (metric.Meter, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(mp)
	t.Cleanup(func() {
		_ = mp.Shutdown(context.Background())
	})

	return mp.Meter("http.server"), reader
}

// requireMetric collects from the reader and returns the named metric,
// failing the test when absent.
func requireMetric(t *testing.T, reader *sdkmetric.ManualReader, name string) metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m
			}
		}
	}
	t.Fatalf("metric %s not recorded", name)
	return metricdata.Metrics{}
}

func requireCounter(t *testing.T, reader *sdkmetric.ManualReader, name string) metricdata.Sum[int64] {
	t.Helper()
	m := requireMetric(t, reader, name)
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "expected Sum data for %s", name)
	return sum
}

func requireHistogram(t *testing.T, reader *sdkmetric.ManualReader, name string) metricdata.Histogram[float64] {
	t.Helper()
	m := requireMetric(t, reader, name)
	hist, ok := m.Data.(metricdata.Histogram[float64])
	require.True(t, ok, "expected Histogram data for %s", name)
	return hist
}

func counterTotal(sum metricdata.Sum[int64]) int64 {
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestHTTPMetrics_NoOpPaths(t *testing.T) {
	tests := []struct {
		name string
		mw   gin.HandlerFunc
	}{
		{"disabled config", HTTPMetrics(HTTPMetricsConfig{})},
		{"nil meter provider", HTTPMetrics(HTTPMetricsConfig{Enabled: true})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(tt.mw)
			router.GET("/test", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"message": "ok"})
			})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/test", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
		})
	}

	t.Run("WithMeter disabled", func(t *testing.T) {
		meter, _ := newManualMeter(t)
		router := gin.New()
		router.Use(HTTPMetricsWithMeter(meter, false))
		router.GET("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "ok"})
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/test", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestHTTPMetricsWithMeter_RequestCounter(t *testing.T) {
	t.Run("counts repeated requests", func(t *testing.T) {
		meter, reader := newManualMeter(t)
		router := gin.New()
		router.Use(HTTPMetricsWithMeter(meter, true))
		router.GET("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "ok"})
		})

		for range 3 {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/test", nil)
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}

		sum := requireCounter(t, reader, "http_server_request_total")
		require.Len(t, sum.DataPoints, 1)
		assert.Equal(t, int64(3), sum.DataPoints[0].Value)
	})

	t.Run("covers every status code and method", func(t *testing.T) {
		meter, reader := newManualMeter(t)
		router := gin.New()
		router.Use(HTTPMetricsWithMeter(meter, true))
		router.GET("/ok", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{}) })
		router.GET("/error", func(c *gin.Context) { c.JSON(http.StatusInternalServerError, gin.H{}) })
		router.POST("/ok", func(c *gin.Context) { c.JSON(http.StatusCreated, gin.H{}) })

		requests := []struct{ method, path string }{
			{http.MethodGet, "/ok"},
			{http.MethodGet, "/ok"},
			{http.MethodGet, "/error"},
			{http.MethodPost, "/ok"},
		}
		for _, r := range requests {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(r.method, r.path, nil)
			router.ServeHTTP(w, req)
		}

		sum := requireCounter(t, reader, "http_server_request_total")
		assert.Equal(t, int64(4), counterTotal(sum))
		// GET /ok, GET /error, POST /ok are distinct label sets.
		assert.Len(t, sum.DataPoints, 3)
	})

	t.Run("records the status code attribute", func(t *testing.T) {
		meter, reader := newManualMeter(t)
		router := gin.New()
		router.Use(HTTPMetricsWithMeter(meter, true))
		router.GET("/test", func(c *gin.Context) {
			c.JSON(http.StatusCreated, gin.H{"message": "ok"})
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/test", nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)

		sum := requireCounter(t, reader, "http_server_request_total")
		require.Len(t, sum.DataPoints, 1)

		found := false
		for _, attr := range sum.DataPoints[0].Attributes.ToSlice() {
			if string(attr.Key) == "http.status_code" {
				assert.Equal(t, int64(http.StatusCreated), attr.Value.AsInt64())
				found = true
			}
		}
		assert.True(t, found, "http.status_code attribute missing")
	})

	t.Run("labels by route pattern not raw path", func(t *testing.T) {
		meter, reader := newManualMeter(t)
		router := gin.New()
		router.Use(HTTPMetricsWithMeter(meter, true))
		router.GET("/api/v1/products/:id", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
		})

		for _, id := range []string{"1", "2", "abc", "xyz"} {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/api/v1/products/"+id, nil)
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}

		sum := requireCounter(t, reader, "http_server_request_total")
		require.Len(t, sum.DataPoints, 1, "all IDs must fold into one series")
		assert.Equal(t, int64(4), sum.DataPoints[0].Value)

		found := false
		for _, attr := range sum.DataPoints[0].Attributes.ToSlice() {
			if string(attr.Key) == "http.route" {
				assert.Equal(t, "/api/v1/products/:id", attr.Value.AsString())
				found = true
			}
		}
		assert.True(t, found, "http.route attribute missing")
	})
}

func TestHTTPMetricsWithMeter_Histograms(t *testing.T) {
	t.Run("duration", func(t *testing.T) {
		meter, reader := newManualMeter(t)
		router := gin.New()
		router.Use(HTTPMetricsWithMeter(meter, true))
		router.GET("/slow", func(c *gin.Context) {
			time.Sleep(50 * time.Millisecond)
			c.JSON(http.StatusOK, gin.H{"message": "ok"})
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/slow", nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		hist := requireHistogram(t, reader, "http_server_request_duration_seconds")
		require.Len(t, hist.DataPoints, 1)
		assert.Greater(t, hist.DataPoints[0].Sum, 0.05)
	})

	t.Run("request size", func(t *testing.T) {
		meter, reader := newManualMeter(t)
		router := gin.New()
		router.Use(HTTPMetricsWithMeter(meter, true))
		router.POST("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "ok"})
		})

		body := strings.NewReader(`{"data": "test body content"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/test", body)
		req.Header.Set("Content-Type", "application/json")
		req.ContentLength = int64(body.Len())
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		hist := requireHistogram(t, reader, "http_server_request_size_bytes")
		require.Len(t, hist.DataPoints, 1)
		assert.Greater(t, hist.DataPoints[0].Sum, float64(0))
	})

	t.Run("response size", func(t *testing.T) {
		meter, reader := newManualMeter(t)
		router := gin.New()
		router.Use(HTTPMetricsWithMeter(meter, true))
		router.GET("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "this is a response body"})
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/test", nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		hist := requireHistogram(t, reader, "http_server_response_size_bytes")
		require.Len(t, hist.DataPoints, 1)
		assert.Greater(t, hist.DataPoints[0].Sum, float64(0))
	})
}

func TestHTTPMetricsWithMeter_ActiveRequests(t *testing.T) {
	meter, reader := newManualMeter(t)
	router := gin.New()
	router.Use(HTTPMetricsWithMeter(meter, true))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// The gauge returns to zero once the request completes.
	sum := requireCounter(t, reader, "http_server_active_requests")
	if len(sum.DataPoints) > 0 {
		assert.Equal(t, int64(0), sum.DataPoints[0].Value)
	}
}

func TestGetRoutePattern(t *testing.T) {
	t.Run("matched route reports the pattern", func(t *testing.T) {
		router := gin.New()
		router.GET("/api/v1/products/:id", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"route": getRoutePattern(c)})
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/products/123", nil)
		router.ServeHTTP(w, req)

		assert.Contains(t, w.Body.String(), "/api/v1/products/:id")
	})

	t.Run("unmatched route reports unknown", func(t *testing.T) {
		router := gin.New()
		router.Use(func(c *gin.Context) {
			c.JSON(http.StatusNotFound, gin.H{"route": getRoutePattern(c)})
			c.Abort()
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/nonexistent", nil)
		router.ServeHTTP(w, req)

		assert.Contains(t, w.Body.String(), "unknown")
	})
}

func TestGetRequestSize(t *testing.T) {
	tests := []struct {
		name          string
		contentLength int64
		want          int64
	}{
		{"positive content length", 100, 100},
		{"zero content length", 0, 0},
		{"unknown content length", -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got int64
			router := gin.New()
			router.POST("/test", func(c *gin.Context) {
				got = getRequestSize(c)
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPost, "/test", nil)
			req.ContentLength = tt.contentLength
			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHTTPMetricsStatusGroup(t *testing.T) {
	tests := []struct {
		statusCode int
		want       string
	}{
		{200, "2xx"},
		{201, "2xx"},
		{299, "2xx"},
		{300, "3xx"},
		{399, "3xx"},
		{400, "4xx"},
		{404, "4xx"},
		{499, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
		{599, "5xx"},
		{600, "5xx"},
		{100, "other"},
		{199, "other"},
		{0, "other"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPMetricsStatusGroup(tt.statusCode), "status %d", tt.statusCode)
	}
}

func TestParseStatusCode(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"200", 200},
		{"404", 404},
		{"500", 500},
		{"invalid", 0},
		{"", 0},
		{"12.34", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseStatusCode(tt.input), "input %q", tt.input)
	}
}

func TestHTTPMetricsResponseWriter(t *testing.T) {
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	rw := &HTTPMetricsResponseWriter{ResponseWriter: ctx.Writer}

	n, err := rw.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, 5, rw.BytesWritten())

	n, err = rw.Write([]byte(" world"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, 11, rw.BytesWritten())
}

func TestDefaultHTTPMetricsConfig(t *testing.T) {
	cfg := DefaultHTTPMetricsConfig()
	assert.Equal(t, "storefront-backend", cfg.ServiceName)
	assert.True(t, cfg.Enabled)
	assert.Nil(t, cfg.MeterProvider)
}
