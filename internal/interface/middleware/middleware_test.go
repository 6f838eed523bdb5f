package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRealIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"cloudflare wins", map[string]string{"CF-Connecting-IP": "1.1.1.1", "X-Forwarded-For": "2.2.2.2"}, "1.1.1.1"},
		{"x-real-ip", map[string]string{"X-Real-IP": "3.3.3.3", "X-Forwarded-For": "2.2.2.2"}, "3.3.3.3"},
		{"left-most forwarded", map[string]string{"X-Forwarded-For": " 2.2.2.2 , 10.0.0.1"}, "2.2.2.2"},
		{"garbage falls back", map[string]string{"CF-Connecting-IP": "nope"}, "192.0.2.1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := gin.New()
			var got string
			engine.GET("/", RealIP(), func(c *gin.Context) { got = c.GetString("real_ip") })

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			serve(engine, req)

			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	var got string
	engine.GET("/", RequestIDMiddleware(), func(c *gin.Context) { got = c.GetString("request_id") })

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, got, w.Header().Get("X-Request-ID"))

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", incoming)
	serve(engine, req)
	assert.Equal(t, incoming, got)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "not-a-uuid")
	serve(engine, req)
	assert.NotEqual(t, "not-a-uuid", got)
}

func TestRateLimit_NilRedisPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/", RateLimit(nil, 1, time.Minute, KeyByIPAndScope("read"), nil), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusNoContent, serve(engine, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	}
}

func TestKeyFuncs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	var keys []string
	engine.GET("/product/:id", RealIP(), func(c *gin.Context) {
		keys = []string{KeyByIPAndScope("write")(c), KeyByIPAndPath()(c)}
	})

	req := httptest.NewRequest(http.MethodGet, "/product/42", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	serve(engine, req)

	assert.Equal(t, []string{
		"rl:write:ip:203.0.113.9",
		"rl:path:/product/:id:ip:203.0.113.9",
	}, keys)
}

func TestAllowPrivateIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	allow := AllowPrivateIP()
	cases := map[string]bool{
		"127.0.0.1":   true,
		"10.1.2.3":    true,
		"192.168.0.7": true,
		"8.8.8.8":     false,
		"unknown":     false,
	}
	for ip, want := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Set("real_ip", ip)
		assert.Equal(t, want, allow(c), ip)
	}
}

func TestAccessLog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	engine := gin.New()
	engine.Use(RequestIDMiddleware(), AccessLog(logger))
	engine.GET("/user/:id", func(c *gin.Context) { c.AbortWithStatus(http.StatusNotFound) })

	serve(engine, httptest.NewRequest(http.MethodGet, "/user/1", nil))

	out := buf.String()
	assert.Contains(t, out, `"status":404`)
	assert.Contains(t, out, `"path":"/user/:id"`)
	assert.Contains(t, out, `"level":"warning"`)
	assert.Contains(t, out, `"request_id"`)
}
