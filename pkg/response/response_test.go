package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set("request_id", "req-1")
	return c, w
}

func TestError_WritesEnvelopeAndAborts(t *testing.T) {
	c, w := newContext()

	resp := Error(c, 0, "invalid payload", map[string]string{"payload": "invalid json"})

	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "req-1", body["request_id"])
	assert.Equal(t, "invalid payload", body["message"])
	assert.Equal(t, map[string]any{"payload": "invalid json"}, body["error"])

	c, w = newContext()
	Error(c, http.StatusTooManyRequests, "rate limit exceeded", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotContains(t, w.Body.String(), `"error"`)
}
