package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-ecommerce/config"
	"github.com/oksasatya/go-ddd-ecommerce/internal/container"
	"github.com/oksasatya/go-ddd-ecommerce/internal/infrastructure/memory"
)

func newEngine(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	container.Reset()
	t.Cleanup(container.Reset)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	container.SetConfig(cfg)
	container.SetLogger(logger)

	engine := gin.New()
	reg := NewRegistry(engine)
	InitModules(reg)
	reg.RegisterAll()
	return engine
}

func memoryConfig() *config.Config {
	return &config.Config{
		StorageDriver:       config.StorageMemory,
		RateLimitReads:      300,
		RateLimitWrites:     60,
		RateLimitWindow:     time.Minute,
		DebugMetricsEnabled: true,
	}
}

func call(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, r))
	return w
}

func TestRoutesMountedUnderBasePath(t *testing.T) {
	engine := newEngine(t, memoryConfig())

	w := call(engine, http.MethodPost, "/ecommerce/add-product", `{"productName":"Mouse","productPreco":10}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = call(engine, http.MethodGet, "/ecommerce/number-of-products", "")
	assert.Equal(t, "1", w.Body.String())

	w = call(engine, http.MethodGet, "/ecommerce/number-of-users", "")
	assert.Equal(t, "0", w.Body.String())

	w = call(engine, http.MethodGet, "/ecommerce/search-products?q=mouse", "")
	assert.JSONEq(t, `[]`, w.Body.String())

	w = call(engine, http.MethodGet, "/number-of-users", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDebugVars(t *testing.T) {
	engine := newEngine(t, memoryConfig())
	call(engine, http.MethodPost, "/ecommerce/add-user", `{"userName":"ana"}`)

	w := call(engine, http.MethodGet, "/ecommerce/debug/vars", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"entity_ops"`)
	assert.Contains(t, w.Body.String(), `"user.created"`)

	cfg := memoryConfig()
	cfg.DebugMetricsEnabled = false
	engine = newEngine(t, cfg)
	assert.Equal(t, http.StatusNotFound, call(engine, http.MethodGet, "/ecommerce/debug/vars", "").Code)
}

func TestBuildRepositories_FallsBackToMemory(t *testing.T) {
	container.Reset()
	t.Cleanup(container.Reset)
	container.SetConfig(&config.Config{StorageDriver: config.StorageMongo})

	repos := BuildRepositories()

	assert.IsType(t, &memory.UserRepository{}, repos.Users)
	assert.IsType(t, &memory.ProductRepository{}, repos.Products)
	assert.Nil(t, eventPublisher())
	assert.Nil(t, productSearcher())
}
