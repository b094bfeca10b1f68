package endpoint_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/registry-api/component"
	"github.com/kbukum/registry-api/metrics"
	"github.com/kbukum/registry-api/server/endpoint"
	"github.com/kbukum/registry-api/version"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func do(t *testing.T, engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	engine.ServeHTTP(rr, req)
	return rr
}

func TestHealth_AlwaysOK(t *testing.T) {
	checker := func(context.Context) []component.Health {
		return []component.Health{{Name: "https-client", Status: component.StatusUnhealthy, Message: "not started"}}
	}
	engine := gin.New()
	engine.GET("/health", endpoint.Health("registry-api", checker))

	rr := do(t, engine, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "registry-api", body["service"])
	assert.Len(t, body["components"], 1)
}

func TestHealth_NoChecker(t *testing.T) {
	engine := gin.New()
	engine.GET("/health", endpoint.Health("registry-api", nil))

	rr := do(t, engine, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "components")
}

func TestEcho(t *testing.T) {
	engine := gin.New()
	engine.POST("/echo", endpoint.Echo())

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("ping"))
	rr := do(t, engine, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ping", rr.Body.String())
}

func TestEcho_KeepsContentType(t *testing.T) {
	engine := gin.New()
	engine.POST("/echo", endpoint.Echo())

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"a":1}`))
	req.Header.Set("Content-Type", "application/json")
	rr := do(t, engine, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"a":1}`, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestHelp(t *testing.T) {
	engine := gin.New()
	engine.GET("/help", endpoint.Help())

	rr := do(t, engine, httptest.NewRequest(http.MethodGet, "/help", http.NoBody))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, endpoint.HelpText, rr.Body.String())
}

func TestNotFound(t *testing.T) {
	engine := gin.New()
	engine.NoRoute(endpoint.NotFound())

	rr := do(t, engine, httptest.NewRequest(http.MethodGet, "/nope", http.NoBody))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"Cannot get config: Not found"}`, rr.Body.String())
}

func TestMetrics(t *testing.T) {
	rec := metrics.New()
	rec.IncCounter(metrics.RequestsTotal, metrics.Labels{"method": "GET", "path": "/", "status": "200"})

	engine := gin.New()
	engine.GET("/metrics", endpoint.Metrics(rec))

	rr := do(t, engine, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `http_requests_total{method="GET",path="/",status="200"} 1`)
}

func TestVersion(t *testing.T) {
	engine := gin.New()
	engine.GET("/version", endpoint.Version())

	rr := do(t, engine, httptest.NewRequest(http.MethodGet, "/version", http.NoBody))
	require.Equal(t, http.StatusOK, rr.Code)

	var info version.Info
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &info))
	assert.Equal(t, "registry-api", info.Service)
	assert.Equal(t, version.GetVersionInfo().Version, info.Version)
	assert.NotEmpty(t, info.GoVersion)
}
