package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/registry-api/component"
	apperrors "github.com/kbukum/registry-api/errors"
	"github.com/kbukum/registry-api/logger"
	"github.com/kbukum/registry-api/metrics"
	"github.com/kbukum/registry-api/server/endpoint"
	"github.com/kbukum/registry-api/server/middleware"
)

func newTestServer(t *testing.T, rec *metrics.Recorder) *Server {
	t.Helper()
	cfg := Config{Host: "127.0.0.1", Port: 0}
	s := New(cfg, logger.NewDefault("test"))
	s.ApplyDefaults("registry-api", nil, rec)
	return s
}

func request(s *Server, method, path string, body io.Reader) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(method, path, body))
	return rr
}

func TestConfig_ApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, 15, cfg.ReadTimeout)
	assert.Equal(t, 15, cfg.WriteTimeout)
	assert.Equal(t, 60, cfg.IdleTimeout)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"valid", Config{Port: 8080}, ""},
		{"port too large", Config{Port: 70000}, "server.port"},
		{"negative read timeout", Config{Port: 1, ReadTimeout: -1}, "server.read_timeout"},
		{"negative write timeout", Config{Port: 1, WriteTimeout: -1}, "server.write_timeout"},
		{"negative idle timeout", Config{Port: 1, IdleTimeout: -1}, "server.idle_timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestServer_DefaultEndpoints(t *testing.T) {
	rec := metrics.New()
	s := newTestServer(t, rec)

	rr := request(s, http.MethodGet, "/health", http.NoBody)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(middleware.HeaderRequestID))

	rr = request(s, http.MethodGet, "/nope", http.NoBody)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"Cannot get config: Not found"}`, rr.Body.String())

	rr = request(s, http.MethodGet, "/version", http.NoBody)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = request(s, http.MethodGet, "/metrics", http.NoBody)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `http_requests_total{method="GET",path="/nope",status="404"} 1`)
	assert.Contains(t, rr.Body.String(), `http_requests_total{method="GET",path="/health",status="200"} 1`)
}

func TestServer_NoRecorder(t *testing.T) {
	s := newTestServer(t, nil)

	rr := request(s, http.MethodGet, "/metrics", http.NoBody)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestServer_HandlerErrorsAreMapped(t *testing.T) {
	rec := metrics.New()
	s := newTestServer(t, rec)
	s.GinEngine().GET("/denied", func(c *gin.Context) { _ = c.Error(apperrors.Forbidden()) })
	s.GinEngine().GET("/broken", func(c *gin.Context) { RespondWithError(c, errors.New("boom")) })
	s.GinEngine().GET("/panic", func(*gin.Context) { panic("bad") })

	rr := request(s, http.MethodGet, "/denied", http.NoBody)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"error":"Cannot get config: Forbidden"}`, rr.Body.String())

	rr = request(s, http.MethodGet, "/broken", http.NoBody)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, rr.Body.String())

	rr = request(s, http.MethodGet, "/panic", http.NoBody)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	out, err := rec.Render()
	require.NoError(t, err)
	assert.Contains(t, out, `http_requests_total{method="GET",path="/denied",status="401"} 1`)
	assert.Contains(t, out, `http_requests_total{method="GET",path="/broken",status="500"} 1`)
	assert.Contains(t, out, `http_requests_total{method="GET",path="/panic",status="500"} 1`)
}

func TestServer_ExtraMiddleware(t *testing.T) {
	tagged := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Tagged", "yes")
			next.ServeHTTP(w, r)
		})
	}
	s := New(Config{}, logger.NewDefault("test"), tagged)
	s.ApplyDefaults("registry-api", nil, nil)

	rr := request(s, http.MethodGet, "/health", http.NoBody)
	assert.Equal(t, "yes", rr.Header().Get("X-Tagged"))
}

func TestServer_HandleMountsOnMux(t *testing.T) {
	s := newTestServer(t, nil)
	s.Handle("/raw/", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "raw")
	}))

	rr := request(s, http.MethodGet, "/raw/x", http.NoBody)
	assert.Equal(t, "raw", rr.Body.String())
}

func TestServer_StartStop(t *testing.T) {
	s := newTestServer(t, nil)
	s.GinEngine().POST("/echo", endpoint.Echo())
	comp := NewComponent(s)

	assert.Equal(t, component.StatusUnhealthy, comp.Health(context.Background()).Status)
	require.NoError(t, comp.Start(context.Background()))
	t.Cleanup(func() { _ = comp.Stop(context.Background()) })
	assert.Equal(t, component.StatusHealthy, comp.Health(context.Background()).Status)

	resp, err := http.Post("http://"+s.Addr()+"/echo", "text/plain", strings.NewReader("ping"))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ping", string(body))
}

func TestServer_StartBindFailure(t *testing.T) {
	first := newTestServer(t, nil)
	require.NoError(t, first.Start(context.Background()))
	t.Cleanup(func() { _ = first.Stop(context.Background()) })

	_, port, _ := strings.Cut(first.Addr(), ":")
	n, err := strconv.Atoi(port)
	require.NoError(t, err)
	cfg := Config{Host: "127.0.0.1", Port: n}

	second := New(cfg, logger.NewDefault("test"))
	err = second.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server failed to bind")
}

func TestComponent_DescribeAndRoutes(t *testing.T) {
	s := newTestServer(t, metrics.New())
	s.GinEngine().POST("/echo", endpoint.Echo())
	s.GinEngine().GET("/", endpoint.Help())
	comp := NewComponent(s)

	desc := comp.Describe()
	assert.Equal(t, "HTTP Server", desc.Name)
	assert.Equal(t, "http-server", desc.Type)
	assert.Equal(t, "127.0.0.1:0 h2c", desc.Details)

	routes := comp.Routes()
	require.NotEmpty(t, routes)
	assert.Equal(t, "/", routes[0].Path)
	assert.Equal(t, "/echo", routes[1].Path)
	last := routes[len(routes)-1]
	assert.True(t, systemPaths[last.Path], "system routes sort last, got %s", last.Path)
	assert.Contains(t, last.Handler, "(system)")
}

func TestFormatHandlerName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"github.com/kbukum/registry-api/api.(*State).Root-fm", "State.Root"},
		{"github.com/kbukum/registry-api/server/endpoint.Echo.func1", "echo"},
		{"main.handler", "handler"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatHandlerName(tt.in), tt.in)
	}
}

func TestMethodOrder(t *testing.T) {
	assert.Less(t, methodOrder(http.MethodGet), methodOrder(http.MethodPost))
	assert.Less(t, methodOrder(http.MethodPost), methodOrder(http.MethodDelete))
	assert.Equal(t, 5, methodOrder(http.MethodOptions))
}
