package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/registry-api/security/tlstest"
)

func TestBuilder_SettersUpdateSingleField(t *testing.T) {
	b := NewBuilder().
		Timeout(5 * time.Second).
		NoDelay(true).
		EnforceHTTPS(true).
		ReuseAddress(true).
		AcceptInvalidHostnames(true).
		AcceptInvalidCerts(false).
		ImportCert("/tmp/ca.pem").
		Name("registry")

	want := ClientConfig{
		Name:                   "registry",
		Timeout:                5 * time.Second,
		NoDelay:                true,
		EnforceHTTPS:           true,
		ReuseAddress:           true,
		AcceptInvalidHostnames: true,
		AcceptInvalidCerts:     false,
		ImportCertPath:         "/tmp/ca.pem",
	}
	if got := b.Config(); got != want {
		t.Errorf("Config() = %+v, want %+v", got, want)
	}
}

func TestBuilder_TimeoutSeconds(t *testing.T) {
	if got := NewBuilder().TimeoutSeconds(10).Config().Timeout; got != 10*time.Second {
		t.Errorf("expected 10s, got %v", got)
	}
}

func TestBuilder_DefaultBuild(t *testing.T) {
	client, err := NewBuilder().Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if client.Config() != DefaultClientConfig() {
		t.Errorf("built config = %+v", client.Config())
	}
	if client.Unwrap().Timeout != 0 {
		t.Error("timeout must bound connecting only, not the whole request")
	}
}

func TestClient_UnwrapReturnsCopy(t *testing.T) {
	client, err := NewBuilder().Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	hc := client.Unwrap()
	hc.Timeout = time.Minute
	hc.CheckRedirect = nil
	hc.Transport = http.DefaultTransport

	again := client.Unwrap()
	if again.Timeout != 0 {
		t.Error("timeout change leaked into the client")
	}
	if again.CheckRedirect == nil {
		t.Error("redirect policy was cleared on the client")
	}
	if again.Transport == http.DefaultTransport {
		t.Error("transport was replaced on the client")
	}
}

func TestBuilder_FromConfig(t *testing.T) {
	cfg := DefaultClientConfig()
	cfg.Name = "from-config"
	client, err := FromConfig(cfg).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if client.Config().Name != "from-config" {
		t.Errorf("expected name from-config, got %q", client.Config().Name)
	}
}

func TestBuilder_ConfigIsCopied(t *testing.T) {
	b := NewBuilder()
	client, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	b.Name("changed").Timeout(time.Second)
	if client.Config().Name != DefaultName || client.Config().Timeout != 60*time.Second {
		t.Errorf("client config changed after build: %+v", client.Config())
	}
}

func assertBuildErrorKind(t *testing.T, err error, want BuildErrorKind) {
	t.Helper()
	var buildErr *BuildError
	if !errors.As(err, &buildErr) {
		t.Fatalf("expected *BuildError, got %T: %v", err, err)
	}
	if buildErr.Kind != want {
		t.Errorf("kind = %s, want %s", buildErr.Kind, want)
	}
}

func TestBuilder_InvalidTimeout(t *testing.T) {
	_, err := NewBuilder().TimeoutSeconds(0).Build()
	assertBuildErrorKind(t, err, BuildErrInvalidConfig)
}

func TestBuilder_CertReadFailure(t *testing.T) {
	_, err := NewBuilder().ImportCert("/nonexistent/ca.pem").Build()
	assertBuildErrorKind(t, err, BuildErrCertRead)
}

func TestBuilder_CertParseFailure(t *testing.T) {
	path := tlstest.WriteInvalidPEM(t, "bad.pem")
	_, err := NewBuilder().ImportCert(path).Build()
	assertBuildErrorKind(t, err, BuildErrCertParse)
}

func TestBuilder_NilMiddlewareFailsTransportInit(t *testing.T) {
	_, err := NewBuilder().
		Use(func(http.RoundTripper) http.RoundTripper { return nil }).
		Build()
	assertBuildErrorKind(t, err, BuildErrTransportInit)
}

func TestBuilder_TLSFlagsReflected(t *testing.T) {
	client, err := NewBuilder().AcceptInvalidCerts(false).AcceptInvalidHostnames(true).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	tr := baseTransport(t, client)
	if tr.TLSClientConfig.VerifyConnection == nil {
		t.Error("expected hostname-only relaxation to verify the chain itself")
	}
	if tr.TLSHandshakeTimeout != 60*time.Second {
		t.Errorf("handshake timeout = %v", tr.TLSHandshakeTimeout)
	}

	strict, err := NewBuilder().AcceptInvalidCerts(false).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if baseTransport(t, strict).TLSClientConfig.InsecureSkipVerify {
		t.Error("strict client must verify certificates")
	}
}

func TestBuilder_ImportedCertTrusted(t *testing.T) {
	certs := tlstest.GenerateTLSCerts(t)
	srv := tlstest.NewServer(t, certs, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	client, err := NewBuilder().AcceptInvalidCerts(false).ImportCert(certs.CAFile).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	resp, err := client.Do(context.Background(), Request{URL: srv.URL})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204, got %d", resp.StatusCode)
	}
}

func TestBuilder_SocketOptionsDial(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := NewBuilder().NoDelay(true).ReuseAddress(true).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if _, err := client.Do(context.Background(), Request{URL: srv.URL}); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
}

func TestBuilder_TracingSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	prev := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	defer otel.SetTextMapPropagator(prev)

	var traceparent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceparent = r.Header.Get("traceparent")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := NewBuilder().Name("registry-client").TracerProvider(tp).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if _, err := client.Do(context.Background(), Request{URL: srv.URL + "/config"}); err != nil {
		t.Fatalf("Do() error = %v", err)
	}

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name() != "registry-client" {
		t.Errorf("span name = %q, want registry-client", spans[0].Name())
	}
	var fullURL string
	for _, kv := range spans[0].Attributes() {
		if kv.Key == "url.full" {
			fullURL = kv.Value.AsString()
		}
	}
	if fullURL != srv.URL+"/config" {
		t.Errorf("url.full = %q, want %q", fullURL, srv.URL+"/config")
	}
	if traceparent == "" {
		t.Error("expected traceparent header on the outgoing request")
	}
}

func TestBuilder_UseOrder(t *testing.T) {
	var order []string
	stage := func(name string) Middleware {
		return func(next http.RoundTripper) http.RoundTripper {
			return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next.RoundTrip(r)
			})
		}
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	defer srv.Close()

	client, err := NewBuilder().Use(stage("first")).Use(stage("second")).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if _, err := client.Do(context.Background(), Request{URL: srv.URL}); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("stage order = %v", order)
	}
}

// baseTransport returns the dialing transport under the middleware pipeline.
func baseTransport(t *testing.T, c *HTTPSClient) *http.Transport {
	t.Helper()
	if c.transport == nil {
		t.Fatal("client has no base transport")
	}
	return c.transport
}
