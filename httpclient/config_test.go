package httpclient

import (
	"errors"
	"testing"
	"time"

	"github.com/kbukum/registry-api/validation"
)

func TestDefaultClientConfig(t *testing.T) {
	cfg := DefaultClientConfig()
	if cfg.Timeout != 60*time.Second {
		t.Errorf("expected default timeout 60s, got %v", cfg.Timeout)
	}
	if cfg.Name != "https-client" {
		t.Errorf("expected default name https-client, got %q", cfg.Name)
	}
	if !cfg.AcceptInvalidCerts {
		t.Error("expected AcceptInvalidCerts=true by default")
	}
	if cfg.NoDelay || cfg.EnforceHTTPS || cfg.ReuseAddress || cfg.AcceptInvalidHostnames {
		t.Errorf("expected remaining flags false, got %+v", cfg)
	}
	if cfg.ImportCertPath != "" {
		t.Errorf("expected no imported cert, got %q", cfg.ImportCertPath)
	}
}

func TestClientConfig_ApplyDefaults_PreservesExisting(t *testing.T) {
	cfg := ClientConfig{Name: "upstream", Timeout: 5 * time.Second}
	cfg.ApplyDefaults()
	if cfg.Timeout != 5*time.Second || cfg.Name != "upstream" {
		t.Errorf("ApplyDefaults overwrote values: %+v", cfg)
	}

	empty := ClientConfig{}
	empty.ApplyDefaults()
	if empty.Timeout != 60*time.Second || empty.Name != DefaultName {
		t.Errorf("ApplyDefaults did not fill zero values: %+v", empty)
	}
}

func TestClientConfig_Validate(t *testing.T) {
	cfg := DefaultClientConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.Timeout = 0
	err := cfg.Validate()
	var vErr *validation.Error
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if vErr.Fields[0].Field != "timeout" {
		t.Errorf("expected timeout field, got %+v", vErr.Fields)
	}
}
