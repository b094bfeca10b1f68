package main

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/kbukum/registry-api/api"
	"github.com/kbukum/registry-api/config"
	"github.com/kbukum/registry-api/httpclient"
	"github.com/kbukum/registry-api/observability"
	"github.com/kbukum/registry-api/server"
	"github.com/kbukum/registry-api/validation"
	"github.com/kbukum/registry-api/version"
)

const serviceName = "registry-api"

// AppConfig is the complete configuration of the service.
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server    server.Config                 `yaml:"server" mapstructure:"server"`
	Client    httpclient.ClientConfig       `yaml:"client" mapstructure:"client"`
	Upstream  api.UpstreamConfig            `yaml:"upstream" mapstructure:"upstream"`
	Telemetry observability.TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`

	// TimeoutSeconds is the client connect timeout in whole seconds. It
	// replaces client.timeout; zero fails the client build.
	TimeoutSeconds uint64 `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults fills every section.
func (c *AppConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	if c.Version == "" {
		c.Version = version.GetShortVersion()
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Client.ApplyDefaults()
	if c.Telemetry.ServiceVersion == "" {
		c.Telemetry.ServiceVersion = c.Version
	}
	if c.Debug {
		c.Telemetry.Debug = true
	}
	c.Telemetry.ApplyDefaults()
}

// Validate checks every section.
func (c *AppConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := validation.Validate(&c.Upstream); err != nil {
		return fmt.Errorf("upstream: %w", err)
	}
	return nil
}

// clientBuilder seeds a builder from the client section.
func (c *AppConfig) clientBuilder() *httpclient.Builder {
	return httpclient.FromConfig(c.Client).TimeoutSeconds(c.TimeoutSeconds)
}

// envAliases are the plain environment variables understood besides the
// nested SECTION_KEY form. OTEL_EXPORTER_OTLP_* and OTEL_SERVICE_NAME are
// read by the exporter and resource detector directly.
var envAliases = map[string]string{
	"API_PORT":                              "server.port",
	"API_TIMEOUT":                           "timeout",
	"LOG_LEVEL":                             "telemetry.log_level",
	"OTEL_LOG_LEVEL":                        "telemetry.otel_log_level",
	"UPSTREAM_URL":                          "upstream.url",
	"HTTPS_CLIENT_NO_DELAY":                 "client.no_delay",
	"HTTPS_CLIENT_ENFORCE_HTTPS":            "client.enforce_https",
	"HTTPS_CLIENT_REUSE_ADDRESS":            "client.reuse_address",
	"HTTPS_CLIENT_ACCEPT_INVALID_HOSTNAMES": "client.accept_invalid_hostnames",
	"HTTPS_CLIENT_ACCEPT_INVALID_CERTS":     "client.accept_invalid_certs",
	"HTTPS_CLIENT_IMPORT_CERT":              "client.import_cert_path",
}

// defaults that ApplyDefaults cannot express because false is meaningful.
var defaults = map[string]any{
	"client.accept_invalid_certs": true,
	"server.port":                 server.DefaultPort,
	"timeout":                     60,
}

// options holds the flags that do not map onto config keys.
type options struct {
	configFile  string
	envFile     string
	showVersion bool
	showHelp    bool
	usage       string
}

// newFlagSet declares the command-line flags and their config paths.
func newFlagSet(out io.Writer) (*pflag.FlagSet, *config.FlagBindings, *options) {
	fs := pflag.NewFlagSet(serviceName, pflag.ContinueOnError)
	fs.SetOutput(out)
	opts := &options{}

	fs.IntP("port", "p", server.DefaultPort, "Port to listen on (API_PORT)")
	fs.Uint64P("timeout", "t", 60, "Default client connect timeout in seconds (API_TIMEOUT)")
	fs.String("upstream", "", "Base URL of the configuration service (UPSTREAM_URL)")
	fs.String("log-level", "info", "Log filter, e.g. info,httpclient=debug (LOG_LEVEL)")
	fs.Bool("no-delay", false, "Set TCP_NODELAY on client connections")
	fs.Bool("enforce-https", false, "Reject plaintext http:// upstream targets")
	fs.Bool("reuse-address", false, "Set SO_REUSEADDR on client sockets")
	fs.Bool("accept-invalid-hostnames", false, "Skip upstream hostname verification")
	fs.Bool("accept-invalid-certs", true, "Skip upstream certificate verification")
	fs.String("import-cert", "", "PEM root certificate trusted for upstream calls")
	fs.StringVar(&opts.configFile, "config", "", "Path to config.yml")
	fs.StringVar(&opts.envFile, "env-file", "", "Path to a .env file")
	fs.BoolVarP(&opts.showVersion, "version", "V", false, "Print version and exit")
	fs.BoolVarP(&opts.showHelp, "help", "h", false, "Print help and exit")

	bindings := config.BindFlags(fs, map[string]string{
		"port":                     "server.port",
		"timeout":                  "timeout",
		"upstream":                 "upstream.url",
		"log-level":                "telemetry.log_level",
		"no-delay":                 "client.no_delay",
		"enforce-https":            "client.enforce_https",
		"reuse-address":            "client.reuse_address",
		"accept-invalid-hostnames": "client.accept_invalid_hostnames",
		"accept-invalid-certs":     "client.accept_invalid_certs",
		"import-cert":              "client.import_cert_path",
	})
	return fs, bindings, opts
}

// loadConfig parses args and merges defaults, config.yml, .env, the
// environment and flags.
func loadConfig(args []string, out io.Writer) (*AppConfig, *options, error) {
	fs, bindings, opts := newFlagSet(out)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	opts.usage = fs.FlagUsages()
	if opts.showHelp || opts.showVersion {
		return nil, opts, nil
	}

	loaderOpts := []config.LoaderOption{
		config.WithDefaults(defaults),
		config.WithEnvAliases(envAliases),
		config.WithFlags(bindings),
	}
	if opts.configFile != "" {
		loaderOpts = append(loaderOpts, config.WithConfigFile(opts.configFile))
	}
	if opts.envFile != "" {
		loaderOpts = append(loaderOpts, config.WithEnvFile(opts.envFile))
	}

	var cfg AppConfig
	if err := config.LoadConfig(serviceName, &cfg, loaderOpts...); err != nil {
		return nil, nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return &cfg, opts, nil
}
