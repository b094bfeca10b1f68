package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/registry-api/logger"
)

// FileSystem is the file access LoadConfig needs; tests substitute it.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem reads the local disk and loads .env files with godotenv.
type RealFileSystem struct{}

func (RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadEnv exports the variables of a .env file without overriding ones
// already set in the process environment.
func (RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// Resolver locates config.yml and .env files for a service.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles are the files LoadConfig reads; empty means none.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles keeps explicit paths and searches for the rest.
func (r *Resolver) ResolveFiles(serviceName string, opts LoaderConfig) ResolvedFiles {
	files := ResolvedFiles{ConfigFile: opts.ConfigFile, EnvFile: opts.EnvFile}
	if files.ConfigFile == "" {
		files.ConfigFile = r.search(serviceName, "config.yml")
	}
	if files.EnvFile == "" {
		files.EnvFile = r.search(serviceName, ".env."+serviceName, ".env")
	}
	return files
}

// search returns the first existing candidate. Each name is looked up in
// the service's cmd directory, then config/, then the working directory,
// starting from ./ and walking up to two parents.
func (r *Resolver) search(serviceName string, names ...string) string {
	short := serviceName
	if i := strings.LastIndex(serviceName, "-"); i != -1 {
		short = serviceName[i+1:]
	}
	dirs := []string{
		filepath.Join("cmd", serviceName),
		filepath.Join("cmd", short),
		"config",
		".",
	}
	for _, name := range names {
		for _, up := range []string{".", "..", filepath.Join("..", "..")} {
			for _, dir := range dirs {
				path := filepath.Join(up, dir, name)
				if r.FileSystem.Exists(path) {
					return path
				}
			}
		}
	}
	return ""
}

// LoaderConfig collects the LoadConfig options.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string
	EnvFile    string

	// Defaults are the lowest-priority values, keyed by config path.
	Defaults map[string]any
	// EnvAliases maps plain environment variable names to config paths,
	// e.g. API_PORT -> server.port.
	EnvAliases map[string]string
	// Flags are applied last; only flags set on the command line override.
	Flags *FlagBindings
}

// LoaderOption configures LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem replaces the disk, mostly for tests.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile reads path instead of searching for config.yml.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile loads path instead of searching for a .env file.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithDefaults sets the lowest-priority values.
func WithDefaults(defaults map[string]any) LoaderOption {
	return func(lc *LoaderConfig) { lc.Defaults = defaults }
}

// WithEnvAliases adds plain environment variable names for config paths.
func WithEnvAliases(aliases map[string]string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvAliases = aliases }
}

// WithFlags applies command-line flags on top of every other source.
func WithFlags(fb *FlagBindings) LoaderOption {
	return func(lc *LoaderConfig) { lc.Flags = fb }
}

// LoadConfig fills cfg, a pointer to a struct with mapstructure tags.
// Sources, lowest priority first: defaults, config.yml, the environment
// (after loading .env; SECTION_KEY for section.key, then aliases) and
// command-line flags. A missing or unreadable file is logged and skipped.
func LoadConfig(serviceName string, cfg interface{}, opts ...LoaderOption) error {
	lc := LoaderConfig{FileSystem: RealFileSystem{}}
	for _, opt := range opts {
		opt(&lc)
	}

	files := (&Resolver{FileSystem: lc.FileSystem}).ResolveFiles(serviceName, lc)
	log := logger.WithComponent("config")
	v := viper.New()

	for key, value := range lc.Defaults {
		v.SetDefault(key, value)
	}

	if files.ConfigFile != "" && lc.FileSystem.Exists(files.ConfigFile) {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			log.Warn("Failed to load config file", logger.ErrorFields("read_config", err))
		}
	}

	if files.EnvFile != "" && lc.FileSystem.Exists(files.EnvFile) {
		if err := lc.FileSystem.LoadEnv(files.EnvFile); err != nil {
			log.Warn("Failed to load .env file", logger.ErrorFields("load_env", err))
		}
	}
	for _, key := range structKeys(reflect.TypeOf(cfg), "") {
		_ = v.BindEnv(key, envName(key))
	}
	for env, key := range lc.EnvAliases {
		if value, ok := os.LookupEnv(env); ok && value != "" {
			v.Set(key, value)
		}
	}

	if lc.Flags != nil {
		lc.Flags.apply(v)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config for service %s: %w", serviceName, err)
	}
	return nil
}

// envName is the environment variable read for a config path:
// client.accept_invalid_certs -> CLIENT_ACCEPT_INVALID_CERTS.
func envName(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

var durationType = reflect.TypeOf(time.Duration(0))

// structKeys lists the dotted mapstructure paths of every leaf field of t.
// Squashed embeds contribute their fields at the parent level; fields
// tagged "-" are skipped.
func structKeys(t reflect.Type, prefix string) []string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var keys []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "-" {
			continue
		}
		if strings.Contains(opts, "squash") {
			keys = append(keys, structKeys(f.Type, prefix)...)
			continue
		}
		if name == "" {
			name = strings.ToLower(f.Name)
		}
		key := prefix + name

		ft := f.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct && ft != durationType && ft.PkgPath() != "time" {
			keys = append(keys, structKeys(ft, key+".")...)
			continue
		}
		keys = append(keys, key)
	}
	return keys
}
