package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	apperrors "github.com/kbukum/registry-api/errors"
)

const (
	FormatJSON    = "json"
	FormatConsole = "console"
	FormatPretty  = "pretty"
)

// Field names of the JSON line format: {"date": ..., "level": ..., "log": ...}.
const (
	DateFieldName    = "date"
	LevelFieldName   = "level"
	MessageFieldName = "log"
)

func init() {
	zerolog.TimestampFieldName = DateFieldName
	zerolog.LevelFieldName = LevelFieldName
	zerolog.MessageFieldName = MessageFieldName
	zerolog.TimeFieldFormat = time.RFC3339Nano
}

// Logger wraps zerolog.Logger with a service name and a level filter.
type Logger struct {
	logger  zerolog.Logger
	service string
	filter  *Filter
}

// ErrAlreadyInitialized is the cause of a second global install.
var ErrAlreadyInitialized = errors.New("global logger already installed")

// Init validates cfg and installs the resulting logger as the global one.
// Errors, including a second install, are reported as LoggingInit.
func Init(cfg Config) error {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return apperrors.LoggingInit(err)
	}
	if Installed() {
		return apperrors.LoggingInit(ErrAlreadyInitialized)
	}
	return Install(New(&cfg, "default"))
}

// New creates a new logger instance with configuration.
func New(cfg *Config, serviceName string) *Logger {
	filter := buildFilter(cfg)
	zerolog.SetGlobalLevel(filter.Min())

	output := cfg.Writer
	if output == nil {
		output = outputWriter(cfg.Output)
	}

	var zl zerolog.Logger
	switch strings.ToLower(cfg.Format) {
	case FormatConsole, FormatPretty:
		zl = newConsoleLogger(output, cfg.NoColor, serviceName)
	default:
		zl = zerolog.New(output)
	}

	if cfg.Timestamp {
		zl = zl.With().Timestamp().Logger()
	}
	if cfg.Caller {
		zl = zl.With().Caller().Logger()
	}

	return &Logger{
		logger:  zl.Level(filter.Default),
		service: serviceName,
		filter:  filter,
	}
}

// NewDefault creates a JSON logger on stdout at info level.
func NewDefault(serviceName string) *Logger {
	cfg := &Config{
		Level:     "info",
		Format:    FormatJSON,
		Output:    "stdout",
		Timestamp: true,
	}
	return New(cfg, serviceName)
}

// WithContext returns a logger whose events carry ctx, so hooks can read
// trace and span identifiers from it.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	return l.derive(l.logger.With().Ctx(ctx).Logger())
}

// WithComponent returns a logger tagged with a component name. Its level is
// taken from the filter directive matching the name.
func (l *Logger) WithComponent(name string) *Logger {
	zl := l.logger.With().Str(FieldComponent, name).Logger()
	return l.derive(zl.Level(l.filter.LevelFor(name)))
}

// WithFields returns a logger with additional fields.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	zc := l.logger.With()
	for k, v := range fields {
		zc = zc.Interface(k, v)
	}
	return l.derive(zc.Logger())
}

// WithError returns a logger with an error field.
func (l *Logger) WithError(err error) *Logger {
	return l.derive(l.logger.With().Err(err).Logger())
}

// WithHook returns a logger that runs h for every event.
func (l *Logger) WithHook(h zerolog.Hook) *Logger {
	return l.derive(l.logger.Hook(h))
}

// Filter returns the level filter of the logger.
func (l *Logger) Filter() *Filter {
	return l.filter
}

// GetLogger returns the underlying zerolog.Logger.
func (l *Logger) GetLogger() zerolog.Logger {
	return l.logger
}

func (l *Logger) derive(zl zerolog.Logger) *Logger {
	return &Logger{logger: zl, service: l.service, filter: l.filter}
}

// Trace logs a trace message.
func (l *Logger) Trace(msg string, fields ...map[string]interface{}) {
	event := l.logger.Trace()
	addFields(event, fields...)
	event.Msg(msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	event := l.logger.Debug()
	addFields(event, fields...)
	event.Msg(msg)
}

// Info logs an info message.
func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	event := l.logger.Info()
	addFields(event, fields...)
	event.Msg(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	event := l.logger.Warn()
	addFields(event, fields...)
	event.Msg(msg)
}

// Error logs an error message.
func (l *Logger) Error(msg string, fields ...map[string]interface{}) {
	event := l.logger.Error()
	addFields(event, fields...)
	event.Msg(msg)
}

// Fatal logs a fatal message and exits.
func (l *Logger) Fatal(msg string, fields ...map[string]interface{}) {
	event := l.logger.Fatal()
	addFields(event, fields...)
	event.Msg(msg)
}

// --- Global logger ---

var (
	globalMu     sync.RWMutex
	globalLogger *Logger
	installed    bool
)

// Install makes l the global logger. It succeeds once per process; later
// calls return a LoggingInit error and keep the first logger.
func Install(l *Logger) error {
	globalMu.Lock()
	defer globalMu.Unlock()
	if installed {
		return apperrors.LoggingInit(ErrAlreadyInitialized)
	}
	globalLogger = l
	installed = true
	return nil
}

// Installed reports whether Install has succeeded.
func Installed() bool {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return installed
}

// SetGlobalLogger replaces the global logger and clears the install guard.
// Tests use it to restore the logger they found.
func SetGlobalLogger(l *Logger) {
	globalMu.Lock()
	globalLogger = l
	installed = false
	globalMu.Unlock()
}

// GetGlobalLogger returns the global logger, creating a default one if needed.
func GetGlobalLogger() *Logger {
	globalMu.RLock()
	l := globalLogger
	globalMu.RUnlock()
	if l != nil {
		return l
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLogger == nil {
		globalLogger = NewDefault("default")
	}
	return globalLogger
}

// Package-level convenience functions delegate to the global logger.

func Debug(msg string, fields ...map[string]interface{}) {
	GetGlobalLogger().Debug(msg, fields...)
}

func Info(msg string, fields ...map[string]interface{}) {
	GetGlobalLogger().Info(msg, fields...)
}

func Warn(msg string, fields ...map[string]interface{}) {
	GetGlobalLogger().Warn(msg, fields...)
}

func Error(msg string, fields ...map[string]interface{}) {
	GetGlobalLogger().Error(msg, fields...)
}

// WithContext returns a context-carrying logger from the global logger.
func WithContext(ctx context.Context) *Logger {
	return GetGlobalLogger().WithContext(ctx)
}

// WithComponent returns a component-tagged logger from the global logger.
func WithComponent(name string) *Logger {
	return GetGlobalLogger().WithComponent(name)
}

// --- internal helpers ---

func buildFilter(cfg *Config) *Filter {
	if cfg.Filter != "" {
		if f, err := ParseFilter(cfg.Filter); err == nil {
			return f
		}
	}
	level, err := parseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return NewFilter(level)
}

func addFields(event *zerolog.Event, fields ...map[string]interface{}) {
	for _, fm := range fields {
		for k, v := range fm {
			event.Interface(k, v)
		}
	}
}

func outputWriter(output string) io.Writer {
	switch strings.ToLower(output) {
	case "stderr":
		return os.Stderr
	default:
		return os.Stdout
	}
}

func newConsoleLogger(out io.Writer, noColor bool, serviceName string) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "15:04:05.000",
		NoColor:    noColor,
		FormatLevel: func(i interface{}) string {
			lvl := strings.ToUpper(fmt.Sprintf("%s", i))
			if len(lvl) > 3 {
				lvl = lvl[:3]
			}
			if serviceName != "" && serviceName != "default" && len(serviceName) >= 3 {
				return fmt.Sprintf("[%s][%s]", strings.ToUpper(serviceName[:3]), lvl)
			}
			return fmt.Sprintf("[%s]", lvl)
		},
		FormatFieldName: func(i interface{}) string {
			return fmt.Sprintf("%s:", i)
		},
	})
}
