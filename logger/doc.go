// Package logger provides structured logging on top of zerolog.
//
// JSON output writes one object per line with the keys "date", "level" and
// "log". Console output is meant for local development.
//
// Levels are resolved per component through a Filter parsed from directives:
//
//	logger:
//	  format: "json"
//	  filter: "info,otel=debug,httpclient=warn"
//
//	log := logger.WithComponent("httpclient")
//	log.Debug("request sent") // dropped, httpclient is at warn
package logger
