package httpclient

import "fmt"

// BuildErrorKind classifies client construction failures.
type BuildErrorKind int

const (
	// BuildErrInvalidConfig indicates the configuration failed validation.
	BuildErrInvalidConfig BuildErrorKind = iota + 1
	// BuildErrCertRead indicates the imported certificate could not be read.
	BuildErrCertRead
	// BuildErrCertParse indicates the imported file held no PEM certificate.
	BuildErrCertParse
	// BuildErrTransportInit indicates the transport pipeline could not be assembled.
	BuildErrTransportInit
)

// String returns the kind name.
func (k BuildErrorKind) String() string {
	switch k {
	case BuildErrInvalidConfig:
		return "invalid_config"
	case BuildErrCertRead:
		return "cert_read"
	case BuildErrCertParse:
		return "cert_parse"
	case BuildErrTransportInit:
		return "transport_init"
	default:
		return "unknown"
	}
}

// BuildError is returned by Builder.Build.
type BuildError struct {
	Kind BuildErrorKind
	Err  error
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	return fmt.Sprintf("httpclient: build %s: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *BuildError) Unwrap() error {
	return e.Err
}

func newBuildError(kind BuildErrorKind, err error) *BuildError {
	return &BuildError{Kind: kind, Err: err}
}
