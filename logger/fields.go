package logger

import (
	"time"
)

// Field keys shared by the request, upstream and lifecycle log lines.
const (
	FieldComponent = "component"
	FieldTraceID   = "trace_id"
	FieldSpanID    = "span_id"
	FieldRequestID = "request_id"
	FieldOperation = "operation"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldBytes     = "bytes"
	FieldReason    = "reason"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
)

// Fields builds a map[string]interface{} from alternating key-value pairs.
// A trailing key without a value and non-string keys are dropped.
//
//	logger.Info("served", logger.Fields(logger.FieldPath, "/echo"))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// RequestFields describes one served request. requestID is omitted when
// empty.
func RequestFields(method, path string, status, size int, d time.Duration, requestID string) map[string]interface{} {
	m := map[string]interface{}{
		FieldMethod:   method,
		FieldPath:     path,
		FieldStatus:   status,
		FieldBytes:    size,
		FieldDuration: d.Milliseconds(),
	}
	if requestID != "" {
		m[FieldRequestID] = requestID
	}
	return m
}

// UpstreamFields describes a failed call to the configuration service.
// status is zero when no response arrived.
func UpstreamFields(reason string, status int, err error) map[string]interface{} {
	return map[string]interface{}{
		FieldReason: reason,
		FieldStatus: status,
		FieldError:  err.Error(),
	}
}

// ErrorFields names the lifecycle step that failed.
func ErrorFields(op string, err error) map[string]interface{} {
	return map[string]interface{}{
		FieldOperation: op,
		FieldError:     err.Error(),
	}
}

// DurationFields names a lifecycle step and how long it took.
func DurationFields(op string, d time.Duration) map[string]interface{} {
	return map[string]interface{}{
		FieldOperation: op,
		FieldDuration:  d.Milliseconds(),
	}
}
