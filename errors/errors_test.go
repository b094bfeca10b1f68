package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_RequestKinds_Table(t *testing.T) {
	tests := []struct {
		name    string
		err     *AppError
		code    ErrorCode
		status  int
		message string
	}{
		{"Forbidden", Forbidden(), ErrCodeForbidden, http.StatusUnauthorized, "Cannot get config: Forbidden"},
		{"Unauthorized", Unauthorized(), ErrCodeUnauthorized, http.StatusUnauthorized, "Cannot get config: Unauthorized"},
		{"NotFound", NotFound(), ErrCodeNotFound, http.StatusNotFound, "Cannot get config: Not found"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, tc.err.Code)
			}
			if tc.err.HTTPStatus != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, tc.err.HTTPStatus)
			}
			if tc.err.Message != tc.message {
				t.Errorf("expected message %q, got %q", tc.message, tc.err.Message)
			}
		})
	}
}

func TestAppError_ForbiddenSharesUnauthorizedStatus(t *testing.T) {
	if Forbidden().HTTPStatus != Unauthorized().HTTPStatus {
		t.Fatal("Forbidden and Unauthorized must share the same status")
	}
	if Forbidden().HTTPStatus == http.StatusForbidden {
		t.Fatal("Forbidden must not map to 403")
	}
}

func TestAppError_StartupKinds_TransparentMessage(t *testing.T) {
	cause := fmt.Errorf("exporter endpoint unreachable")

	for _, err := range []*AppError{TelemetryInit(cause), LoggingInit(cause)} {
		if err.HTTPStatus != http.StatusInternalServerError {
			t.Errorf("%s: expected 500, got %d", err.Code, err.HTTPStatus)
		}
		if err.Message != cause.Error() {
			t.Errorf("%s: expected message %q, got %q", err.Code, cause.Error(), err.Message)
		}
		if !stderrors.Is(err, cause) {
			t.Errorf("%s: expected cause to be reachable via errors.Is", err.Code)
		}
		if !IsStartupCode(err.Code) {
			t.Errorf("%s: expected startup code", err.Code)
		}
	}
}

func TestAppError_StartupKinds_NilCause(t *testing.T) {
	err := TelemetryInit(nil)
	if err.Message == "" {
		t.Error("expected a non-empty message for nil cause")
	}
}

func TestIntoResponse_Table(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"Forbidden", Forbidden(), 401, "Cannot get config: Forbidden"},
		{"Unauthorized", Unauthorized(), 401, "Cannot get config: Unauthorized"},
		{"NotFound", NotFound(), 404, "Cannot get config: Not found"},
		{"TelemetryInit", TelemetryInit(fmt.Errorf("no exporter")), 500, "no exporter"},
		{"LoggingInit", LoggingInit(fmt.Errorf("subscriber already set")), 500, "subscriber already set"},
		{"Plain", fmt.Errorf("dial tcp 10.0.0.7:443: connection refused"), 500, "Internal Server Error"},
		{"Wrapped", fmt.Errorf("handler: %w", NotFound()), 404, "Cannot get config: Not found"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, body := IntoResponse(tc.err)
			if status != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, status)
			}
			var resp map[string]string
			if err := json.Unmarshal(body, &resp); err != nil {
				t.Fatalf("body is not valid JSON: %v", err)
			}
			if resp["error"] != tc.body {
				t.Errorf("expected error %q, got %q", tc.body, resp["error"])
			}
		})
	}
}

func TestIntoResponse_Nil(t *testing.T) {
	status, _ := IntoResponse(nil)
	if status != http.StatusInternalServerError {
		t.Errorf("expected 500 for nil error, got %d", status)
	}
}

func TestAppError_Is_MatchesByCode(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", Forbidden())
	if !stderrors.Is(wrapped, Forbidden()) {
		t.Error("expected errors.Is to match Forbidden by code")
	}
	if stderrors.Is(wrapped, Unauthorized()) {
		t.Error("Forbidden must not match Unauthorized")
	}
}

func TestAppError_WithCause_Chain(t *testing.T) {
	cause := fmt.Errorf("upstream said 403")
	err := Forbidden().WithCause(cause)
	if err.Unwrap() != cause {
		t.Error("expected cause to be set via WithCause")
	}
	if !strings.Contains(err.Error(), "upstream said 403") {
		t.Errorf("Error() should contain cause, got %q", err.Error())
	}
	if err.Message != MsgForbidden {
		t.Error("WithCause must not change the rendered message")
	}
}

func TestWrap_NilReturnsNil(t *testing.T) {
	if Wrap(nil) != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestWrap_AppErrorPassthrough(t *testing.T) {
	orig := NotFound()
	if Wrap(orig) != orig {
		t.Error("Wrap should return the original AppError unchanged")
	}
}

func TestWrap_PlainError(t *testing.T) {
	plain := fmt.Errorf("something broke")
	got := Wrap(plain)
	if got.Code != ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", got.Code)
	}
	if got.Cause != plain {
		t.Error("expected cause to be the original error")
	}
	if got.Message != MsgInternal {
		t.Errorf("expected message %q, got %q", MsgInternal, got.Message)
	}
	if !strings.Contains(got.Error(), "something broke") {
		t.Errorf("Error() should keep the cause for logs, got %q", got.Error())
	}
}

func TestAppError_AsAppError(t *testing.T) {
	wrapped := fmt.Errorf("wrap: %w", Unauthorized())

	got, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to succeed for wrapped AppError")
	}
	if got.Code != ErrCodeUnauthorized {
		t.Errorf("expected UNAUTHORIZED, got %s", got.Code)
	}
	if _, ok := AsAppError(fmt.Errorf("not an app error")); ok {
		t.Error("expected AsAppError to return false for non-AppError")
	}
}
