package errors

import (
	"encoding/json"
	stderrors "errors"
)

// ErrorResponse is the JSON body sent to clients.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToResponse converts an AppError to an ErrorResponse for JSON serialization.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message}
}

// IntoResponse maps any error to its status code and JSON body.
func IntoResponse(err error) (int, []byte) {
	appErr := Wrap(err)
	if appErr == nil {
		appErr = Internal(nil)
	}
	body, _ := json.Marshal(appErr.ToResponse())
	return appErr.HTTPStatus, body
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
