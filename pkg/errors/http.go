package errors

import (
	"errors"
	"net/http"
)

var statusByType = map[ErrorType]int{
	ErrorTypeInvalidRequest:     http.StatusBadRequest,
	ErrorTypeServiceUnavailable: http.StatusServiceUnavailable,
}

// HTTPStatusCode maps err to a response status. Anything unclassified is a 500.
func HTTPStatusCode(err error) int {
	if status, ok := statusByType[GetErrorType(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// GetHumanReadableMessage never exposes wrapped driver or stack messages.
func GetHumanReadableMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "An unexpected error occurred"
}
