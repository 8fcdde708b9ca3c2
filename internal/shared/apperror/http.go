package apperror

import (
	"errors"
	"net/http"
)

// HTTPError is the transport view of an error, ready for response.Error.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details interface{}
}

// ToHTTP resolves an error to its HTTP representation. AppErrors anywhere
// in the chain keep their code, message, and status; anything else becomes
// a generic 500 so internals never leak to the client.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: nil,
		}
	}

	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: ErrInternal.Message,
		Details: nil,
	}
}
