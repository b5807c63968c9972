package graphql

import (
	"errors"
	"net/http"

	"github.com/bloghub/blog-api/internal/core/domain"
)

// Error is a resolver error carrying the numeric code and optional structured
// detail rendered into the response envelope as {message, data, code}.
type Error struct {
	Message string
	Code    int
	Data    []domain.FieldError
}

func (e *Error) Error() string { return e.Message }

// Extensions satisfies the graphql-go ResolverError interface so the code and
// detail survive query execution and reach the response formatter.
func (e *Error) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": e.Code}
	if len(e.Data) > 0 {
		ext["data"] = e.Data
	}
	return ext
}

// wrapErr maps domain errors onto the API error taxonomy. Unrecognized errors
// surface as a generic 500 without leaking their cause.
func wrapErr(err error) *Error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return &Error{Message: "invalid data", Code: http.StatusBadRequest, Data: ve.Fields}
	}

	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}

	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		return &Error{Message: "not authenticated", Code: http.StatusUnauthorized}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return &Error{Message: "invalid credentials", Code: http.StatusUnauthorized}
	case errors.Is(err, domain.ErrForbidden):
		return &Error{Message: "not authorized", Code: http.StatusForbidden}
	case errors.Is(err, domain.ErrPostNotFound):
		return &Error{Message: "post not found", Code: http.StatusNotFound}
	case errors.Is(err, domain.ErrUserNotFound):
		return &Error{Message: "user not found", Code: http.StatusNotFound}
	case errors.Is(err, domain.ErrUserExists):
		return &Error{Message: "email already registered", Code: http.StatusConflict}
	}

	return &Error{Message: "internal server error", Code: http.StatusInternalServerError}
}
