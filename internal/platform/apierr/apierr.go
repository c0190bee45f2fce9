package apierr

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"

	perrors "github.com/yungbote/portfolio-backend/internal/pkg/errors"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// From maps an error chain onto an HTTP status and code. An *Error already in
// the chain wins.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	switch {
	case errors.Is(err, perrors.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return New(http.StatusNotFound, "not_found", err)
	case errors.Is(err, perrors.ErrInvalidArgument):
		return New(http.StatusBadRequest, "invalid_argument", err)
	case errors.Is(err, perrors.ErrUnauthorized):
		return New(http.StatusUnauthorized, "unauthorized", err)
	case errors.Is(err, perrors.ErrMalformedContent):
		return New(http.StatusUnprocessableEntity, "malformed_content", err)
	case errors.Is(err, perrors.ErrEmptyComposition):
		return New(http.StatusUnprocessableEntity, "empty_composition", err)
	case errors.Is(err, perrors.ErrPersistenceFailure):
		return New(http.StatusBadGateway, "persistence_failure", err)
	case errors.Is(err, perrors.ErrSuperseded):
		return New(http.StatusConflict, "superseded", err)
	default:
		return New(http.StatusInternalServerError, "internal", err)
	}
}
