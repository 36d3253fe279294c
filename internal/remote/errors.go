package remote

import (
	"context"
	"errors"

	"github.com/slok/cpm/internal/model"
)

// Kind is the failure category of a remote call.
type Kind string

const (
	// KindNetwork is a transport level failure, the server was not reached or didn't answer.
	KindNetwork Kind = "network"
	// KindNotFound means the entity doesn't exist on the server.
	KindNotFound Kind = "not-found"
	// KindValidation means the payload was rejected as malformed.
	KindValidation Kind = "validation"
	// KindUnknown is any other failure.
	KindUnknown Kind = "unknown"
)

// Error is the typed failure returned by every remote call.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is maps the failure kinds onto the model sentinel errors.
func (e *Error) Is(target error) bool {
	switch target {
	case model.ErrNotFound:
		return e.Kind == KindNotFound
	case model.ErrNotValid:
		return e.Kind == KindValidation
	}
	return false
}

// KindOf returns the failure kind of an error returned by this package.
func KindOf(err error) Kind {
	var rerr *Error
	switch {
	case err == nil:
		return ""
	case errors.As(err, &rerr):
		return rerr.Kind
	case errors.Is(err, model.ErrNotFound):
		return KindNotFound
	case errors.Is(err, model.ErrNotValid):
		return KindValidation
	case errors.Is(err, context.DeadlineExceeded):
		return KindNetwork
	default:
		return KindUnknown
	}
}

// Message returns the human readable message of an error, ready to be shown to users.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var rerr *Error
	if errors.As(err, &rerr) {
		return rerr.Error()
	}
	return err.Error()
}

func validationError(err error) *Error {
	return &Error{Kind: KindValidation, Message: err.Error(), Err: err}
}
