package adapter

import "errors"

var (
	ErrEmptyAddress        = errors.New("empty address")
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrNotFound            = errors.New("no matching route")
	ErrMethodNotAllowed    = errors.New("unsupported method")
	ErrInternalServerError = errors.New("internal server error")
	ErrServiceUnavailable  = errors.New("service unavailable")
)
