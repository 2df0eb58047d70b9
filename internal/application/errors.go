package application

import "errors"

var (
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrUnauthenticated    = errors.New("could not validate credentials")
	ErrDuplicateIdentity  = errors.New("email already registered")
	ErrModelUnavailable   = errors.New("model not loaded")
	ErrInvalidFeature     = errors.New("invalid feature value")
	ErrNonFiniteResult    = errors.New("prediction is not a finite number")
	ErrPasswordTooLong    = errors.New("password exceeds 72 bytes")
)
