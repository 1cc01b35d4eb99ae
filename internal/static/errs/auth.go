package errs

import "errors"

var InvalidCredentials = errors.New("invalid credentials")

var (
	InternalError   = errors.New("internal error")
	GeneratingToken = errors.New("error generating token")
	Unauthorized    = errors.New("unauthorized")
	Forbidden       = errors.New("forbidden")
)
