package apperr

import "errors"

// ErrInvalidInput is returned when the provided input fails validation.
// Use errors.Is(err, apperr.ErrInvalidInput) to detect validation failures
// uniformly across all services.
var ErrInvalidInput = errors.New("invalid input")

// ErrRequestFailed is returned by any upstream-backed service when the request
// fails at the transport level, the server responds with a non-2xx status, or
// the response body reports a failure.
var ErrRequestFailed = errors.New("request failed")

// ErrPAPBlocked is returned when a service's PAP level exceeds the user-defined limit.
var ErrPAPBlocked = errors.New("PAP limit exceeded")
