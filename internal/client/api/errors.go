package api

import "errors"

var (
	// ErrUnavailable signals a transport-level failure: the request never
	// produced an HTTP response (connection refused, timeout, DNS).
	ErrUnavailable = errors.New("server unavailable")

	// ErrBadResponse signals a response that does not match the documented
	// contract (undecodable body, missing envelope data).
	ErrBadResponse = errors.New("malformed server response")
)
