package auth

import "errors"

var ErrMissingToken = errors.New("missing-token")

var (
	ErrMissingTokenStr  = "missing-token"
	ErrExpiredTokenStr  = "expired-token"
	ErrServerTimeoutStr = "server-timeout"
	ErrUnknownStr       = "unknown-error"
)
