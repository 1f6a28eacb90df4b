package service

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrInvalidCredential     = errors.New("invalid credential")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
	ErrUpstream              = errors.New("data store failure")
)

// Reasons carried by ErrInvalidCredential.
var (
	ErrUnknownDriver = errors.New("unknown driver")
	ErrWrongPIN      = errors.New("wrong pin")
)
