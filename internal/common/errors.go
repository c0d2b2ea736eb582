// Package common defines shared constants, sentinel errors and random helpers
// used across the credential table and the services built on it. Callers
// should use errors.Is to match the error values.
package common

import "errors"

var (
	// Lookup errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Credential errors.
	ErrorInvalidCredential = errors.New("wrong password")
	ErrorUnauthorized      = errors.New("unauthorized")

	// Session token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Storage errors. ErrorTableFull means a probe walked every bucket without
	// finding a free slot, which the load factor should make unreachable.
	ErrorTableFull = errors.New("table full")

	ErrorInvalidConfig = errors.New("invalid config")
	ErrorInternal      = errors.New("internal error")
)
