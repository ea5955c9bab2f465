package credsync

import "errors"

var (
	// ErrNoCredential indicates no credential is persisted.
	ErrNoCredential = errors.New("credsync: no credential")

	// ErrInvalidCredential indicates the persisted value could not be decoded.
	ErrInvalidCredential = errors.New("credsync: invalid credential")
)
