package session

import "errors"

var (
	// ErrNoSession is returned when an operation needs a valid credential
	// and none is stored.
	ErrNoSession = errors.New("no active session")

	// ErrInvalidCredential is returned when asked to store a credential that
	// is empty, undecodable or already expired.
	ErrInvalidCredential = errors.New("invalid credential")
)
