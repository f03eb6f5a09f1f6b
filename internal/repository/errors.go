package repository

import "errors"

var (
	// ErrNotFound means no document matched the given id.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyConfirmed means the service log entry already left the
	// unconfirmed state; confirmation is a one-shot transition.
	ErrAlreadyConfirmed = errors.New("service log already confirmed")
)
