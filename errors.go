package main

import (
	"errors"
	"fmt"
)

// AuthError marks credentials that match no row of the user sheet. The
// session is left untouched when it is returned.
type AuthError struct {
	Username string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("invalid credentials for %q", e.Username)
}

// PersistenceError marks a backing store that is unreachable or a
// target row that no longer exists. It is surfaced to the user as-is
// and nothing retries automatically; the user may retry by hand.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ValidationError marks a required field missing from a submission.
// The record is not created or changed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// ErrRecordLocked rejects an edit or delete of a row the lock policy
// holds closed for the acting role.
var ErrRecordLocked = errors.New("record is locked")
