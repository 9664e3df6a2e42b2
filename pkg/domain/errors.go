package domain

import "errors"

// ErrNodeNotFound is returned when a pathway node id is unknown.
var ErrNodeNotFound = errors.New("pathway not found")

// ErrInterestNotFound is returned when a career interest id is unknown.
var ErrInterestNotFound = errors.New("career interest not found")

// ErrStudentNotFound is returned when a student id is unknown.
var ErrStudentNotFound = errors.New("student not found")

// ErrProgressNotFound is returned when no progress exists for a student/interest pair.
var ErrProgressNotFound = errors.New("progress not found")

// ErrSessionNotFound is returned when an explorer session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrInvalidStatus is returned when a status filter value is not a known node status.
var ErrInvalidStatus = errors.New("invalid status")

// ErrReadOnly is returned by repositories that do not accept writes.
var ErrReadOnly = errors.New("repository is read-only")

// ErrInvalidNode is returned when a node cannot be stored (unknown pathway type, missing interest).
var ErrInvalidNode = errors.New("invalid pathway node")

// DocumentError reports a stored document that could not be turned into a node.
// Repositories that skip such documents return them joined with errors.Join.
type DocumentError struct {
	Document string
	Err      error
}

func (e *DocumentError) Error() string {
	return "document " + e.Document + ": " + e.Err.Error()
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}
