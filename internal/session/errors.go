package session

import "errors"

var (
	ErrEmptyAssessment = errors.New("assessment has no questions")
	ErrNotInProgress   = errors.New("session is not in progress")
	ErrSessionClosed   = errors.New("session is closed")
	ErrWrongKind       = errors.New("operation not supported for this assessment kind")
	ErrUnknownQuestion = errors.New("question index out of range")
	ErrUnknownOption   = errors.New("option is not offered by this question")
	ErrUnknownItem     = errors.New("item is not available")
	ErrUnknownZone     = errors.New("drop zone does not exist")
)
