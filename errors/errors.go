package errors

import "fmt"

var (
	ErrWorkerPanic        = fmt.Errorf("worker panic")
	ErrRemoteUnavailable  = fmt.Errorf("remote store unavailable")
	ErrRecordNotFound     = fmt.Errorf("record not found")
	ErrAuthentication     = fmt.Errorf("remote store authentication failed")
	ErrInvalidRecord      = fmt.Errorf("invalid record")
	ErrInvalidEventWindow = fmt.Errorf("endsAt must be after startsAt")
	ErrSchemaViolation    = fmt.Errorf("entry does not match schema")
	ErrInvalidInput       = fmt.Errorf("invalid form input")
	ErrSubmissionFailed   = fmt.Errorf("form submission failed")
	ErrAlreadySubscribed  = fmt.Errorf("email already subscribed")
	ErrClaimPending       = fmt.Errorf("subscription already in progress")
	ErrEmptyTerms         = fmt.Errorf("no terms have been found")
	ErrEntryNotFound      = fmt.Errorf("entry not found")
	ErrEmptyWords         = fmt.Errorf("no blocked words have been found")
)
