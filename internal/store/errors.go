package store

import "errors"

// ErrorKind classifies a failed operation so the HTTP layer can pick a status
// code without inspecting message text.
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindConflict
	KindAuthentication
	KindPermission
	KindNotFound
)

type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func validationErr(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func conflictErr(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func authErr(msg string) *Error {
	return &Error{Kind: KindAuthentication, Message: msg}
}

func permissionErr(msg string) *Error {
	return &Error{Kind: KindPermission, Message: msg}
}

func notFoundErr(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// KindOf extracts the error kind, defaulting to validation for foreign errors
// so nothing internal leaks with a 500.
func KindOf(err error) (ErrorKind, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return KindValidation, false
}
