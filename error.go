package xbrlfacts

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"
	EARCHIVE  = "archive"
	EDECODE   = "decode"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("xbrlfacts error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var ae *ArchiveError
	if errors.As(err, &ae) {
		return EARCHIVE
	}
	var de *ElementDecodeError
	if errors.As(err, &de) {
		return EDECODE
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	var ae *ArchiveError
	if errors.As(err, &ae) {
		return ae.Error()
	}
	var de *ElementDecodeError
	if errors.As(err, &de) {
		return de.Error()
	}
	return "Internal error"
}

// ArchiveError reports a malformed or unreadable filing archive.
// It is fatal for the whole archive.
type ArchiveError struct {
	// Path is the entry that failed to read. Empty when the container
	// itself could not be opened.
	Path string
	Err  error
}

func (e *ArchiveError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("malformed archive: %v", e.Err)
	}
	return fmt.Sprintf("unreadable archive entry %q: %v", e.Path, e.Err)
}

func (e *ArchiveError) Unwrap() error {
	return e.Err
}

// ElementDecodeError reports a tagged element whose text could not be
// decoded into an amount. Only the offending element is skipped.
type ElementDecodeError struct {
	AccountItem string
	ContextRef  string
	Text        string
	Err         error
}

func (e *ElementDecodeError) Error() string {
	return fmt.Sprintf("decode %s (context %s) from %q: %v", e.AccountItem, e.ContextRef, e.Text, e.Err)
}

func (e *ElementDecodeError) Unwrap() error {
	return e.Err
}
