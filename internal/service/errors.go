package service

import "errors"

// ErrorCode discriminates domain failures so callers match on the tag, never
// on the message text.
type ErrorCode string

const (
	CodeEmailTaken         ErrorCode = "EMAIL_TAKEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	CodeRoleNotFound       ErrorCode = "ROLE_NOT_FOUND"
	CodeRoleNameTaken      ErrorCode = "ROLE_NAME_TAKEN"
	CodeRoleInUse          ErrorCode = "ROLE_IN_USE"
	CodeUpdateFailed       ErrorCode = "UPDATE_ERROR"
)

// DomainError carries a taxonomy code plus a user-facing message.
type DomainError struct {
	Code    ErrorCode
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewError creates a tagged domain error.
func NewError(code ErrorCode, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// CodeOf extracts the domain code from an error chain.
func CodeOf(err error) (ErrorCode, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code, true
	}
	return "", false
}
