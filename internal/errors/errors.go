package errors

import (
	stderrors "errors"
)

// Is and As re-export the standard helpers so callers importing this package
// under its own name do not need a second errors import.
var (
	Is = stderrors.Is
	As = stderrors.As
)

// TypeOf returns the ErrorType of the first AppError in err's chain.
func TypeOf(err error) (ErrorType, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type, true
	}
	return "", false
}

func hasType(err error, want ErrorType) bool {
	got, ok := TypeOf(err)
	return ok && got == want
}

// IsConfiguration reports whether err is a configuration error
func IsConfiguration(err error) bool { return hasType(err, ErrTypeConfiguration) }

// IsParse reports whether err is a parse error
func IsParse(err error) bool { return hasType(err, ErrTypeParsing) }

// IsMissingKey reports whether err is a missing key error
func IsMissingKey(err error) bool { return hasType(err, ErrTypeMissingKey) }

// IsUnsupportedMethod reports whether err is an unsupported method error
func IsUnsupportedMethod(err error) bool { return hasType(err, ErrTypeUnsupportedMethod) }

// IsEmptyResult reports whether err is an empty result warning
func IsEmptyResult(err error) bool { return hasType(err, ErrTypeEmptyResult) }

// IsFatal reports whether err must abort the whole run. Configuration and
// missing-key errors mean the inputs are structurally wrong.
func IsFatal(err error) bool {
	return IsConfiguration(err) || IsMissingKey(err)
}

// IsWarning reports whether err only signals a recoverable condition.
func IsWarning(err error) bool {
	return IsEmptyResult(err)
}
