// Copyright (c) 2024 The Pocketnet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package social

import "fmt"

// ErrorKind identifies a kind of error. It has full support for errors.Is
// and errors.As, so the caller can directly check against an ErrorKind
// when determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific ErrorKind.
const (
	// ErrDecode indicates a payload or script was malformed: a required
	// field was absent or had the wrong type.
	ErrDecode = ErrorKind("ErrDecode")

	// ErrUnknownKind indicates a discriminator (OP_RETURN tag or legacy
	// table name) did not resolve to any known social transaction kind.
	ErrUnknownKind = ErrorKind("ErrUnknownKind")

	// ErrStoreUnavailable indicates a RatingsStore query returned ok=false.
	// Consensus treats this as "deny this reputation modification."
	ErrStoreUnavailable = ErrorKind("ErrStoreUnavailable")

	// ErrRuleUnresolved indicates the rule table has no activation_height=0
	// entry for a declared kind. This can only happen as a result of a
	// programming error in the rule table construction and is raised as a
	// panic by NewRuleTable's startup self-check rather than returned.
	ErrRuleUnresolved = ErrorKind("ErrRuleUnresolved")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to social transaction materialization
// or consensus evaluation. It has full support for errors.Is and
// errors.As, so the caller can ascertain the specific reason for the
// error by checking the underlying error.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// makeError creates an Error given a set of arguments.
func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}

// decodeErrorf is a convenience wrapper that formats a description and
// wraps ErrDecode.
func decodeErrorf(format string, args ...interface{}) Error {
	return makeError(ErrDecode, fmt.Sprintf(format, args...))
}
