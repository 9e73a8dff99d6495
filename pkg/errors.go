package pkg

import "errors"

// ErrorKind classifies failures raised by the manifest processor.
type ErrorKind string

const (
	KindManifestNotFound ErrorKind = "MANIFEST_NOT_FOUND"
	KindManifestInvalid  ErrorKind = "MANIFEST_INVALID"
	KindInvalidSemver    ErrorKind = "INVALID_SEMVER"
)

// Valid reports whether k is one of the known kinds.
func (k ErrorKind) Valid() bool {
	switch k {
	case KindManifestNotFound, KindManifestInvalid, KindInvalidSemver:
		return true
	}
	return false
}

// Sentinels for errors.Is. Only the kind is compared.
var (
	ErrManifestNotFound = &Error{Kind: KindManifestNotFound}
	ErrManifestInvalid  = &Error{Kind: KindManifestInvalid}
	ErrInvalidSemver    = &Error{Kind: KindInvalidSemver}
)

// Error is the classified error returned by Processor operations.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func newError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// IsManifestError reports whether err, or any error it wraps, is an *Error
// carrying one of the known kinds.
func IsManifestError(err error) bool {
	_, ok := KindOf(err)
	return ok
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if !errors.As(err, &e) || e == nil {
		return "", false
	}
	if !e.Kind.Valid() {
		return "", false
	}
	return e.Kind, true
}
