package document

import "errors"

// Every error returned by this package wraps exactly one of these kinds.
var (
	ErrIO          = errors.New("io failure")
	ErrMalformed   = errors.New("malformed document")
	ErrKeyNotFound = errors.New("key not found")
	ErrFields      = errors.New("bad fields")
)
