package domain

import "errors"

// Sentinel errors shared between services and repositories. The HTTP mapping
// lives in pkg/util; "not found" deliberately covers both a missing row and a
// row owned by another account so callers cannot probe for other users' data.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
