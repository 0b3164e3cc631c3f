package service

import "errors"

var (
	ErrValidation   = errors.New("validation failed")
	ErrForbidden    = errors.New("not allowed to access this resource")
	ErrInvalidState = errors.New("bill is already settled")
	ErrConflict     = errors.New("already exists")
	ErrNotFound     = errors.New("not found")
)

// errNothingToApply aborts a transaction whose referenced rows are missing.
// Operations translate it into a false result rather than an error.
var errNothingToApply = errors.New("nothing to apply")
