package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found,
// or is not owned by the requesting user.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInsufficientFunds indicates that a debit would push a client balance below zero.
var ErrInsufficientFunds = errors.New("insufficient funds")
