package user

import "errors"

var (
	ErrEmailExists       = errors.New("email already registered")
	ErrUserNotFound      = errors.New("no such user found")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrPasswordMismatch  = errors.New("passwords don't match")
	ErrInvalidResetToken = errors.New("this token is either invalid or expired")
	ErrMissingFields     = errors.New("email, name and password are required")

	pgUniqueViolation = "23505"
)
