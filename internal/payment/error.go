package payment

import "errors"

var (
	ErrMissingSecretKey = errors.New("payment provider secret key is not configured")
	ErrChargeNotPaid    = errors.New("payment was declined")
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrEmptyReference   = errors.New("payment reference is required")
)
