package order

import "errors"

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrNotLoggedIn          = errors.New("you are not logged in")
	ErrCannotSeeOrder       = errors.New("you can't see this order")
	ErrMissingPaymentToken  = errors.New("payment token is required")
	ErrPaymentAlreadyUsed   = errors.New("this payment reference has already been used")
	ErrPaymentNotSuccessful = errors.New("payment was not successful")
	ErrAmountMismatch       = errors.New("payment amount does not match cart total")

	pgUniqueViolation = "23505"
)
