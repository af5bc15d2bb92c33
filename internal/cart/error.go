package cart

import "errors"

var (
	// -- Resource State --
	ErrCartItemNotFound = errors.New("no cart item found")
	ErrNotYourCart      = errors.New("not your cart")
	ErrCartEmpty        = errors.New("your cart is empty")

	// -- Constants (External Systems) --
	pgForeignKeyViolation = "23503"
)
