package item

import "errors"

var (
	ErrItemNotFound  = errors.New("item not found")
	ErrTitleRequired = errors.New("title is required")
	ErrNegativePrice = errors.New("price must not be negative")
	ErrNotItemOwner  = errors.New("you don't have permission to do that")
)
