package order

import (
	"time"

	"brytashop-be/internal/payment"
)

type Order struct {
	ID              uint
	UserID          uint
	Total           int
	Charge          string
	PaymentPlatform payment.Platform
	Reference       *string
	Trans           *string
	Transaction     *string
	Trxref          *string
	Items           []OrderItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem is a copy of an item as it was when the order was paid.
type OrderItem struct {
	ID          uint
	OrderID     uint
	ItemID      *uint
	Title       string
	Description string
	Image       *string
	LargeImage  *string
	Price       int
	Quantity    int
	UserID      uint
}

type PaystackParams struct {
	Reference   string
	Trans       *string
	Transaction *string
	Trxref      *string
}

type SortField string

const (
	SortCreatedAt SortField = "created_at"
	SortTotal     SortField = "total"
)

type Sort struct {
	Field SortField
	Desc  bool
}
