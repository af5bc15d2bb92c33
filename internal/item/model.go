package item

import "time"

// MaxPageSize caps how many items one listing returns.
const MaxPageSize = 100

type Item struct {
	ID          uint
	Title       string
	Description string
	Image       *string
	LargeImage  *string
	Price       int
	UserID      uint
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateParams struct {
	Title       string
	Description string
	Image       *string
	LargeImage  *string
	Price       int
}

// UpdateParams holds a partial update; nil fields keep their stored value.
type UpdateParams struct {
	Title       *string
	Description *string
	Image       *string
	LargeImage  *string
	Price       *int
}

type Filter struct {
	ID                  *uint
	TitleContains       *string
	DescriptionContains *string
	Search              *string
}

type SortField string

const (
	SortCreatedAt SortField = "created_at"
	SortPrice     SortField = "price"
	SortTitle     SortField = "title"
)

type Sort struct {
	Field SortField
	Desc  bool
}

type ListParams struct {
	Filter *Filter
	Sort   *Sort
	Skip   int
	// First is nil for the default page size.
	First *int
}
