package model

import (
	"fmt"
	"io"
	"strconv"
)

type Permission string

const (
	PermissionAdmin            Permission = "ADMIN"
	PermissionUser             Permission = "USER"
	PermissionItemcreate       Permission = "ITEMCREATE"
	PermissionItemupdate       Permission = "ITEMUPDATE"
	PermissionItemdelete       Permission = "ITEMDELETE"
	PermissionPermissionupdate Permission = "PERMISSIONUPDATE"
)

var AllPermission = []Permission{
	PermissionAdmin,
	PermissionUser,
	PermissionItemcreate,
	PermissionItemupdate,
	PermissionItemdelete,
	PermissionPermissionupdate,
}

func (e Permission) IsValid() bool {
	for _, p := range AllPermission {
		if e == p {
			return true
		}
	}
	return false
}

func (e Permission) String() string {
	return string(e)
}

func (e *Permission) UnmarshalGQL(v interface{}) error {
	return unmarshalEnum(v, "Permission", func(s string) bool {
		*e = Permission(s)
		return e.IsValid()
	})
}

func (e Permission) MarshalGQL(w io.Writer) {
	fmt.Fprint(w, strconv.Quote(e.String()))
}

type ItemOrderByInput string

const (
	ItemOrderByInputCreatedAtAsc  ItemOrderByInput = "createdAt_ASC"
	ItemOrderByInputCreatedAtDesc ItemOrderByInput = "createdAt_DESC"
	ItemOrderByInputPriceAsc      ItemOrderByInput = "price_ASC"
	ItemOrderByInputPriceDesc     ItemOrderByInput = "price_DESC"
	ItemOrderByInputTitleAsc      ItemOrderByInput = "title_ASC"
	ItemOrderByInputTitleDesc     ItemOrderByInput = "title_DESC"
)

var AllItemOrderByInput = []ItemOrderByInput{
	ItemOrderByInputCreatedAtAsc,
	ItemOrderByInputCreatedAtDesc,
	ItemOrderByInputPriceAsc,
	ItemOrderByInputPriceDesc,
	ItemOrderByInputTitleAsc,
	ItemOrderByInputTitleDesc,
}

func (e ItemOrderByInput) IsValid() bool {
	for _, o := range AllItemOrderByInput {
		if e == o {
			return true
		}
	}
	return false
}

func (e ItemOrderByInput) String() string {
	return string(e)
}

func (e *ItemOrderByInput) UnmarshalGQL(v interface{}) error {
	return unmarshalEnum(v, "ItemOrderByInput", func(s string) bool {
		*e = ItemOrderByInput(s)
		return e.IsValid()
	})
}

func (e ItemOrderByInput) MarshalGQL(w io.Writer) {
	fmt.Fprint(w, strconv.Quote(e.String()))
}

type OrderOrderByInput string

const (
	OrderOrderByInputCreatedAtAsc  OrderOrderByInput = "createdAt_ASC"
	OrderOrderByInputCreatedAtDesc OrderOrderByInput = "createdAt_DESC"
	OrderOrderByInputTotalAsc      OrderOrderByInput = "total_ASC"
	OrderOrderByInputTotalDesc     OrderOrderByInput = "total_DESC"
)

var AllOrderOrderByInput = []OrderOrderByInput{
	OrderOrderByInputCreatedAtAsc,
	OrderOrderByInputCreatedAtDesc,
	OrderOrderByInputTotalAsc,
	OrderOrderByInputTotalDesc,
}

func (e OrderOrderByInput) IsValid() bool {
	for _, o := range AllOrderOrderByInput {
		if e == o {
			return true
		}
	}
	return false
}

func (e OrderOrderByInput) String() string {
	return string(e)
}

func (e *OrderOrderByInput) UnmarshalGQL(v interface{}) error {
	return unmarshalEnum(v, "OrderOrderByInput", func(s string) bool {
		*e = OrderOrderByInput(s)
		return e.IsValid()
	})
}

func (e OrderOrderByInput) MarshalGQL(w io.Writer) {
	fmt.Fprint(w, strconv.Quote(e.String()))
}

func unmarshalEnum(v interface{}, name string, set func(string) bool) error {
	str, ok := v.(string)
	if !ok {
		return fmt.Errorf("enums must be strings")
	}
	if !set(str) {
		return fmt.Errorf("%s is not a valid %s", str, name)
	}
	return nil
}
