package graph

import (
	"fmt"
	"time"

	"brytashop-be/internal/auth"
	"brytashop-be/internal/cart"
	"brytashop-be/internal/graph/model"
	"brytashop-be/internal/item"
	"brytashop-be/internal/order"
	"brytashop-be/internal/user"
	"brytashop-be/internal/utils"
)

func parseID(id string) (uint, error) {
	n, err := utils.ToUint(id)
	if err != nil || n == 0 {
		return 0, ErrInvalidID
	}
	return n, nil
}

func mapItem(it *item.Item) *model.Item {
	if it == nil {
		return nil
	}
	return &model.Item{
		ID:          fmt.Sprint(it.ID),
		Title:       it.Title,
		Description: it.Description,
		Image:       it.Image,
		LargeImage:  it.LargeImage,
		Price:       it.Price,
	}
}

func mapUser(u *user.User) *model.User {
	if u == nil {
		return nil
	}
	perms := make([]model.Permission, len(u.Permissions))
	for i, p := range u.Permissions {
		perms[i] = model.Permission(p)
	}
	return &model.User{
		ID:          fmt.Sprint(u.ID),
		Name:        u.Name,
		Email:       u.Email,
		Permissions: perms,
	}
}

func mapCartItem(c *cart.CartItem) *model.CartItem {
	if c == nil {
		return nil
	}
	return &model.CartItem{
		ID:       fmt.Sprint(c.ID),
		Quantity: c.Quantity,
		Item:     mapItem(&c.Item),
	}
}

func mapOrder(o *order.Order) *model.Order {
	if o == nil {
		return nil
	}
	items := make([]*model.OrderItem, len(o.Items))
	for i, it := range o.Items {
		items[i] = &model.OrderItem{
			ID:          fmt.Sprint(it.ID),
			Title:       it.Title,
			Description: it.Description,
			Image:       it.Image,
			LargeImage:  it.LargeImage,
			Price:       it.Price,
			Quantity:    it.Quantity,
		}
	}
	return &model.Order{
		ID:              fmt.Sprint(o.ID),
		Items:           items,
		Total:           o.Total,
		Charge:          o.Charge,
		PaymentPlatform: string(o.PaymentPlatform),
		Reference:       o.Reference,
		Trans:           o.Trans,
		Transaction:     o.Transaction,
		Trxref:          o.Trxref,
		UserID:          o.UserID,
		CreatedAt:       o.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toPermissions(in []model.Permission) []auth.Permission {
	out := make([]auth.Permission, len(in))
	for i, p := range in {
		out[i] = auth.Permission(p)
	}
	return out
}

func toItemFilter(where *model.ItemWhereInput) (*item.Filter, error) {
	if where == nil {
		return nil, nil
	}
	f := &item.Filter{
		TitleContains:       where.TitleContains,
		DescriptionContains: where.DescriptionContains,
		Search:              where.Search,
	}
	if where.ID != nil {
		id, err := parseID(*where.ID)
		if err != nil {
			return nil, err
		}
		f.ID = &id
	}
	return f, nil
}

func toItemSort(orderBy *model.ItemOrderByInput) *item.Sort {
	if orderBy == nil {
		return nil
	}
	switch *orderBy {
	case model.ItemOrderByInputCreatedAtAsc:
		return &item.Sort{Field: item.SortCreatedAt}
	case model.ItemOrderByInputCreatedAtDesc:
		return &item.Sort{Field: item.SortCreatedAt, Desc: true}
	case model.ItemOrderByInputPriceAsc:
		return &item.Sort{Field: item.SortPrice}
	case model.ItemOrderByInputPriceDesc:
		return &item.Sort{Field: item.SortPrice, Desc: true}
	case model.ItemOrderByInputTitleAsc:
		return &item.Sort{Field: item.SortTitle}
	case model.ItemOrderByInputTitleDesc:
		return &item.Sort{Field: item.SortTitle, Desc: true}
	}
	return nil
}

func toOrderSort(orderBy *model.OrderOrderByInput) *order.Sort {
	if orderBy == nil {
		return nil
	}
	switch *orderBy {
	case model.OrderOrderByInputCreatedAtAsc:
		return &order.Sort{Field: order.SortCreatedAt}
	case model.OrderOrderByInputCreatedAtDesc:
		return &order.Sort{Field: order.SortCreatedAt, Desc: true}
	case model.OrderOrderByInputTotalAsc:
		return &order.Sort{Field: order.SortTotal}
	case model.OrderOrderByInputTotalDesc:
		return &order.Sort{Field: order.SortTotal, Desc: true}
	}
	return nil
}
