package graph

import (
	"context"
	"errors"

	"brytashop-be/internal/graph/model"
	"brytashop-be/internal/order"
)

func (r *mutationResolver) CreateOrder(ctx context.Context, token string) (*model.Order, error) {
	o, err := r.OrderSvc.CreateOrder(ctx, currentActor(ctx), token)
	if err != nil {
		return nil, err
	}
	return mapOrder(o), nil
}

func (r *mutationResolver) CreateOrderPaystack(ctx context.Context, reference string, trans *string, transaction *string, trxref *string) (*model.Order, error) {
	o, err := r.OrderSvc.CreateOrderPaystack(ctx, currentActor(ctx), order.PaystackParams{
		Reference:   reference,
		Trans:       trans,
		Transaction: transaction,
		Trxref:      trxref,
	})
	if err != nil {
		return nil, err
	}
	return mapOrder(o), nil
}

func (r *queryResolver) Order(ctx context.Context, id string) (*model.Order, error) {
	actor := currentActor(ctx)
	if actor.ID == 0 {
		return nil, order.ErrNotLoggedIn
	}

	orderID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	o, err := r.OrderSvc.GetOrder(ctx, actor, orderID)
	if errors.Is(err, order.ErrOrderNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return mapOrder(o), nil
}

func (r *queryResolver) Orders(ctx context.Context, orderBy *model.OrderOrderByInput) ([]*model.Order, error) {
	orders, err := r.OrderSvc.ListOrders(ctx, currentActor(ctx), toOrderSort(orderBy))
	if err != nil {
		return nil, err
	}

	out := make([]*model.Order, len(orders))
	for i, o := range orders {
		out[i] = mapOrder(o)
	}
	return out, nil
}

func (r *orderResolver) User(ctx context.Context, obj *model.Order) (*model.User, error) {
	u, err := r.UserSvc.GetByID(ctx, obj.UserID)
	if err != nil {
		return nil, err
	}
	return mapUser(u), nil
}
