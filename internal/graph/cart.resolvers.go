package graph

import (
	"context"

	"brytashop-be/internal/graph/model"
)

func (r *mutationResolver) AddToCart(ctx context.Context, id string) (*model.CartItem, error) {
	itemID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	line, err := r.CartSvc.AddToCart(ctx, currentActor(ctx), itemID)
	if err != nil {
		return nil, err
	}
	return mapCartItem(line), nil
}

func (r *mutationResolver) RemoveFromCart(ctx context.Context, id string) (*model.CartItem, error) {
	cartItemID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	line, err := r.CartSvc.RemoveFromCart(ctx, currentActor(ctx), cartItemID)
	if err != nil {
		return nil, err
	}
	return mapCartItem(line), nil
}

func (r *userResolver) Cart(ctx context.Context, obj *model.User) ([]*model.CartItem, error) {
	userID, err := parseID(obj.ID)
	if err != nil {
		return nil, err
	}

	lines, err := r.CartSvc.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]*model.CartItem, len(lines))
	for i, l := range lines {
		out[i] = mapCartItem(l)
	}
	return out, nil
}
