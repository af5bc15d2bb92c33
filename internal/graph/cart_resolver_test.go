package graph

import (
	"context"
	"errors"
	"testing"

	"brytashop-be/internal/cart"
	"brytashop-be/internal/graph/model"
	"brytashop-be/internal/item"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMutationResolver_AddToCart(t *testing.T) {
	svc := new(MockCartService)
	mr := &mutationResolver{&Resolver{CartSvc: svc}}
	ctx := signedIn(3)

	svc.On("AddToCart", ctx, mock.Anything, uint(8)).
		Return(&cart.CartItem{ID: 20, Quantity: 2, UserID: 3, Item: item.Item{ID: 8, Title: "Hat", Price: 500}}, nil)

	res, err := mr.AddToCart(ctx, "8")
	require.NoError(t, err)
	assert.Equal(t, "20", res.ID)
	assert.Equal(t, 2, res.Quantity)
	assert.Equal(t, "8", res.Item.ID)
}

func TestMutationResolver_RemoveFromCart(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr string
	}{
		{"Removed", nil, ""},
		{"Missing", cart.ErrCartItemNotFound, "no cart item found"},
		{"NotOwner", cart.ErrNotYourCart, "not your cart"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCartService)
			mr := &mutationResolver{&Resolver{CartSvc: svc}}
			ctx := signedIn(3)

			if tt.err != nil {
				svc.On("RemoveFromCart", ctx, mock.Anything, uint(20)).Return(nil, tt.err)
			} else {
				svc.On("RemoveFromCart", ctx, mock.Anything, uint(20)).Return(&cart.CartItem{ID: 20, Quantity: 1}, nil)
			}

			res, err := mr.RemoveFromCart(ctx, "20")
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "20", res.ID)
		})
	}
}

func TestUserResolver_Cart(t *testing.T) {
	svc := new(MockCartService)
	ur := &userResolver{&Resolver{CartSvc: svc}}
	ctx := context.Background()

	svc.On("GetCart", ctx, uint(3)).Return([]*cart.CartItem{
		{ID: 1, Quantity: 1, Item: item.Item{ID: 8}},
		{ID: 2, Quantity: 4, Item: item.Item{ID: 9}},
	}, nil)

	res, err := ur.Cart(ctx, &model.User{ID: "3"})
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, 4, res[1].Quantity)

	svc.On("GetCart", ctx, uint(4)).Return(nil, errors.New("db down"))
	_, err = ur.Cart(ctx, &model.User{ID: "4"})
	assert.EqualError(t, err, "db down")
}
