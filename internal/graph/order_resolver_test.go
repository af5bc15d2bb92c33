package graph

import (
	"context"
	"testing"
	"time"

	"brytashop-be/internal/auth"
	"brytashop-be/internal/cart"
	"brytashop-be/internal/graph/model"
	"brytashop-be/internal/order"
	"brytashop-be/internal/payment"
	"brytashop-be/internal/user"
	"brytashop-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleOrder() *order.Order {
	itemID := uint(8)
	return &order.Order{
		ID:              30,
		UserID:          3,
		Total:           1000,
		Charge:          "ch_1",
		PaymentPlatform: payment.PlatformStripe,
		Items: []order.OrderItem{
			{ID: 1, OrderID: 30, ItemID: &itemID, Title: "Hat", Price: 500, Quantity: 2, UserID: 3},
		},
		CreatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestMutationResolver_CreateOrder(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockOrderService)
		mr := &mutationResolver{&Resolver{OrderSvc: svc}}
		ctx := signedIn(3)
		actor, _ := utils.GetActorFromContext(ctx)

		svc.On("CreateOrder", ctx, actor, "tok_visa").Return(sampleOrder(), nil)

		res, err := mr.CreateOrder(ctx, "tok_visa")
		require.NoError(t, err)
		assert.Equal(t, "30", res.ID)
		assert.Equal(t, "Stripe", res.PaymentPlatform)
		assert.Equal(t, "2024-03-01T10:00:00Z", res.CreatedAt)
		require.Len(t, res.Items, 1)
		assert.Equal(t, 2, res.Items[0].Quantity)
	})

	t.Run("EmptyCart", func(t *testing.T) {
		svc := new(MockOrderService)
		mr := &mutationResolver{&Resolver{OrderSvc: svc}}
		ctx := signedIn(3)
		svc.On("CreateOrder", ctx, mock.Anything, "tok_visa").Return(nil, cart.ErrCartEmpty)

		_, err := mr.CreateOrder(ctx, "tok_visa")
		assert.Error(t, err)
	})
}

func TestMutationResolver_CreateOrderPaystack(t *testing.T) {
	svc := new(MockOrderService)
	mr := &mutationResolver{&Resolver{OrderSvc: svc}}
	ctx := signedIn(3)
	trxref := "ref_1"

	o := sampleOrder()
	o.PaymentPlatform = payment.PlatformPaystack
	o.Reference = utils.StrPtr("ref_1")
	svc.On("CreateOrderPaystack", ctx, mock.Anything, order.PaystackParams{Reference: "ref_1", Trxref: &trxref}).Return(o, nil)

	res, err := mr.CreateOrderPaystack(ctx, "ref_1", nil, nil, &trxref)
	require.NoError(t, err)
	assert.Equal(t, "Paystack", res.PaymentPlatform)
	assert.Equal(t, "ref_1", *res.Reference)
}

func TestQueryResolver_Order(t *testing.T) {
	t.Run("Anonymous", func(t *testing.T) {
		qr := &queryResolver{&Resolver{OrderSvc: new(MockOrderService)}}
		_, err := qr.Order(context.Background(), "30")
		assert.EqualError(t, err, "you are not logged in")
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := new(MockOrderService)
		qr := &queryResolver{&Resolver{OrderSvc: svc}}
		ctx := signedIn(3)
		svc.On("GetOrder", ctx, mock.Anything, uint(30)).Return(nil, order.ErrOrderNotFound)

		res, err := qr.Order(ctx, "30")
		assert.NoError(t, err)
		assert.Nil(t, res)
	})

	t.Run("Forbidden", func(t *testing.T) {
		svc := new(MockOrderService)
		qr := &queryResolver{&Resolver{OrderSvc: svc}}
		ctx := signedIn(4, auth.PermissionUser)
		svc.On("GetOrder", ctx, mock.Anything, uint(30)).Return(nil, order.ErrCannotSeeOrder)

		_, err := qr.Order(ctx, "30")
		assert.EqualError(t, err, "you can't see this order")
	})
}

func TestQueryResolver_Orders(t *testing.T) {
	svc := new(MockOrderService)
	qr := &queryResolver{&Resolver{OrderSvc: svc}}
	ctx := signedIn(3)
	by := model.OrderOrderByInputTotalDesc

	svc.On("ListOrders", ctx, mock.Anything, &order.Sort{Field: order.SortTotal, Desc: true}).
		Return([]*order.Order{sampleOrder()}, nil)

	res, err := qr.Orders(ctx, &by)
	require.NoError(t, err)
	assert.Len(t, res, 1)
}

func TestOrderResolver_User(t *testing.T) {
	ctx := signedIn(3)
	o := mapOrder(sampleOrder())

	t.Run("Owner", func(t *testing.T) {
		users := new(MockUserService)
		or := &orderResolver{&Resolver{UserSvc: users}}
		users.On("GetByID", ctx, uint(3)).
			Return(&user.User{ID: 3, Name: "Jane", Email: "jane@example.com", Permissions: []auth.Permission{auth.PermissionUser}}, nil)

		res, err := or.User(ctx, o)
		require.NoError(t, err)
		assert.Equal(t, "3", res.ID)
		assert.Equal(t, "Jane", res.Name)
		users.AssertExpectations(t)
	})

	t.Run("MissingUser", func(t *testing.T) {
		users := new(MockUserService)
		or := &orderResolver{&Resolver{UserSvc: users}}
		users.On("GetByID", ctx, uint(3)).Return(nil, user.ErrUserNotFound)

		_, err := or.User(ctx, o)
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})
}
