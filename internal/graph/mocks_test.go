package graph

import (
	"context"

	"brytashop-be/internal/auth"
	"brytashop-be/internal/cart"
	"brytashop-be/internal/item"
	"brytashop-be/internal/order"
	"brytashop-be/internal/user"

	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

type MockItemService struct{ mock.Mock }

func (m *MockItemService) Create(ctx context.Context, a auth.Actor, p item.CreateParams) (*item.Item, error) {
	args := m.Called(ctx, a, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Item), args.Error(1)
}

func (m *MockItemService) Update(ctx context.Context, a auth.Actor, id uint, p item.UpdateParams) (*item.Item, error) {
	args := m.Called(ctx, a, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Item), args.Error(1)
}

func (m *MockItemService) Delete(ctx context.Context, a auth.Actor, id uint) (*item.Item, error) {
	args := m.Called(ctx, a, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Item), args.Error(1)
}

func (m *MockItemService) Get(ctx context.Context, id uint) (*item.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Item), args.Error(1)
}

func (m *MockItemService) List(ctx context.Context, p item.ListParams) ([]*item.Item, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*item.Item), args.Error(1)
}

func (m *MockItemService) Count(ctx context.Context, f *item.Filter) (int, error) {
	args := m.Called(ctx, f)
	return args.Int(0), args.Error(1)
}

type MockUserService struct{ mock.Mock }

func (m *MockUserService) Signup(ctx context.Context, p user.SignupParams) (*user.User, string, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*user.User), args.String(1), args.Error(2)
}

func (m *MockUserService) Signin(ctx context.Context, email, password string) (*user.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*user.User), args.String(1), args.Error(2)
}

func (m *MockUserService) RequestReset(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockUserService) ResetPassword(ctx context.Context, p user.ResetPasswordParams) (*user.User, string, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*user.User), args.String(1), args.Error(2)
}

func (m *MockUserService) UpdatePermissions(ctx context.Context, a auth.Actor, id uint, perms []auth.Permission) (*user.User, error) {
	args := m.Called(ctx, a, id, perms)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id uint) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context, a auth.Actor) ([]*user.User, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.User), args.Error(1)
}

type MockCartService struct{ mock.Mock }

func (m *MockCartService) AddToCart(ctx context.Context, a auth.Actor, itemID uint) (*cart.CartItem, error) {
	args := m.Called(ctx, a, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartItem), args.Error(1)
}

func (m *MockCartService) RemoveFromCart(ctx context.Context, a auth.Actor, id uint) (*cart.CartItem, error) {
	args := m.Called(ctx, a, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartItem), args.Error(1)
}

func (m *MockCartService) GetCart(ctx context.Context, userID uint) ([]*cart.CartItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cart.CartItem), args.Error(1)
}

type MockOrderService struct{ mock.Mock }

func (m *MockOrderService) CreateOrder(ctx context.Context, a auth.Actor, token string) (*order.Order, error) {
	args := m.Called(ctx, a, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) CreateOrderPaystack(ctx context.Context, a auth.Actor, p order.PaystackParams) (*order.Order, error) {
	args := m.Called(ctx, a, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) GetOrder(ctx context.Context, a auth.Actor, id uint) (*order.Order, error) {
	args := m.Called(ctx, a, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) ListOrders(ctx context.Context, a auth.Actor, s *order.Sort) ([]*order.Order, error) {
	args := m.Called(ctx, a, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) ReconcilePaystackCharge(ctx context.Context, ref string, amount int) error {
	return m.Called(ctx, ref, amount).Error(0)
}
