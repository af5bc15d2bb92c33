package cart

import (
	"context"
	"testing"

	"brytashop-be/internal/auth"
	"brytashop-be/internal/item"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Upsert(ctx context.Context, userID, itemID uint) (*CartItem, error) {
	args := m.Called(ctx, userID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CartItem), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id uint) (*CartItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CartItem), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) ListByUser(ctx context.Context, userID uint) ([]*CartItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*CartItem), args.Error(1)
}

// MockItemRepository only backs the existence check.
type MockItemRepository struct {
	mock.Mock
	item.Repository
}

func (m *MockItemRepository) GetByID(ctx context.Context, id uint) (*item.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Item), args.Error(1)
}

var buyer = auth.Actor{ID: 1, Permissions: []auth.Permission{auth.PermissionUser}}

func TestService_AddToCart(t *testing.T) {
	ctx := context.Background()

	t.Run("NotLoggedIn", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockItemRepository))
		_, err := svc.AddToCart(ctx, auth.Actor{}, 5)
		assert.ErrorIs(t, err, auth.ErrNotLoggedIn)
	})

	t.Run("UnknownItem", func(t *testing.T) {
		repo := new(MockRepository)
		items := new(MockItemRepository)
		items.On("GetByID", ctx, uint(5)).Return(nil, item.ErrItemNotFound)

		_, err := NewService(repo, items).AddToCart(ctx, buyer, 5)
		assert.ErrorIs(t, err, item.ErrItemNotFound)
		repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Upserts", func(t *testing.T) {
		repo := new(MockRepository)
		items := new(MockItemRepository)
		items.On("GetByID", ctx, uint(5)).Return(&item.Item{ID: 5}, nil)
		repo.On("Upsert", ctx, uint(1), uint(5)).Return(&CartItem{ID: 3, Quantity: 2, UserID: 1}, nil)

		line, err := NewService(repo, items).AddToCart(ctx, buyer, 5)
		require.NoError(t, err)
		assert.Equal(t, 2, line.Quantity)
	})
}

func TestService_RemoveFromCart(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByID", ctx, uint(3)).Return(nil, ErrCartItemNotFound)

		_, err := NewService(repo, nil).RemoveFromCart(ctx, buyer, 3)
		assert.EqualError(t, err, "no cart item found")
	})

	t.Run("NotYours", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByID", ctx, uint(3)).Return(&CartItem{ID: 3, UserID: 42}, nil)

		_, err := NewService(repo, nil).RemoveFromCart(ctx, buyer, 3)
		assert.EqualError(t, err, "not your cart")
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Removes", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByID", ctx, uint(3)).Return(&CartItem{ID: 3, UserID: 1}, nil)
		repo.On("Delete", ctx, uint(3)).Return(nil)

		line, err := NewService(repo, nil).RemoveFromCart(ctx, buyer, 3)
		require.NoError(t, err)
		assert.Equal(t, uint(3), line.ID)
		repo.AssertExpectations(t)
	})
}

func TestTotal(t *testing.T) {
	lines := []*CartItem{
		{Quantity: 2, Item: item.Item{Price: 300}},
		{Quantity: 1, Item: item.Item{Price: 50}},
	}
	assert.Equal(t, 650, Total(lines))
	assert.Equal(t, 0, Total(nil))
}
