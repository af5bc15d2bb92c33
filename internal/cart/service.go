package cart

import (
	"context"

	"brytashop-be/internal/auth"
	"brytashop-be/internal/item"
	"brytashop-be/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for carts.
type Service interface {
	AddToCart(ctx context.Context, actor auth.Actor, itemID uint) (*CartItem, error)
	RemoveFromCart(ctx context.Context, actor auth.Actor, cartItemID uint) (*CartItem, error)
	GetCart(ctx context.Context, userID uint) ([]*CartItem, error)
}

type service struct {
	repo     Repository
	itemRepo item.Repository
}

func NewService(repo Repository, itemRepo item.Repository) Service {
	return &service{repo: repo, itemRepo: itemRepo}
}

func (s *service) AddToCart(ctx context.Context, actor auth.Actor, itemID uint) (*CartItem, error) {
	if actor.ID == 0 {
		return nil, auth.ErrNotLoggedIn
	}

	if _, err := s.itemRepo.GetByID(ctx, itemID); err != nil {
		return nil, err
	}

	line, err := s.repo.Upsert(ctx, actor.ID, itemID)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("added to cart",
		zap.Uint("user_id", actor.ID),
		zap.Uint("item_id", itemID),
		zap.Int("quantity", line.Quantity),
	)
	return line, nil
}

func (s *service) RemoveFromCart(ctx context.Context, actor auth.Actor, cartItemID uint) (*CartItem, error) {
	if actor.ID == 0 {
		return nil, auth.ErrNotLoggedIn
	}

	line, err := s.repo.GetByID(ctx, cartItemID)
	if err != nil {
		return nil, err
	}
	if line.UserID != actor.ID {
		return nil, ErrNotYourCart
	}

	if err := s.repo.Delete(ctx, cartItemID); err != nil {
		return nil, err
	}
	return line, nil
}

func (s *service) GetCart(ctx context.Context, userID uint) ([]*CartItem, error) {
	return s.repo.ListByUser(ctx, userID)
}
