package item

import (
	"context"
	"strings"

	"brytashop-be/internal/auth"
	"brytashop-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, actor auth.Actor, p CreateParams) (*Item, error)
	Update(ctx context.Context, actor auth.Actor, id uint, p UpdateParams) (*Item, error)
	Delete(ctx context.Context, actor auth.Actor, id uint) (*Item, error)
	Get(ctx context.Context, id uint) (*Item, error)
	List(ctx context.Context, p ListParams) ([]*Item, error)
	Count(ctx context.Context, f *Filter) (int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, actor auth.Actor, p CreateParams) (*Item, error) {
	if actor.ID == 0 {
		return nil, auth.ErrNotLoggedIn
	}

	title := strings.TrimSpace(p.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if p.Price < 0 {
		return nil, ErrNegativePrice
	}

	it, err := s.repo.Create(ctx, &Item{
		Title:       title,
		Description: p.Description,
		Image:       p.Image,
		LargeImage:  p.LargeImage,
		Price:       p.Price,
		UserID:      actor.ID,
	})
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("item created", zap.Uint("item_id", it.ID), zap.Uint("user_id", actor.ID))
	return it, nil
}

func (s *service) Update(ctx context.Context, actor auth.Actor, id uint, p UpdateParams) (*Item, error) {
	if actor.ID == 0 {
		return nil, auth.ErrNotLoggedIn
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return nil, ErrTitleRequired
	}
	if p.Price != nil && *p.Price < 0 {
		return nil, ErrNegativePrice
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.UserID != actor.ID && !actor.Can(auth.PermissionAdmin, auth.PermissionItemUpdate) {
		return nil, ErrNotItemOwner
	}

	return s.repo.Update(ctx, id, p)
}

func (s *service) Delete(ctx context.Context, actor auth.Actor, id uint) (*Item, error) {
	if actor.ID == 0 {
		return nil, auth.ErrNotLoggedIn
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.UserID != actor.ID && !actor.Can(auth.PermissionAdmin, auth.PermissionItemDelete) {
		logger.FromCtx(ctx).Warn("delete item denied", zap.Uint("item_id", id), zap.Uint("user_id", actor.ID))
		return nil, ErrNotItemOwner
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("item deleted", zap.Uint("item_id", id), zap.Uint("user_id", actor.ID))
	return deleted, nil
}

func (s *service) Get(ctx context.Context, id uint) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, p ListParams) ([]*Item, error) {
	return s.repo.List(ctx, p)
}

func (s *service) Count(ctx context.Context, f *Filter) (int, error) {
	return s.repo.Count(ctx, f)
}
