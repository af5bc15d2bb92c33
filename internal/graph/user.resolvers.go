package graph

import (
	"context"
	"errors"

	"brytashop-be/internal/graph/model"
	"brytashop-be/internal/logger"
	"brytashop-be/internal/user"
	"brytashop-be/internal/utils"

	"go.uber.org/zap"
)

func (r *mutationResolver) Signup(ctx context.Context, data model.SignupInput) (*model.User, error) {
	u, token, err := r.UserSvc.Signup(ctx, user.SignupParams{
		Email:    data.Email,
		Name:     data.Name,
		Password: data.Password,
	})
	if err != nil {
		logger.FromCtx(ctx).Warn("signup failed", zap.String("email", data.Email), zap.Error(err))
		return nil, err
	}

	r.setSessionCookie(ctx, token)
	return mapUser(u), nil
}

func (r *mutationResolver) Signin(ctx context.Context, email string, password string) (*model.User, error) {
	u, token, err := r.UserSvc.Signin(ctx, email, password)
	if err != nil {
		return nil, err
	}

	r.setSessionCookie(ctx, token)
	return mapUser(u), nil
}

func (r *mutationResolver) Signout(ctx context.Context) (*model.SuccessMessage, error) {
	r.clearSessionCookie(ctx)
	return &model.SuccessMessage{Message: utils.StrPtr("See you soon")}, nil
}

func (r *mutationResolver) RequestReset(ctx context.Context, email string) (*model.SuccessMessage, error) {
	if err := r.UserSvc.RequestReset(ctx, email); err != nil {
		return nil, err
	}
	return &model.SuccessMessage{Message: utils.StrPtr("Thanks!")}, nil
}

func (r *mutationResolver) ResetPassword(ctx context.Context, resetToken string, password string, confirmPassword string) (*model.User, error) {
	u, token, err := r.UserSvc.ResetPassword(ctx, user.ResetPasswordParams{
		ResetToken:      resetToken,
		Password:        password,
		ConfirmPassword: confirmPassword,
	})
	if err != nil {
		return nil, err
	}

	r.setSessionCookie(ctx, token)
	return mapUser(u), nil
}

func (r *mutationResolver) UpdatePermissions(ctx context.Context, permissions []model.Permission, userID string) (*model.User, error) {
	id, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	u, err := r.UserSvc.UpdatePermissions(ctx, currentActor(ctx), id, toPermissions(permissions))
	if err != nil {
		return nil, err
	}
	return mapUser(u), nil
}

func (r *queryResolver) Me(ctx context.Context) (*model.User, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, nil
	}

	u, err := r.UserSvc.GetByID(ctx, userID)
	if errors.Is(err, user.ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return mapUser(u), nil
}

func (r *queryResolver) Users(ctx context.Context) ([]*model.User, error) {
	users, err := r.UserSvc.List(ctx, currentActor(ctx))
	if err != nil {
		return nil, err
	}

	out := make([]*model.User, len(users))
	for i, u := range users {
		out[i] = mapUser(u)
	}
	return out, nil
}
