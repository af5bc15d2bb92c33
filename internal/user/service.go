package user

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"brytashop-be/internal/auth"
	"brytashop-be/internal/logger"
	"brytashop-be/internal/mail"

	"go.uber.org/zap"
)

// ResetTokenTTL bounds how long a password reset link stays usable.
const ResetTokenTTL = time.Hour

type Service interface {
	Signup(ctx context.Context, p SignupParams) (*User, string, error)
	Signin(ctx context.Context, email, password string) (*User, string, error)
	RequestReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, p ResetPasswordParams) (*User, string, error)
	UpdatePermissions(ctx context.Context, actor auth.Actor, userID uint, permissions []auth.Permission) (*User, error)
	GetByID(ctx context.Context, id uint) (*User, error)
	List(ctx context.Context, actor auth.Actor) ([]*User, error)
}

type service struct {
	repo          Repository
	tokens        *auth.TokenManager
	mailer        mail.Mailer
	frontendURL   string
	now           func() time.Time
	newResetToken func() (string, error)
}

func NewService(repo Repository, tokens *auth.TokenManager, mailer mail.Mailer, frontendURL string) Service {
	return &service{
		repo:          repo,
		tokens:        tokens,
		mailer:        mailer,
		frontendURL:   strings.TrimRight(frontendURL, "/"),
		now:           time.Now,
		newResetToken: randomResetToken,
	}
}

func (s *service) Signup(ctx context.Context, p SignupParams) (*User, string, error) {
	log := logger.FromCtx(ctx)

	email := normalizeEmail(p.Email)
	name := strings.TrimSpace(p.Name)
	if email == "" || name == "" || p.Password == "" {
		return nil, "", ErrMissingFields
	}

	hashed, err := HashPassword(p.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, "", err
	}

	u, err := s.repo.Create(ctx, &User{
		Name:        name,
		Email:       email,
		Password:    hashed,
		Permissions: []auth.Permission{auth.PermissionUser},
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Generate(u.ID)
	if err != nil {
		log.Error("failed to generate jwt", zap.Uint("user_id", u.ID), zap.Error(err))
		return nil, "", err
	}

	log.Info("user signed up", zap.Uint("user_id", u.ID), zap.String("email", email))
	return u, token, nil
}

func (s *service) Signin(ctx context.Context, email, password string) (*User, string, error) {
	log := logger.FromCtx(ctx)
	email = normalizeEmail(email)

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Info("signin with unknown email", zap.String("email", email))
			return nil, "", fmt.Errorf("no such user found for email %s", email)
		}
		return nil, "", err
	}

	if !CheckPasswordHash(password, u.Password) {
		log.Info("signin with wrong password", zap.Uint("user_id", u.ID))
		return nil, "", ErrInvalidPassword
	}

	token, err := s.tokens.Generate(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *service) RequestReset(ctx context.Context, email string) error {
	log := logger.FromCtx(ctx)
	email = normalizeEmail(email)

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return fmt.Errorf("no such user found for email %s", email)
		}
		return err
	}

	token, err := s.newResetToken()
	if err != nil {
		log.Error("failed to generate reset token", zap.Error(err))
		return err
	}

	if err := s.repo.SetResetToken(ctx, u.ID, token, s.now().Add(ResetTokenTTL)); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset?resetToken=%s", s.frontendURL, token)
	err = s.mailer.Send(ctx, mail.Message{
		To:      u.Email,
		Subject: "Your Password Reset Token",
		HTML: mail.MakeANiceEmail(fmt.Sprintf(
			"Your Password Reset Token is here!\n\n<a href=%q>Click Here to Reset</a>", link)),
	})
	if err != nil {
		log.Error("failed to send reset email", zap.Uint("user_id", u.ID), zap.Error(err))
		return fmt.Errorf("send reset email: %w", err)
	}

	log.Info("password reset requested", zap.Uint("user_id", u.ID))
	return nil
}

func (s *service) ResetPassword(ctx context.Context, p ResetPasswordParams) (*User, string, error) {
	if p.Password != p.ConfirmPassword {
		return nil, "", ErrPasswordMismatch
	}
	if p.ResetToken == "" {
		return nil, "", ErrInvalidResetToken
	}

	u, err := s.repo.FindByResetToken(ctx, p.ResetToken, s.now())
	if err != nil {
		return nil, "", err
	}

	hashed, err := HashPassword(p.Password)
	if err != nil {
		return nil, "", err
	}

	updated, err := s.repo.UpdatePassword(ctx, u.ID, hashed, p.ResetToken)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Generate(updated.ID)
	if err != nil {
		return nil, "", err
	}

	logger.FromCtx(ctx).Info("password reset", zap.Uint("user_id", updated.ID))
	return updated, token, nil
}

func (s *service) UpdatePermissions(ctx context.Context, actor auth.Actor, userID uint, permissions []auth.Permission) (*User, error) {
	if actor.ID == 0 {
		return nil, auth.ErrNotLoggedIn
	}
	if err := auth.HasPermission(actor.Permissions, auth.PermissionAdmin, auth.PermissionPermissionUpdate); err != nil {
		return nil, err
	}
	raw := make([]string, len(permissions))
	for i, p := range permissions {
		raw[i] = string(p)
	}
	parsed, err := auth.ParsePermissions(raw)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.UpdatePermissions(ctx, userID, dedupe(parsed))
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("permissions updated",
		zap.Uint("actor_id", actor.ID),
		zap.Uint("user_id", userID),
		zap.Any("permissions", u.Permissions),
	)
	return u, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context, actor auth.Actor) ([]*User, error) {
	if actor.ID == 0 {
		return nil, auth.ErrNotLoggedIn
	}
	if err := auth.HasPermission(actor.Permissions, auth.PermissionAdmin, auth.PermissionPermissionUpdate); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func dedupe(perms []auth.Permission) []auth.Permission {
	seen := make(map[auth.Permission]bool, len(perms))
	out := make([]auth.Permission, 0, len(perms))
	for _, p := range perms {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

func randomResetToken() (string, error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
