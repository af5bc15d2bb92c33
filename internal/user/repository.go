package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"brytashop-be/internal/auth"
	"brytashop-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, u *User) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByResetToken(ctx context.Context, token string, notExpiredAt time.Time) (*User, error)
	SetResetToken(ctx context.Context, id uint, token string, expiry time.Time) error
	UpdatePassword(ctx context.Context, id uint, passwordHash, resetToken string) (*User, error)
	UpdatePermissions(ctx context.Context, id uint, permissions []auth.Permission) (*User, error)
	List(ctx context.Context) ([]*User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const userColumns = `id, name, email, password, permissions, reset_token, reset_token_expiry, created_at, updated_at`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row scanner) (*User, error) {
	var (
		u     User
		perms []string
	)
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Password, pq.Array(&perms),
		&u.ResetToken, &u.ResetTokenExpiry, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Permissions = toPermissions(perms)
	return &u, nil
}

func (r *repository) Create(ctx context.Context, u *User) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("email", u.Email),
	)

	created, err := scanUser(r.db.QueryRowContext(ctx, `
		INSERT INTO users (name, email, password, permissions)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		u.Name, u.Email, u.Password, pq.Array(fromPermissions(u.Permissions)),
	))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			log.Info("email already registered")
			return nil, ErrEmailExists
		}
		log.Error("db: failed to insert user", zap.Error(err))
		return nil, err
	}

	return created, nil
}

func (r *repository) FindByID(ctx context.Context, id uint) (*User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	return u, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	return u, err
}

func (r *repository) FindByResetToken(ctx context.Context, token string, notExpiredAt time.Time) (*User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE reset_token = $1 AND reset_token_expiry >= $2`,
		token, notExpiredAt,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidResetToken
	}
	return u, err
}

func (r *repository) SetResetToken(ctx context.Context, id uint, token string, expiry time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET reset_token = $1, reset_token_expiry = $2, updated_at = NOW()
		WHERE id = $3`,
		token, expiry, id,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to store reset token", zap.Uint("user_id", id), zap.Error(err))
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdatePassword replaces the hash and consumes resetToken. It matches no row
// once the token has been used or replaced, so concurrent resets apply once.
func (r *repository) UpdatePassword(ctx context.Context, id uint, passwordHash, resetToken string) (*User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `
		UPDATE users
		SET password = $1, reset_token = NULL, reset_token_expiry = NULL, updated_at = NOW()
		WHERE id = $2 AND reset_token = $3
		RETURNING `+userColumns,
		passwordHash, id, resetToken,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidResetToken
	}
	return u, err
}

func (r *repository) UpdatePermissions(ctx context.Context, id uint, permissions []auth.Permission) (*User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `
		UPDATE users
		SET permissions = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+userColumns,
		pq.Array(fromPermissions(permissions)), id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	return u, err
}

func (r *repository) List(ctx context.Context) ([]*User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to list users", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func toPermissions(raw []string) []auth.Permission {
	out := make([]auth.Permission, len(raw))
	for i, p := range raw {
		out[i] = auth.Permission(p)
	}
	return out
}

func fromPermissions(perms []auth.Permission) []string {
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = string(p)
	}
	return out
}
